package service

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sightline-ai/people-search-backend/internal/auth/middleware"
	"github.com/sightline-ai/people-search-backend/internal/enrich/biz"
	apperrors "github.com/sightline-ai/people-search-backend/internal/pkg/errors"
	"github.com/sightline-ai/people-search-backend/internal/pkg/response"
	"go.uber.org/zap"
)

// EnrichService exposes contact enrichment
type EnrichService struct {
	apollo *biz.ApolloClient
	logger *zap.Logger
}

// NewEnrichService creates the enrich service
func NewEnrichService(apollo *biz.ApolloClient, logger *zap.Logger) *EnrichService {
	return &EnrichService{
		apollo: apollo,
		logger: logger,
	}
}

type EnrichRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	LinkedinURL string `json:"linkedin_url" binding:"required"`
}

type EnrichResponse struct {
	Email string `json:"email"`
}

// Email handles POST /enrich/email
func (s *EnrichService) Email(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.ErrorWithCode(c, apperrors.ErrUnauthorized)
		return
	}

	var req EnrichRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "first_name, last_name and linkedin_url are required")
		return
	}

	email, err := s.apollo.MatchEmail(c.Request.Context(), &biz.Person{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		LinkedinURL: req.LinkedinURL,
	})
	if err != nil {
		if errors.Is(err, biz.ErrNoEmail) {
			response.ErrorWithCode(c, apperrors.ErrEnrichNotFound)
			return
		}

		var upstream *biz.UpstreamError
		if errors.As(err, &upstream) {
			s.logger.Error("enrichment upstream failure",
				zap.String("user_id", userID),
				zap.Int("status", upstream.StatusCode),
			)
			response.ErrorWithCode(c, apperrors.ErrEnrichUpstream)
			return
		}

		s.logger.Error("enrichment failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		response.ErrorWithCode(c, apperrors.ErrEnrichUpstream)
		return
	}

	response.Success(c, EnrichResponse{Email: email})
}

// RegisterRoutes mounts the enrichment endpoints
func (s *EnrichService) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/enrich/email", s.Email)
}
