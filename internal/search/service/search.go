package service

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sightline-ai/people-search-backend/internal/auth/middleware"
	apperrors "github.com/sightline-ai/people-search-backend/internal/pkg/errors"
	"github.com/sightline-ai/people-search-backend/internal/pkg/response"
	"github.com/sightline-ai/people-search-backend/internal/search/biz"
	"github.com/sightline-ai/people-search-backend/internal/search/types"
	"go.uber.org/zap"
)

// SearchService exposes the people-search pipeline over HTTP
type SearchService struct {
	uc     *biz.SearchUseCase
	logger *zap.Logger
}

// NewSearchService creates the search service
func NewSearchService(uc *biz.SearchUseCase, logger *zap.Logger) *SearchService {
	return &SearchService{
		uc:     uc,
		logger: logger,
	}
}

type SearchRequest struct {
	Query string `json:"query" binding:"required"`
}

type SearchResponse struct {
	Results  []types.AggregatedResult `json:"results"`
	Warnings []string                 `json:"warnings,omitempty"`
}

// Search handles POST /search
func (s *SearchService) Search(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.ErrorWithCode(c, apperrors.ErrUnauthorized)
		return
	}

	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrSearchEmptyQuery)
		return
	}

	out, err := s.uc.Run(c.Request.Context(), userID, req.Query)
	if err != nil {
		s.logger.Error("search pipeline failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		response.HandleError(c, err)
		return
	}

	results := out.Results
	if results == nil {
		results = []types.AggregatedResult{}
	}
	c.JSON(http.StatusOK, SearchResponse{
		Results:  results,
		Warnings: out.Warnings,
	})
}

// RegisterRoutes mounts the search endpoints
func (s *SearchService) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/search", s.Search)
}
