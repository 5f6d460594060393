package service

import (
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sightline-ai/people-search-backend/internal/auth/middleware"
	apperrors "github.com/sightline-ai/people-search-backend/internal/pkg/errors"
	"github.com/sightline-ai/people-search-backend/internal/pkg/extract"
	"github.com/sightline-ai/people-search-backend/internal/pkg/response"
	"github.com/sightline-ai/people-search-backend/internal/user/biz"
	"go.uber.org/zap"
)

const maxResumeSize = 10 << 20 // 10 MiB

// UserService exposes the profile endpoints
type UserService struct {
	uc        *biz.UserUseCase
	extractor *extract.PDFExtractor
	logger    *zap.Logger
}

// NewUserService creates the user service
func NewUserService(uc *biz.UserUseCase, logger *zap.Logger) *UserService {
	return &UserService{
		uc:        uc,
		extractor: extract.NewPDFExtractor(),
		logger:    logger,
	}
}

type MeResponse struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Email            string `json:"email"`
	Searches         int    `json:"searches"`
	ProfileCompleted bool   `json:"profile_completed"`
	JoinedWaitlist   bool   `json:"joined_waitlist"`
}

// Me handles GET /me
func (s *UserService) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.ErrorWithCode(c, apperrors.ErrUnauthorized)
		return
	}

	user, err := s.uc.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.HandleError(c, err)
		return
	}

	response.Success(c, MeResponse{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		Searches:         user.Searches,
		ProfileCompleted: user.ProfileCompleted,
		JoinedWaitlist:   user.JoinedWaitlist,
	})
}

// CompleteProfile handles POST /profile/complete.
// Multipart form: "resume" (PDF) + optional "additional_details".
func (s *UserService) CompleteProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.ErrorWithCode(c, apperrors.ErrUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrUserInvalidInput, "resume file is required")
		return
	}
	if fileHeader.Size > maxResumeSize {
		response.ErrorWithCode(c, apperrors.ErrUserInvalidUpload, "resume exceeds 10MB")
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		response.ErrorWithCode(c, apperrors.ErrUserInvalidUpload, "only PDF resumes are supported")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.HandleError(c, err)
		return
	}
	defer file.Close()

	resumeText, err := s.extractor.Text(file)
	if err != nil {
		s.logger.Error("resume text extraction failed",
			zap.String("user_id", userID),
			zap.String("filename", fileHeader.Filename),
			zap.Error(err),
		)
		response.ErrorWithCode(c, apperrors.ErrUserInvalidUpload, "could not read PDF")
		return
	}

	additionalDetails := c.PostForm("additional_details")

	if err := s.uc.CompleteProfile(c.Request.Context(), userID, resumeText, additionalDetails); err != nil {
		response.HandleError(c, err)
		return
	}

	s.logger.Info("profile completed",
		zap.String("user_id", userID),
		zap.Int("resume_chars", len(resumeText)),
	)
	response.SuccessWithMessage(c, "profile completed", nil)
}

// Logout handles POST /logout. Sessions are stateless JWTs; the client
// drops its token and we just acknowledge.
func (s *UserService) Logout(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		response.ErrorWithCode(c, apperrors.ErrUnauthorized)
		return
	}
	response.SuccessWithMessage(c, "logged out", nil)
}

// RegisterRoutes mounts the profile endpoints
func (s *UserService) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/me", s.Me)
	r.POST("/profile/complete", s.CompleteProfile)
	r.POST("/logout", s.Logout)
}
