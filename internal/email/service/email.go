package service

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sightline-ai/people-search-backend/internal/auth/middleware"
	"github.com/sightline-ai/people-search-backend/internal/email/biz"
	apperrors "github.com/sightline-ai/people-search-backend/internal/pkg/errors"
	"github.com/sightline-ai/people-search-backend/internal/pkg/oauth2"
	"github.com/sightline-ai/people-search-backend/internal/pkg/response"
	"go.uber.org/zap"
)

// EmailService exposes Gmail send/read on behalf of the signed-in user
type EmailService struct {
	sender        *biz.Sender
	reader        *biz.Reader
	authenticator *oauth2.GoogleAuthenticator
	logger        *zap.Logger
}

// NewEmailService creates the email service
func NewEmailService(sender *biz.Sender, reader *biz.Reader, authenticator *oauth2.GoogleAuthenticator, logger *zap.Logger) *EmailService {
	return &EmailService{
		sender:        sender,
		reader:        reader,
		authenticator: authenticator,
		logger:        logger,
	}
}

type SendRequest struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type ThreadRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ThreadResponse struct {
	Messages []biz.ThreadMessage `json:"messages"`
}

// Send handles POST /email/send
func (s *EmailService) Send(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.ErrorWithCode(c, apperrors.ErrUnauthorized)
		return
	}
	userEmail, _ := middleware.GetEmail(c)

	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "to, subject and body are required")
		return
	}

	accessToken, err := s.userAccessToken(c, userID)
	if err != nil {
		return // response already written
	}

	err = s.sender.Send(c.Request.Context(), userEmail, accessToken, &biz.OutgoingEmail{
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		s.logger.Error("email send failed",
			zap.String("user_id", userID),
			zap.String("to", req.To),
			zap.Error(err),
		)
		response.ErrorWithCode(c, apperrors.ErrEmailSendFailed)
		return
	}

	s.logger.Info("email sent",
		zap.String("user_id", userID),
		zap.String("to", req.To),
	)
	response.SuccessWithMessage(c, "email sent", nil)
}

// Thread handles POST /email/thread
func (s *EmailService) Thread(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.ErrorWithCode(c, apperrors.ErrUnauthorized)
		return
	}

	var req ThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "email is required")
		return
	}

	accessToken, err := s.userAccessToken(c, userID)
	if err != nil {
		return
	}

	messages, err := s.reader.Thread(c.Request.Context(), accessToken, req.Email)
	if err != nil {
		s.logger.Error("thread fetch failed",
			zap.String("user_id", userID),
			zap.String("contact", req.Email),
			zap.Error(err),
		)
		response.ErrorWithCode(c, apperrors.ErrEmailReadFailed)
		return
	}

	if messages == nil {
		messages = []biz.ThreadMessage{}
	}
	response.Success(c, ThreadResponse{Messages: messages})
}

// userAccessToken resolves a fresh Google access token for the user,
// writing the error response itself on failure.
func (s *EmailService) userAccessToken(c *gin.Context, userID string) (string, error) {
	accessToken, err := s.authenticator.AccessToken(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, oauth2.ErrTokenNotFound) {
			response.ErrorWithCode(c, apperrors.ErrAuthNoCredentials)
			return "", err
		}
		s.logger.Error("access token refresh failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInternalServer))
		return "", err
	}
	return accessToken, nil
}

// RegisterRoutes mounts the email endpoints
func (s *EmailService) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/email/send", s.Send)
	r.POST("/email/thread", s.Thread)
}
