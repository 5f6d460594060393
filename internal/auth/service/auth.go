package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sightline-ai/people-search-backend/internal/auth"
	apperrors "github.com/sightline-ai/people-search-backend/internal/pkg/errors"
	"github.com/sightline-ai/people-search-backend/internal/pkg/oauth2"
	"github.com/sightline-ai/people-search-backend/internal/pkg/redis"
	"github.com/sightline-ai/people-search-backend/internal/pkg/response"
	"github.com/sightline-ai/people-search-backend/internal/user/biz"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	xoauth2 "golang.org/x/oauth2"
)

const (
	statePrefix     = "oauth:state:"
	refreshPrefix   = "auth:refresh:"
	stateTTL        = 10 * time.Minute
	exchangeTimeout = 30 * time.Second

	gmailProfileURL = "https://gmail.googleapis.com/gmail/v1/users/me/profile"

	flowLogin  = "login"
	flowSignup = "signup"
)

// oauthState is the payload stored in redis under the CSRF state key
type oauthState struct {
	Flow     string `json:"flow"`
	Username string `json:"username,omitempty"`
}

// AuthService drives the Google login and signup flows
type AuthService struct {
	authenticator *oauth2.GoogleAuthenticator
	users         *biz.UserUseCase
	jwtManager    *auth.JWTManager
	redisClient   *redis.Client
	frontendURL   string
	refreshTTL    time.Duration
	profileURL    string
	httpClient    *http.Client
	logger        *zap.Logger
}

// NewAuthService creates the auth service
func NewAuthService(
	authenticator *oauth2.GoogleAuthenticator,
	users *biz.UserUseCase,
	jwtManager *auth.JWTManager,
	redisClient *redis.Client,
	frontendURL string,
	refreshTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	if refreshTTL <= 0 {
		refreshTTL = 14 * 24 * time.Hour
	}
	return &AuthService{
		authenticator: authenticator,
		users:         users,
		jwtManager:    jwtManager,
		redisClient:   redisClient,
		frontendURL:   frontendURL,
		refreshTTL:    refreshTTL,
		profileURL:    gmailProfileURL,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		logger:        logger,
	}
}

// Login handles GET /auth/login?flow=login|signup[&username=]
// and redirects the browser to Google's consent page.
func (s *AuthService) Login(c *gin.Context) {
	flow := c.DefaultQuery("flow", flowLogin)
	if flow != flowLogin && flow != flowSignup {
		response.BadRequest(c, "flow must be login or signup")
		return
	}

	username := c.Query("username")
	if flow == flowSignup && username == "" {
		response.BadRequest(c, "username is required for signup")
		return
	}

	state, err := generateState()
	if err != nil {
		response.HandleError(c, err)
		return
	}

	payload, err := json.Marshal(oauthState{Flow: flow, Username: username})
	if err != nil {
		response.HandleError(c, err)
		return
	}

	if err := s.redisClient.Set(c.Request.Context(), statePrefix+state, payload, stateTTL); err != nil {
		s.logger.Error("failed to store oauth state", zap.Error(err))
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInternalServer))
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, s.authenticator.AuthURL(state))
}

// Callback handles GET /auth/callback. Google redirects here with
// code and state after consent.
func (s *AuthService) Callback(c *gin.Context) {
	code := c.Query("code")
	stateParam := c.Query("state")
	if code == "" || stateParam == "" {
		response.ErrorWithCode(c, apperrors.ErrAuthInvalidState, "missing code or state")
		return
	}

	// consume the state exactly once
	raw, err := s.redisClient.GetDel(c.Request.Context(), statePrefix+stateParam)
	if err != nil {
		if redis.IsNil(err) {
			response.ErrorWithCode(c, apperrors.ErrAuthInvalidState)
			return
		}
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInternalServer))
		return
	}

	var state oauthState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		response.ErrorWithCode(c, apperrors.ErrAuthInvalidState)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), exchangeTimeout)
	defer cancel()

	token, err := s.authenticator.ExchangeCode(ctx, code)
	if err != nil {
		s.logger.Error("code exchange failed", zap.Error(err))
		response.ErrorWithCode(c, apperrors.ErrAuthExchangeFailed)
		return
	}

	email, err := s.fetchProfileEmail(ctx, token.AccessToken)
	if err != nil {
		s.logger.Error("failed to fetch gmail profile", zap.Error(err))
		response.ErrorWithCode(c, apperrors.ErrAuthExchangeFailed, "could not read Google profile")
		return
	}

	switch state.Flow {
	case flowSignup:
		s.completeSignup(c, state.Username, email, token)
	default:
		s.completeLogin(c, email, token)
	}
}

func (s *AuthService) completeLogin(c *gin.Context, email string, token *xoauth2.Token) {
	user, err := s.users.GetUserByEmail(c.Request.Context(), email)
	if err != nil {
		// no account yet, send them through signup
		s.logger.Info("login for unknown email, redirecting to signup",
			zap.String("email", email))
		c.Redirect(http.StatusTemporaryRedirect, s.frontendURL+"/signup")
		return
	}

	if err := s.authenticator.SaveUserToken(c.Request.Context(), user.ID, token); err != nil {
		s.logger.Error("failed to rotate stored tokens",
			zap.String("user_id", user.ID),
			zap.Error(err))
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInternalServer))
		return
	}

	s.issueSessionAndRedirect(c, user.ID, user.Email, "/search")
}

func (s *AuthService) completeSignup(c *gin.Context, username, email string, token *xoauth2.Token) {
	user, err := s.users.CreateUser(c.Request.Context(), username, email)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrAuthEmailExists) {
			response.ErrorWithCode(c, apperrors.ErrAuthEmailExists)
			return
		}
		response.HandleError(c, err)
		return
	}

	if err := s.authenticator.SaveUserToken(c.Request.Context(), user.ID, token); err != nil {
		s.logger.Error("failed to store tokens for new user",
			zap.String("user_id", user.ID),
			zap.Error(err))
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInternalServer))
		return
	}

	s.logger.Info("user signed up",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email))
	s.issueSessionAndRedirect(c, user.ID, user.Email, "/resume")
}

func (s *AuthService) issueSessionAndRedirect(c *gin.Context, userID, email, path string) {
	accessToken, err := s.jwtManager.GenerateAccessToken(userID, email)
	if err != nil {
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInternalServer))
		return
	}

	refreshToken, err := s.issueRefreshToken(c.Request.Context(), userID, email)
	if err != nil {
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInternalServer))
		return
	}

	target := fmt.Sprintf("%s%s?token=%s&refresh=%s",
		s.frontendURL, path, url.QueryEscape(accessToken), url.QueryEscape(refreshToken))
	c.Redirect(http.StatusTemporaryRedirect, target)
}

type refreshSession struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func (s *AuthService) issueRefreshToken(ctx context.Context, userID, email string) (string, error) {
	refreshToken, err := s.jwtManager.GenerateRefreshToken()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(refreshSession{UserID: userID, Email: email})
	if err != nil {
		return "", err
	}

	if err := s.redisClient.Set(ctx, refreshPrefix+refreshToken, payload, s.refreshTTL); err != nil {
		return "", fmt.Errorf("store refresh token: %w", err)
	}
	return refreshToken, nil
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type RefreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /auth/refresh. The presented refresh token is
// consumed and rotated.
func (s *AuthService) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "refresh_token is required")
		return
	}

	raw, err := s.redisClient.GetDel(c.Request.Context(), refreshPrefix+req.RefreshToken)
	if err != nil {
		if redis.IsNil(err) {
			response.ErrorWithCode(c, apperrors.ErrAuthTokenExpired)
			return
		}
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInternalServer))
		return
	}

	var session refreshSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		response.ErrorWithCode(c, apperrors.ErrAuthInvalidToken)
		return
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(session.UserID, session.Email)
	if err != nil {
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInternalServer))
		return
	}

	refreshToken, err := s.issueRefreshToken(c.Request.Context(), session.UserID, session.Email)
	if err != nil {
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInternalServer))
		return
	}

	response.Success(c, RefreshResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
	})
}

// fetchProfileEmail reads the authenticated account's address from the
// Gmail profile endpoint.
func (s *AuthService) fetchProfileEmail(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.profileURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read profile response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("profile request failed: status %d", resp.StatusCode)
	}

	email := gjson.GetBytes(body, "emailAddress").String()
	if email == "" {
		return "", fmt.Errorf("profile response has no emailAddress")
	}
	return email, nil
}

func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// RegisterRoutes mounts the public auth endpoints
func (s *AuthService) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/auth/login", s.Login)
	r.GET("/auth/callback", s.Callback)
	r.POST("/auth/refresh", s.Refresh)
}
