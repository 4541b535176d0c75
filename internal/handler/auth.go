package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marslanding/backend/internal/auth"
	"github.com/marslanding/backend/internal/repository"
	"github.com/marslanding/backend/internal/service"
)

// AuthHandler bundles dependencies for the credential endpoints.
type AuthHandler struct {
	Users  *service.UserService
	Tokens *auth.TokenService
}

func NewAuthHandler(users *service.UserService, tokens *auth.TokenService) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}
type tokenResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Login verifies credentials and returns a fresh token pair. Unknown
// email and wrong password produce an identical 401.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	u, err := h.Users.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	if !u.IsActive {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "inactive user"})
	}

	return h.issuePair(c, u.HexID())
}

// Refresh exchanges a valid refresh token for a new token pair. The
// pair rotates: the caller is expected to discard the old refresh
// token. A token of the wrong kind is rejected the same way as an
// invalid one.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "refresh_token required"})
	}

	now := time.Now().UTC()
	sub, err := h.Tokens.Validate(req.RefreshToken, auth.TokenRefresh, now)
	if err != nil {
		c.Logger().Infof("refresh rejected: %v", err)
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	u, err := h.Users.GetByID(c.Request().Context(), sub)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		return respondError(c, err)
	}
	if !u.IsActive {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	return h.issuePair(c, u.HexID())
}

// issuePair mints an access/refresh pair for subject at the current
// instant and writes the standard token response.
func (h *AuthHandler) issuePair(c echo.Context, subject string) error {
	now := time.Now().UTC()
	access, err := h.Tokens.Issue(subject, auth.TokenAccess, now)
	if err != nil {
		return respondError(c, err)
	}
	refresh, err := h.Tokens.Issue(subject, auth.TokenRefresh, now)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, tokenResp{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	})
}
