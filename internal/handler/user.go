package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/marslanding/backend/internal/auth"
	"github.com/marslanding/backend/internal/middleware"
	"github.com/marslanding/backend/internal/queue"
	"github.com/marslanding/backend/internal/service"
)

// UserHandler bundles dependencies for the account endpoints.
type UserHandler struct {
	Users *service.UserService
	Guard *auth.Guard
}

func NewUserHandler(users *service.UserService, guard *auth.Guard) *UserHandler {
	return &UserHandler{Users: users, Guard: guard}
}

// ----- DTOs -----

type createUserReq struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// updateUserReq carries a partial update; absent fields stay unchanged.
type updateUserReq struct {
	Email    *string `json:"email"`
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
	IsActive *bool   `json:"is_active"`
}

// Create registers a new account. Registration is open; the created
// account is active and never a superuser. A user.registered event is
// published best-effort after the write.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	u, err := h.Users.Register(c.Request().Context(), req.Email, req.FullName, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	ev := queue.UserRegisteredEvent{
		UserID:       u.HexID(),
		Email:        u.Email,
		FullName:     u.FullName,
		RegisteredAt: u.CreatedAt.Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.PublishUserRegistered(ctx, ev)
	}()

	return c.JSON(http.StatusCreated, u)
}

// Me returns the authenticated account.
func (h *UserHandler) Me(c echo.Context) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, principal)
}

// UpdateMe applies a partial update to the authenticated account.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	u, err := h.Users.Update(c.Request().Context(), principal.HexID(), service.UserUpdate{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		IsActive: req.IsActive,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// GetByID returns a single account. The permission check runs before
// the lookup so a non-privileged caller cannot probe which ids exist.
func (h *UserHandler) GetByID(c echo.Context) error {
	principal, ok := middleware.Principal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	id := c.Param("id")
	if err := h.Guard.RequireSelfOrSuperuser(principal, id); err != nil {
		return respondError(c, err)
	}

	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// List returns a page of accounts. Superuser only (enforced by route
// middleware).
func (h *UserHandler) List(c echo.Context) error {
	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	users, err := h.Users.List(c.Request().Context(), skip, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// Delete removes an account. Superuser only (enforced by route
// middleware). Deleting a missing id yields 404, deleting twice is
// safe.
func (h *UserHandler) Delete(c echo.Context) error {
	deleted, err := h.Users.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	return c.NoContent(http.StatusNoContent)
}
