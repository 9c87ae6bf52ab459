package auth

import (
	"context"
	"errors"

	authsvc "foodshare-backend/internal/application/auth"
	"foodshare-backend/internal/domain"
	"foodshare-backend/internal/middleware"
	"foodshare-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const userSessionsPrefix = "user_sessions:"

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	UserFinder authsvc.UserFinder
	Rdb        *redis.Client
	Config     middleware.SessionConfig
}

// Login POST /api/v1/auth/login: match credentials and role, open a session, set the cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	if h.UserFinder == nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	var req authsvc.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, authsvc.ErrCredentialsRequired.Error(), fiber.StatusBadRequest, nil)
	}
	if req.Email == "" || req.Password == "" || req.Role == "" {
		return response.Error(c, authsvc.ErrCredentialsRequired.Error(), fiber.StatusBadRequest, nil)
	}

	user, err := h.UserFinder.FindByCredentials(req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrCredentialsRequired):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, domain.ErrInvalidCredentials):
			log.Info().Str("trace_id", middleware.GetTraceID(c)).Str("role", req.Role).Msg("login rejected")
			return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
		default:
			log.Error().Err(err).Msg("login failed")
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	sessionID := middleware.RegenerateSessionID(c)
	shape := authsvc.ShapeFor(user)
	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   shape.UserID,
		Fullname: shape.Fullname,
		Email:    shape.Email,
		Role:     shape.Role,
		OrgID:    shape.OrgID,
		OrgName:  shape.OrgName,
		Phone:    shape.Phone,
	})

	ctx := context.Background()
	if err := h.Rdb.SAdd(ctx, userSessionsPrefix+shape.UserID, sessionID).Err(); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)

	log.Info().Str("user_id", shape.UserID).Str("role", shape.Role).Msg("user signed in")
	return response.Success(c, "Login successful", fiber.Map{"user": shape}, nil)
}

// Me GET /api/v1/auth/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	user, err := authsvc.VerifyUser(middleware.GetUser(c))
	if err != nil {
		log.Debug().Str("path", "/auth/me").Bool("session_present", middleware.GetSessionID(c) != "").
			Msg("auth/me: not authenticated")
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/v1/auth/logout
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	ctx := context.Background()

	if sessionID != "" {
		if m, ok := middleware.GetUser(c).(map[string]interface{}); ok {
			if userID, _ := m["user_id"].(string); userID != "" {
				_ = h.Rdb.SRem(ctx, userSessionsPrefix+userID, sessionID).Err()
			}
		}
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
	}

	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out successfully", nil, nil)
}
