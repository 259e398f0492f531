package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys set by the auth middleware.
const (
	LocUserID   = "user_id"
	LocUserRole = "user_role"
	LocSchoolID = "school_id"
	LocRawToken = "raw_token"
)

func uuidFromLocals(c *fiber.Ctx, key string) (uuid.UUID, error) {
	v := c.Locals(key)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" missing from token")
	}
	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" missing from token")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, key+" missing from token")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, key+" in token is not a valid UUID")
		}
		return id, nil
	}
	return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, key+" in token has an unexpected format")
}

// GetUserIDFromToken returns 401 when not logged in, 400 on a malformed claim.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocUserID)
}

// GetSchoolIDFromToken returns the active tenant id for the request.
func GetSchoolIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	return uuidFromLocals(c, LocSchoolID)
}

func GetUserRoleFromToken(c *fiber.Ctx) string {
	if s, ok := c.Locals(LocUserRole).(string); ok {
		return s
	}
	return ""
}

// GetRawAccessToken reads the access token from, in order:
// cookie "access_token", Locals set by middleware, Authorization header.
func GetRawAccessToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v
	}
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return ""
}

// SetRawAccessToken stashes the verified token so downstream handlers
// (logout, refresh) do not have to re-read the Authorization header.
func SetRawAccessToken(c *fiber.Ctx, token string) {
	c.Locals(LocRawToken, token)
}

func GetRefreshTokenFromCookie(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Cookies("refresh_token"))
}
