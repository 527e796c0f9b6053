package routes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const userIDKey = "userID"

type authClaims struct {
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// requireAuth verifies the access token from the cookie (or Authorization
// header), loads the user and attaches the verified user id to the
// request. Handlers behind it trust that identity without re-verifying.
func (a *API) requireAuth(c *fiber.Ctx) error {
	token := c.Cookies("access_token")
	if token == "" {
		if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
	}
	if token == "" {
		a.Log.Warn("access token not found in request")
		return fail(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	claims := &authClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(a.Cfg.AccessSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			a.Log.Warn("access token expired")
			return fail(c, fiber.StatusUnauthorized, "Token expired", nil)
		}
		a.Log.Warn("invalid access token", zap.Error(err))
		return fail(c, fiber.StatusUnauthorized, "Invalid token", nil)
	}
	if !parsed.Valid {
		return fail(c, fiber.StatusUnauthorized, "Invalid token", nil)
	}

	user, err := a.Users.FindByID(c.Context(), claims.UserID)
	if err != nil {
		a.Log.Error("auth middleware user lookup failed", zap.Error(err))
		return fail(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}
	if user == nil {
		a.Log.Warn("user not found for token", zap.String("user_id", claims.UserID.String()))
		return fail(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	c.Locals(userIDKey, user.ID)
	return c.Next()
}

func (a *API) userID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(userIDKey).(uuid.UUID)
	return id
}
