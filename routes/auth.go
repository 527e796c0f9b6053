package routes

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"minimart/models"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (a *API) register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Failed to parse request body", nil)
	}
	if err := validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	existing, err := a.Users.FindByName(c.Context(), req.Name)
	if err != nil {
		a.Log.Error("register lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	if existing != nil {
		a.Log.Warn("attempt to register with existing username", zap.String("name", req.Name))
		return fail(c, fiber.StatusBadRequest, "Username already exists", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}

	user := &models.User{Name: req.Name, Email: req.Email, Password: string(hash)}
	if err := a.Users.Create(c.Context(), user); err != nil {
		a.Log.Error("register failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}

	a.Log.Info("new user registered", zap.String("email", user.Email))
	return success(c, fiber.StatusCreated, "User registered successfully", userResponse{
		ID: user.ID.String(), Name: user.Name, Email: user.Email,
	})
}

func (a *API) login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Failed to parse request body", nil)
	}
	if err := validate.Struct(&req); err != nil {
		return validationFailed(c, err)
	}

	user, err := a.Users.FindByName(c.Context(), req.Name)
	if err != nil {
		a.Log.Error("login lookup failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	if user == nil {
		a.Log.Warn("login failed, username not found", zap.String("name", req.Name))
		return fail(c, fiber.StatusUnauthorized, "Invalid credentials", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		a.Log.Warn("login failed, wrong password", zap.String("name", req.Name))
		return fail(c, fiber.StatusUnauthorized, "Invalid credentials", nil)
	}

	accessToken, err := a.signToken(user, a.Cfg.AccessSecret, a.Cfg.AccessTokenLife)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	refreshToken, err := a.signToken(user, a.Cfg.RefreshSecret, a.Cfg.RefreshTokenLife)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	if err := a.Users.SaveRefreshToken(c.Context(), user.ID, refreshToken); err != nil {
		a.Log.Error("persist refresh token failed", zap.Error(err))
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}

	a.setAuthCookie(c, "access_token", accessToken, a.Cfg.AccessTokenLife)
	a.setAuthCookie(c, "refresh_token", refreshToken, a.Cfg.RefreshTokenLife)

	a.Log.Info("user logged in", zap.String("name", user.Name))
	return success(c, fiber.StatusOK, "Login successful", userResponse{
		ID: user.ID.String(), Name: user.Name, Email: user.Email,
	})
}

func (a *API) refresh(c *fiber.Ctx) error {
	token := c.Cookies("refresh_token")
	if token == "" {
		a.Log.Warn("refresh token not found in cookies")
		return fail(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	user, err := a.Users.FindByRefreshToken(c.Context(), token)
	if err != nil {
		a.Log.Error("refresh lookup failed", zap.Error(err))
		return fail(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}
	if user == nil {
		a.Log.Warn("invalid refresh token")
		return fail(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	if _, err := jwt.ParseWithClaims(token, &authClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(a.Cfg.RefreshSecret), nil
	}); err != nil {
		a.Log.Warn("refresh token rejected", zap.Error(err))
		return fail(c, fiber.StatusUnauthorized, "Unauthorized", nil)
	}

	accessToken, err := a.signToken(user, a.Cfg.AccessSecret, a.Cfg.AccessTokenLife)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Internal server error", nil)
	}
	a.setAuthCookie(c, "access_token", accessToken, a.Cfg.AccessTokenLife)

	a.Log.Info("access token refreshed", zap.String("name", user.Name))
	return success(c, fiber.StatusOK, "Access token refreshed", fiber.Map{})
}

func (a *API) logout(c *fiber.Ctx) error {
	if token := c.Cookies("refresh_token"); token != "" {
		if user, err := a.Users.FindByRefreshToken(c.Context(), token); err == nil && user != nil {
			if err := a.Users.SaveRefreshToken(c.Context(), user.ID, ""); err != nil {
				a.Log.Error("revoke refresh token failed", zap.Error(err))
			}
		}
	}
	a.clearAuthCookie(c, "access_token")
	a.clearAuthCookie(c, "refresh_token")
	return success(c, fiber.StatusOK, "Logged out", fiber.Map{})
}

func (a *API) signToken(user *models.User, secret string, life time.Duration) (string, error) {
	claims := authClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(life)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func (a *API) setAuthCookie(c *fiber.Ctx, name, value string, life time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Expires:  time.Now().Add(life),
		HTTPOnly: true,
		Secure:   a.Cfg.Env == "production",
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}

func (a *API) clearAuthCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
}
