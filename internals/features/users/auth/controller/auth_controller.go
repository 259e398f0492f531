package controller

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dugsiku_backend/internals/configs"
	"dugsiku_backend/internals/features/users/auth/dto"
	"dugsiku_backend/internals/features/users/auth/model"
	"dugsiku_backend/internals/features/users/auth/service"
	helper "dugsiku_backend/internals/helpers"
)

var validate = validator.New()

type AuthController struct {
	DB *gorm.DB
}

// POST /api/auth/register
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := model.UserModel{
		UserName: req.UserName,
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashed),
		Role:     req.Role,
	}
	user.SetDefaultValues()

	if err := ctl.DB.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.Error(c, fiber.StatusConflict, "Email already registered")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registered", dto.ToUserResponse(&user))
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctl.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Account is deactivated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	return ctl.respondWithTokens(c, &user, "Login successful")
}

// POST /api/auth/login-google
func (ctl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid Google ID Token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to decode ID Token")
	}
	email, name, googleID := claimSet.Email, claimSet.Name, claimSet.Sub

	var user model.UserModel
	err = ctl.DB.Where("google_id = ?", googleID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = model.UserModel{
			UserName: name,
			Email:    strings.ToLower(email),
			Password: randomDummyPassword(),
			GoogleID: &googleID,
			Role:     "parent",
			IsActive: true,
		}
		if err := ctl.DB.Create(&user).Error; err != nil {
			if isUniqueViolation(err) {
				return helper.Error(c, fiber.StatusConflict, "Email already registered")
			}
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user")
		}
	} else if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Account is deactivated")
	}

	return ctl.respondWithTokens(c, &user, "Login successful")
}

// POST /api/auth/refresh
func (ctl *AuthController) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	_ = c.BodyParser(&req)
	tokenString := strings.TrimSpace(req.RefreshToken)
	if tokenString == "" {
		tokenString = helper.GetRefreshTokenFromCookie(c)
	}
	if tokenString == "" {
		return helper.Error(c, fiber.StatusUnauthorized, "Refresh token missing")
	}

	claims, err := service.ParseRefreshToken(tokenString)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid refresh token")
	}
	userIDStr, _ := claims["user_id"].(string)

	var user model.UserModel
	if err := ctl.DB.Where("id = ?", userIDStr).First(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Account is deactivated")
	}

	return ctl.respondWithTokens(c, &user, "Token refreshed")
}

// POST /api/auth/logout blacklists the current access token.
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	tokenString := helper.GetRawAccessToken(c)
	if tokenString == "" {
		return helper.Error(c, fiber.StatusBadRequest, "No token to revoke")
	}

	var userID *string
	if v, ok := c.Locals(helper.LocUserID).(string); ok && v != "" {
		userID = &v
	}

	entry := model.TokenBlacklist{
		TokenBlacklistToken:     tokenString,
		TokenBlacklistExpiredAt: time.Now().Add(service.AccessTokenTTL),
	}
	if userID != nil {
		if id, err := uuid.Parse(*userID); err == nil {
			entry.TokenBlacklistUserID = &id
		}
	}

	if err := ctl.DB.Create(&entry).Error; err != nil && !isUniqueViolation(err) {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to revoke token")
	}

	c.ClearCookie("access_token", "refresh_token")
	return helper.Success(c, "Logged out", nil)
}

// GET /api/auth/me
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var user model.UserModel
	if err := ctl.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}
	return helper.Success(c, "OK", dto.ToUserResponse(&user))
}

func (ctl *AuthController) respondWithTokens(c *fiber.Ctx, user *model.UserModel, message string) error {
	access, refresh, err := service.GenerateTokenPair(user)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to issue tokens")
	}
	return helper.Success(c, message, dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         dto.ToUserResponse(user),
	})
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique")
}

func randomDummyPassword() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
