package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/config"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/database"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/services"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/pkg/logger"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// emailAddress normalizes while unmarshalling so the email format validator
// sees the trimmed, lowercased value, not the client's raw padding.
type emailAddress string

func (e *emailAddress) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*e = emailAddress(strings.ToLower(strings.TrimSpace(s)))
	return nil
}

type registerRequest struct {
	Email  emailAddress `json:"email" binding:"required,email"`
	Name   string       `json:"name" binding:"required"`
	Gender string       `json:"gender"`
}

// Register creates the user and mails the first login code.
func Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	email := string(req.Email)

	user := models.User{
		Email:       email,
		Name:        req.Name,
		Gender:      models.Gender(req.Gender),
		SkipBalance: config.AppConfig.DefaultSkipBalance,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}

	if err := authCodeSvc.RequestCode(c.Request.Context(), email); err != nil {
		logger.Error().Err(err).Str("email", email).Msg("Failed to send auth code")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send auth code"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"email": email})
}

type codeRequest struct {
	Email emailAddress `json:"email" binding:"required,email"`
}

// RequestAuthCode mails a one-time login code to an existing user.
func RequestAuthCode(c *gin.Context) {
	var req codeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	email := string(req.Email)

	var user models.User
	if err := database.DB.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User with this email not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if err := authCodeSvc.RequestCode(c.Request.Context(), email); err != nil {
		if errors.Is(err, services.ErrCodeCooldown) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Code already sent, try again later"})
			return
		}
		logger.Error().Err(err).Str("email", email).Msg("Failed to send auth code")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send auth code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": email})
}

type tokenRequest struct {
	Email emailAddress `json:"email" binding:"required,email"`
	Code  string       `json:"code" binding:"required"`
}

// ObtainToken exchanges a valid one-time code for a JWT pair.
func ObtainToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	email := string(req.Email)

	var user models.User
	if err := database.DB.First(&user, "email = ?", email).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User with this email not found"})
		return
	}

	if err := authCodeSvc.VerifyCode(c.Request.Context(), email, req.Code); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
		return
	}

	access, refresh, err := utils.GenerateTokenPair(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue tokens"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access, "refresh": refresh})
}

type refreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// RefreshToken issues a fresh access token from a refresh token.
func RefreshToken(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	claims, err := utils.ValidateToken(req.Refresh, utils.TokenRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	access, _, err := utils.GenerateTokenPair(claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue tokens"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}
