package handlers

import (
	"net/http"
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/config"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/database"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func currentUser(c *gin.Context) (*models.User, bool) {
	userID := c.GetString("userId")
	var user models.User
	if err := database.DB.Preload("LastCompleted").First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return nil, false
	}
	return &user, true
}

// GetMe returns the authenticated user's profile.
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateMeRequest struct {
	Name   *string `json:"name"`
	Gender *string `json:"gender"`
	Avatar *string `json:"avatar"`
}

// UpdateMe patches profile fields.
func UpdateMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if len(updates) > 0 {
		if err := database.DB.Model(user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}
	c.JSON(http.StatusOK, user)
}

// DeleteMe soft-deletes the account.
func DeleteMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := database.DB.Delete(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
		return
	}
	c.Status(http.StatusNoContent)
}

type timezoneRequest struct {
	Timezone string `json:"timezone" binding:"required"`
}

// UpdateTimezone saves the client-reported timezone and reconciles missed
// training days against the user's skip credits.
func UpdateTimezone(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req timezoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	outcome, err := streakSvc.Reconcile(user, req.Timezone, time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// enough: the user can keep training; skip: credits were touched
	c.JSON(http.StatusOK, gin.H{
		"enough":       !user.BlockedTraining,
		"skip":         outcome.Kind != services.OutcomeUnchanged,
		"outcome":      outcome.Kind,
		"daysConsumed": outcome.DaysConsumed,
		"skipBalance":  user.SkipBalance,
	})
}

// ResetMe restores the account to its starting state: default skip balance,
// zero distance, no history, no achievements.
func ResetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// update through a bare model: Model(user) would re-save the loaded
		// LastCompleted association and put the cleared FK right back
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
			"skip_balance":      config.AppConfig.DefaultSkipBalance,
			"last_skip_date":    (*time.Time)(nil),
			"total_m_run":       0,
			"blocked_training":  false,
			"last_completed_id": (*uint)(nil),
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.History{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", user.ID).Delete(&models.UserAchievement{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"default": true})
}
