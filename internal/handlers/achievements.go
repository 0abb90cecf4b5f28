package handlers

import (
	"net/http"
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/database"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"github.com/gin-gonic/gin"
)

type achievementItem struct {
	models.Achievement
	Received        bool       `json:"received"`
	AchievementDate *time.Time `json:"achievementDate"`
}

// ListAchievements returns the whole catalog annotated with the user's
// received flags and award dates. Two reads: the catalog and the user's
// award rows.
func ListAchievements(c *gin.Context) {
	userID := c.GetString("userId")

	var catalog []models.Achievement
	if err := database.DB.Order("id").Find(&catalog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load achievements"})
		return
	}

	var awards []models.UserAchievement
	if err := database.DB.Where("user_id = ?", userID).Find(&awards).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load achievements"})
		return
	}
	awarded := make(map[int]time.Time, len(awards))
	for _, ua := range awards {
		awarded[ua.AchievementID] = ua.AchievementDate
	}

	items := make([]achievementItem, 0, len(catalog))
	for _, a := range catalog {
		item := achievementItem{Achievement: a}
		if date, ok := awarded[a.ID]; ok {
			item.Received = true
			d := date
			item.AchievementDate = &d
		}
		items = append(items, item)
	}
	c.JSON(http.StatusOK, items)
}
