package handlers

import (
	"net/http"
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/database"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"github.com/gin-gonic/gin"
)

type trainingDayItem struct {
	DayNumber        int    `json:"dayNumber"`
	Workout          string `json:"workout"`
	WorkoutInfo      string `json:"workoutInfo"`
	MotivationPhrase string `json:"motivationPhrase"`
	Completed        bool   `json:"completed"`
}

// ListTrainingPlan returns the 100-day curriculum with per-day completion
// flags and the user's dynamic motivational phrases.
func ListTrainingPlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var days []models.Day
	if err := database.DB.Order("day_number").Find(&days).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load training plan"})
		return
	}

	var completedDays []int
	if err := database.DB.Model(&models.History{}).
		Where("user_id = ?", user.ID).
		Pluck("day_number", &completedDays).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load training plan"})
		return
	}
	completed := make(map[int]bool, len(completedDays))
	for _, d := range completedDays {
		completed[d] = true
	}

	phrases, err := phraseSvc.DynamicPhrases(user, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load training plan"})
		return
	}

	items := make([]trainingDayItem, 0, len(days))
	for i, d := range days {
		item := trainingDayItem{
			DayNumber:        d.DayNumber,
			Workout:          d.Workout,
			WorkoutInfo:      d.WorkoutInfo,
			MotivationPhrase: d.MotivationPhrase,
			Completed:        completed[d.DayNumber],
		}
		if i < len(phrases) {
			item.MotivationPhrase = phrases[i]
		}
		items = append(items, item)
	}
	c.JSON(http.StatusOK, items)
}
