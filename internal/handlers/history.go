package handlers

import (
	"net/http"
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/database"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ListHistory returns the user's completed trainings in curriculum order.
func ListHistory(c *gin.Context) {
	userID := c.GetString("userId")

	var histories []models.History
	if err := database.DB.Where("user_id = ?", userID).
		Order("day_number").Find(&histories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}
	c.JSON(http.StatusOK, histories)
}

type createHistoryRequest struct {
	DayNumber     int       `json:"dayNumber" binding:"required,min=1,max=100"`
	TrainingStart time.Time `json:"trainingStart" binding:"required"`
	TrainingEnd   time.Time `json:"trainingEnd" binding:"required"`
	Cities        []string  `json:"cities"`
	Distance      int       `json:"distance" binding:"min=0"`
	MaxSpeed      int       `json:"maxSpeed" binding:"min=0"`
	AvgSpeed      int       `json:"avgSpeed" binding:"min=0"`

	// Ids of client-platform achievements earned during this session. Mixed
	// ints and numeric strings are accepted; garbage is ignored.
	Achievements []any `json:"achievements"`
}

// CreateHistory logs a completed training, updates the user's totals and
// returns the achievements this session earned.
func CreateHistory(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req createHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if user.BlockedTraining {
		c.JSON(http.StatusForbidden, gin.H{"error": "Training is blocked"})
		return
	}
	if !req.TrainingEnd.After(req.TrainingStart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Training must end after it starts"})
		return
	}
	if req.DayNumber != user.LastCompletedDay()+1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Training days must be completed in order"})
		return
	}

	history := models.History{
		UserID:        user.ID,
		DayNumber:     req.DayNumber,
		TrainingStart: req.TrainingStart,
		TrainingEnd:   req.TrainingEnd,
		Cities:        req.Cities,
		Distance:      req.Distance,
		MaxSpeed:      req.MaxSpeed,
		AvgSpeed:      req.AvgSpeed,
		Completed:     true,
	}
	if err := database.DB.Create(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save training"})
		return
	}

	user.TotalMRun += req.Distance
	user.LastCompleted = &history
	user.LastCompletedID = &history.ID
	if err := database.DB.Model(user).Updates(map[string]any{
		"total_m_run":       user.TotalMRun,
		"last_completed_id": history.ID,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user totals"})
		return
	}

	earned, err := achievementSvc.EvaluateAndApply(user, req.Achievements, &history)
	if err != nil {
		logger.Error().Err(err).Str("user_id", user.ID).Msg("Achievement update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update achievements"})
		return
	}

	response := make([]gin.H, 0, len(earned))
	for _, a := range earned {
		response = append(response, gin.H{
			"id":           a.ID,
			"title":        a.Title,
			"description":  a.Description,
			"icon":         a.Icon,
			"rewardPoints": a.RewardPoints,
		})
	}
	c.JSON(http.StatusCreated, response)
}
