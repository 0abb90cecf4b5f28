package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/database"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linkLastSession(t *testing.T, user *models.User, day int, start time.Time) {
	t.Helper()

	h := models.History{
		UserID:        user.ID,
		DayNumber:     day,
		TrainingStart: start,
		TrainingEnd:   start.Add(30 * time.Minute),
		Completed:     true,
	}
	require.NoError(t, database.DB.Create(&h).Error)
	require.NoError(t, database.DB.Model(user).Update("last_completed_id", h.ID).Error)
}

func TestUpdateTimezoneConsumesSkips(t *testing.T) {
	SetupTestDB(t)
	user := createUser(t, "tz-skip@example.com")
	// last trained three days ago: two missed days after the grace window
	linkLastSession(t, user, 10, time.Now().AddDate(0, 0, -3))

	c, w := authedRequest(t, user.ID, "PATCH", "/api/v1/me/timezone", map[string]any{
		"timezone": "Europe/Moscow",
	})
	UpdateTimezone(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Enough       bool   `json:"enough"`
		Skip         bool   `json:"skip"`
		Outcome      string `json:"outcome"`
		DaysConsumed int    `json:"daysConsumed"`
		SkipBalance  int    `json:"skipBalance"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Enough)
	assert.True(t, resp.Skip)
	assert.Equal(t, "skipped", resp.Outcome)
	assert.Equal(t, 2, resp.DaysConsumed)
	assert.Equal(t, 3, resp.SkipBalance)

	var fresh models.User
	require.NoError(t, database.DB.First(&fresh, "id = ?", user.ID).Error)
	assert.Equal(t, "Europe/Moscow", fresh.Timezone)
	assert.Equal(t, 3, fresh.SkipBalance)
}

func TestUpdateTimezoneRejectsUnknown(t *testing.T) {
	SetupTestDB(t)
	user := createUser(t, "tz-bad@example.com")

	c, w := authedRequest(t, user.ID, "PATCH", "/api/v1/me/timezone", map[string]any{
		"timezone": "Mars/Olympus_Mons",
	})
	UpdateTimezone(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResetMeRestoresDefaults(t *testing.T) {
	SetupTestDB(t)
	seedTestCatalog(t, 4)
	user := createUser(t, "reset@example.com")

	linkLastSession(t, user, 10, time.Now().AddDate(0, 0, -1))
	require.NoError(t, database.DB.Model(user).Updates(map[string]any{
		"total_m_run": 42_000, "skip_balance": 1, "blocked_training": true,
	}).Error)
	require.NoError(t, database.DB.Create(&models.UserAchievement{
		UserID: user.ID, AchievementID: 4, AchievementDate: time.Now(),
	}).Error)

	c, w := authedRequest(t, user.ID, "PATCH", "/api/v1/me/reset", nil)
	ResetMe(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var fresh models.User
	require.NoError(t, database.DB.First(&fresh, "id = ?", user.ID).Error)
	assert.Equal(t, 5, fresh.SkipBalance)
	assert.Zero(t, fresh.TotalMRun)
	assert.False(t, fresh.BlockedTraining)
	assert.Nil(t, fresh.LastCompletedID)

	var histories, awards int64
	database.DB.Model(&models.History{}).Where("user_id = ?", user.ID).Count(&histories)
	database.DB.Model(&models.UserAchievement{}).Where("user_id = ?", user.ID).Count(&awards)
	assert.Zero(t, histories)
	assert.Zero(t, awards)
}

func TestGetMeRequiresExistingUser(t *testing.T) {
	SetupTestDB(t)

	c, w := authedRequest(t, "no-such-user", "GET", "/api/v1/me", nil)
	GetMe(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
