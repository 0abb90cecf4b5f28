package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Day{},
		&models.History{},
		&models.Achievement{},
		&models.UserAchievement{},
		&models.MotivationalPhrase{},
		&models.RecreationPhrase{},
	); err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}
	return db
}

// seedCatalog inserts the full achievement catalog with 1 reward point per
// entry, recurring weekly badges, ids 18-20 and 23-26 ios-sourced.
func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	iosIDs := map[int]bool{18: true, 19: true, 20: true, 23: true, 24: true, 25: true, 26: true}
	var catalog []models.Achievement
	for id := 1; id <= 26; id++ {
		a := models.Achievement{
			ID:           id,
			Title:        fmt.Sprintf("Achievement %d", id),
			RewardPoints: 1,
			Source:       models.SourceBackend,
		}
		if id == 1 || id == 2 {
			a.Recurring = true
		}
		if iosIDs[id] {
			a.Source = models.SourceIOS
		}
		catalog = append(catalog, a)
	}
	if err := db.Create(&catalog).Error; err != nil {
		t.Fatalf("Failed to seed catalog: %v", err)
	}
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{Email: email, Name: "Test Runner", Timezone: "UTC"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

func createSession(t *testing.T, db *gorm.DB, user *models.User, day int, start time.Time, cities []string) *models.History {
	t.Helper()

	h := models.History{
		UserID:        user.ID,
		DayNumber:     day,
		TrainingStart: start,
		TrainingEnd:   start.Add(30 * time.Minute),
		Cities:        cities,
		Distance:      1000,
		Completed:     true,
	}
	if err := db.Create(&h).Error; err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	user.LastCompleted = &h
	user.LastCompletedID = &h.ID
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("last_completed_id", h.ID).Error; err != nil {
		t.Fatalf("Failed to link last completed session: %v", err)
	}
	return &h
}

func earnedIDs(earned []models.Achievement) []int {
	ids := make([]int, 0, len(earned))
	for _, a := range earned {
		ids = append(ids, a.ID)
	}
	return ids
}
