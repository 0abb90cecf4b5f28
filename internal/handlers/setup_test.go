package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/config"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/database"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB points database.DB at a fresh in-memory SQLite DB, stubs the
// config and rewires the handler services.
func SetupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlers-%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}
	database.DB = db

	if err := database.DB.AutoMigrate(
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

	config.AppConfig = &config.Config{
		JWTSecret:          "test-secret",
		DefaultSkipBalance: 5,
		BlockedSkipBalance: 0,
		AuthCodeTTL:        600,
		AuthCodeCooldown:   60,
	}
	Init()
}

func seedTestCatalog(t *testing.T, ids ...int) {
	t.Helper()

	iosIDs := map[int]bool{18: true, 19: true, 20: true, 23: true, 24: true, 25: true, 26: true}
	var catalog []models.Achievement
	for _, id := range ids {
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
	if err := database.DB.Create(&catalog).Error; err != nil {
		t.Fatalf("Failed to seed catalog: %v", err)
	}
}

func createUser(t *testing.T, email string) *models.User {
	t.Helper()

	user := models.User{
		Email:       email,
		Name:        "Test Runner",
		Timezone:    "UTC",
		SkipBalance: config.AppConfig.DefaultSkipBalance,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

// authedRequest builds a test context with a JSON body and the userId the
// auth middleware would have set.
func authedRequest(t *testing.T, userID, method, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	if userID != "" {
		c.Set("userId", userID)
	}
	return c, w
}
