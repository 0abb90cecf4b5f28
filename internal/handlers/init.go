package handlers

import (
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/config"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/database"
	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/services"
)

var (
	achievementSvc *services.AchievementService
	streakSvc      *services.StreakService
	phraseSvc      *services.PhraseService
	authCodeSvc    *services.AuthCodeService
)

// Init wires the handler package to its services. Called once from main
// after the database and redis connections are up.
func Init() {
	cfg := config.AppConfig

	achievementSvc = services.NewAchievementService(database.DB)
	streakSvc = services.NewStreakService(database.DB, cfg.BlockedSkipBalance)
	phraseSvc = services.NewPhraseService(database.DB)

	var store services.CodeStore
	if database.Redis != nil {
		store = services.RedisCodeStore{Client: database.Redis}
	} else {
		store = services.NewMemoryCodeStore()
	}

	var mailer services.Mailer
	if cfg.SMTPHost != "" {
		mailer = services.SMTPMailer{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			From: cfg.SMTPFrom,
		}
	} else {
		mailer = services.LogMailer{}
	}

	authCodeSvc = services.NewAuthCodeService(
		store,
		mailer,
		time.Duration(cfg.AuthCodeTTL)*time.Second,
		time.Duration(cfg.AuthCodeCooldown)*time.Second,
	)
}
