package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"gorm.io/gorm"
)

// ErrPersistFailed wraps any storage error raised while banking awards. No
// partial award is ever visible: the whole transaction rolled back.
var ErrPersistFailed = errors.New("failed to persist achievements")

// HistoryStore is the read access the rule engine needs into a user's
// training history.
type HistoryStore interface {
	// FirstSession returns the user's earliest session, nil when none exists.
	FirstSession(userID string) (*models.History, error)
	// CountStartedBetween counts sessions with training_start in [from, to].
	CountStartedBetween(userID string, from, to time.Time) (int64, error)
}

type gormHistoryStore struct {
	db *gorm.DB
}

func (s gormHistoryStore) FirstSession(userID string) (*models.History, error) {
	var h models.History
	err := s.db.Where("user_id = ?", userID).Order("training_start").First(&h).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (s gormHistoryStore) CountStartedBetween(userID string, from, to time.Time) (int64, error) {
	var count int64
	err := s.db.Model(&models.History{}).
		Where("user_id = ? AND training_start BETWEEN ? AND ?", userID, from, to).
		Count(&count).Error
	return count, err
}

// AchievementService evaluates the achievement catalog against a user's
// running history and banks new awards.
type AchievementService struct {
	db        *gorm.DB
	histories HistoryStore
	now       func() time.Time
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{
		db:        db,
		histories: gormHistoryStore{db: db},
		now:       time.Now,
	}
}

// Unfinished returns the candidate set for evaluation: every backend-sourced
// achievement the user has not banked yet, plus every recurring one
// regardless of prior awards. One pluck of banked ids and one catalog read;
// cost does not grow with history size.
func (s *AchievementService) Unfinished(userID string) ([]models.Achievement, error) {
	var banked []int
	if err := s.db.Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &banked).Error; err != nil {
		return nil, err
	}
	bankedSet := make(map[int]bool, len(banked))
	for _, id := range banked {
		bankedSet[id] = true
	}

	var catalog []models.Achievement
	if err := s.db.Where("source <> ?", models.SourceIOS).
		Order("id").Find(&catalog).Error; err != nil {
		return nil, err
	}

	candidates := make([]models.Achievement, 0, len(catalog))
	for _, a := range catalog {
		if a.Recurring || !bankedSet[a.ID] {
			candidates = append(candidates, a)
		}
	}
	return candidates, nil
}

// Evaluate runs every candidate's rule against the user's state and returns
// the newly earned achievements, client-reported ones appended. It is
// read-only: calling it any number of times before Apply changes nothing.
func (s *AchievementService) Evaluate(user *models.User, clientReported []any, latest *models.History, now time.Time) ([]models.Achievement, error) {
	candidates, err := s.Unfinished(user.ID)
	if err != nil {
		return nil, err
	}

	var earned []models.Achievement
	for _, a := range candidates {
		r, ok := ruleTable[a.ID]
		if !ok {
			continue // no rule shipped for this id yet
		}
		hit, err := s.satisfied(r, user, latest, now)
		if err != nil {
			return nil, err
		}
		if hit {
			earned = append(earned, a)
		}
	}

	reported, err := s.clientReportedAchievements(user.ID, clientReported)
	if err != nil {
		return nil, err
	}
	return append(earned, reported...), nil
}

// clientReportedAchievements resolves ids reported by the client into
// catalog rows, keeping only numeric ids of ios-sourced achievements.
// Anything else is dropped silently: clients ship garbage and foreign ids,
// and neither is this backend's error to raise. Non-recurring ids the user
// already banked are dropped too: clients re-report earned achievements on
// every session, and re-earning a one-shot is a no-op, not a fault.
func (s *AchievementService) clientReportedAchievements(userID string, raw []any) ([]models.Achievement, error) {
	ids := make([]int, 0, len(raw))
	for _, v := range raw {
		switch value := v.(type) {
		case int:
			ids = append(ids, value)
		case int64:
			ids = append(ids, int(value))
		case float64:
			ids = append(ids, int(value))
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				ids = append(ids, n)
			}
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var list []models.Achievement
	if err := s.db.Where("id IN ? AND source = ?", ids, models.SourceIOS).
		Order("id").Find(&list).Error; err != nil {
		return nil, err
	}

	var banked []int
	if err := s.db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND achievement_id IN ?", userID, ids).
		Pluck("achievement_id", &banked).Error; err != nil {
		return nil, err
	}
	bankedSet := make(map[int]bool, len(banked))
	for _, id := range banked {
		bankedSet[id] = true
	}

	kept := list[:0]
	for _, a := range list {
		if a.Recurring || !bankedSet[a.ID] {
			kept = append(kept, a)
		}
	}
	return kept, nil
}

// Apply banks the earned achievements in one transaction: skip-credit
// rewards are added to the user's balance, stale recurring rows are cleared,
// and one stamped row per achievement is inserted. The user row is only
// written when the reward sum is positive.
func (s *AchievementService) Apply(user *models.User, earned []models.Achievement, now time.Time) error {
	if len(earned) == 0 {
		return nil
	}

	rewards := 0
	recurringIDs := make([]int, 0, len(earned))
	rows := make([]models.UserAchievement, 0, len(earned))
	for _, a := range earned {
		rewards += a.RewardPoints
		if a.Recurring {
			recurringIDs = append(recurringIDs, a.ID)
		}
		rows = append(rows, models.UserAchievement{
			UserID:          user.ID,
			AchievementID:   a.ID,
			AchievementDate: now,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if rewards > 0 {
			user.SkipBalance += rewards
			if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
				Update("skip_balance", user.SkipBalance).Error; err != nil {
				return err
			}
		}
		if len(recurringIDs) > 0 {
			if err := tx.Where("user_id = ? AND achievement_id IN ?", user.ID, recurringIDs).
				Delete(&models.UserAchievement{}).Error; err != nil {
				return err
			}
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return nil
}

// EvaluateAndApply is the call the history handler makes after a completed
// training is logged.
func (s *AchievementService) EvaluateAndApply(user *models.User, clientReported []any, latest *models.History) ([]models.Achievement, error) {
	now := s.now()
	earned, err := s.Evaluate(user, clientReported, latest, now)
	if err != nil {
		return nil, err
	}
	if err := s.Apply(user, earned, now); err != nil {
		return nil, err
	}
	return earned, nil
}
