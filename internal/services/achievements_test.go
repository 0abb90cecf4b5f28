package services

import (
	"testing"
	"time"

	"github.com/Diary-workout-tracker/diary-workout-tracker-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnfinishedSelector(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewAchievementService(db)
	user := createTestUser(t, db, "selector@example.com")

	// 4 is banked and one-shot, 1 is banked but recurring
	require.NoError(t, db.Create(&models.UserAchievement{
		UserID: user.ID, AchievementID: 4, AchievementDate: testNow,
	}).Error)
	require.NoError(t, db.Create(&models.UserAchievement{
		UserID: user.ID, AchievementID: 1, AchievementDate: testNow,
	}).Error)

	candidates, err := svc.Unfinished(user.ID)
	require.NoError(t, err)

	ids := earnedIDs(candidates)
	assert.NotContains(t, ids, 4, "banked one-shot achievements are not re-checked")
	assert.Contains(t, ids, 1, "recurring achievements are always re-checked")
	assert.Contains(t, ids, 5)
	for _, id := range []int{18, 19, 20, 23, 24, 25, 26} {
		assert.NotContains(t, ids, id, "ios-sourced achievements are never backend candidates")
	}
}

func TestEvaluateFiltersClientReportedIDs(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewAchievementService(db)
	user := createTestUser(t, db, "filter@example.com")
	latest := createSession(t, db, user, 2, testNow.Add(-time.Hour), []string{"Moscow"})

	// 26 is ios-sourced, 11 is backend-sourced, the rest is garbage
	earned, err := svc.Evaluate(user, []any{"26", "not-a-number", 11, nil}, latest, testNow)
	require.NoError(t, err)

	assert.Equal(t, []int{26}, earnedIDs(earned),
		"only the valid ios id comes through the client channel")
}

func TestRereportedClientAchievementIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewAchievementService(db)
	svc.now = func() time.Time { return testNow }
	user := createTestUser(t, db, "rereport@example.com")

	first := createSession(t, db, user, 1, testNow.Add(-2*time.Hour), nil)
	earned, err := svc.EvaluateAndApply(user, []any{26}, first)
	require.NoError(t, err)
	assert.Contains(t, earnedIDs(earned), 26)

	// clients re-send every earned id with each session
	second := createSession(t, db, user, 2, testNow.Add(-time.Hour), nil)
	earned, err = svc.EvaluateAndApply(user, []any{26}, second)
	require.NoError(t, err, "re-reporting a banked one-shot must not fail the request")
	assert.NotContains(t, earnedIDs(earned), 26)

	var count int64
	db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", user.ID, 26).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestEvaluateAndApplyIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewAchievementService(db)
	svc.now = func() time.Time { return testNow }
	user := createTestUser(t, db, "idempotent@example.com")
	user.TotalMRun = 20_000 // qualifies for the 20 km club
	latest := createSession(t, db, user, 1, testNow.Add(-time.Hour), nil)

	earned, err := svc.EvaluateAndApply(user, nil, latest)
	require.NoError(t, err)
	assert.Contains(t, earnedIDs(earned), 4)

	earned, err = svc.EvaluateAndApply(user, nil, latest)
	require.NoError(t, err)
	assert.NotContains(t, earnedIDs(earned), 4, "a banked one-shot must not be earned again")

	var count int64
	db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", user.ID, 4).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestRecurringAwardReplacesNotDuplicates(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewAchievementService(db)
	user := createTestUser(t, db, "recurring@example.com")

	var machine, club models.Achievement
	require.NoError(t, db.First(&machine, 2).Error)
	require.NoError(t, db.First(&club, 4).Error)

	firstAward := testNow.Add(-7 * 24 * time.Hour)
	require.NoError(t, svc.Apply(user, []models.Achievement{machine, club}, firstAward))

	secondAward := testNow
	require.NoError(t, svc.Apply(user, []models.Achievement{machine}, secondAward))

	var rows []models.UserAchievement
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("achievement_id").Find(&rows).Error)
	require.Len(t, rows, 2, "re-award must replace, not duplicate")

	assert.Equal(t, 2, rows[0].AchievementID)
	assert.WithinDuration(t, secondAward, rows[0].AchievementDate, time.Second,
		"recurring row carries the latest award time")
	assert.Equal(t, 4, rows[1].AchievementID)
	assert.WithinDuration(t, firstAward, rows[1].AchievementDate, time.Second,
		"unrelated one-shot row is untouched")
}

func TestApplyAddsRewardsToSkipBalance(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewAchievementService(db)
	user := createTestUser(t, db, "rewards@example.com")

	var a4, a5 models.Achievement
	require.NoError(t, db.First(&a4, 4).Error)
	require.NoError(t, db.First(&a5, 5).Error)

	require.NoError(t, svc.Apply(user, []models.Achievement{a4, a5}, testNow))

	var fresh models.User
	require.NoError(t, db.First(&fresh, "id = ?", user.ID).Error)
	assert.Equal(t, 2, fresh.SkipBalance)
}

func TestApplyEmptyIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewAchievementService(db)
	user := createTestUser(t, db, "noop@example.com")

	require.NoError(t, svc.Apply(user, nil, testNow))

	var count int64
	db.Model(&models.UserAchievement{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
}

func TestApplyRollsBackOnDuplicateOneShot(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewAchievementService(db)
	user := createTestUser(t, db, "conflict@example.com")

	var club models.Achievement
	require.NoError(t, db.First(&club, 4).Error)
	require.NoError(t, db.Create(&models.UserAchievement{
		UserID: user.ID, AchievementID: 4, AchievementDate: testNow.Add(-time.Hour),
	}).Error)

	// a concurrent evaluation already banked 4: the insert must collide and
	// the balance update must roll back with it
	err := svc.Apply(user, []models.Achievement{club}, testNow)
	require.ErrorIs(t, err, ErrPersistFailed)

	var fresh models.User
	require.NoError(t, db.First(&fresh, "id = ?", user.ID).Error)
	assert.Zero(t, fresh.SkipBalance, "no partial award may be visible")
}

func TestCurriculumMilestoneScenario(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)
	svc := NewAchievementService(db)
	svc.now = func() time.Time { return testNow }

	// day 1 with four cities: Traveler
	user := createTestUser(t, db, "scenario-day1@example.com")
	latest := createSession(t, db, user, 1, testNow.Add(-time.Hour),
		[]string{"Moscow", "St. Petersburg", "Kazan", "Sochi"})
	earned, err := svc.EvaluateAndApply(user, nil, latest)
	require.NoError(t, err)
	assert.Contains(t, earnedIDs(earned), 22)

	// day 50: Equator
	user = createTestUser(t, db, "scenario-day50@example.com")
	latest = createSession(t, db, user, 50, testNow.Add(-time.Hour), nil)
	earned, err = svc.EvaluateAndApply(user, nil, latest)
	require.NoError(t, err)
	assert.Contains(t, earnedIDs(earned), 3)

	// day 100: every goblet tier lands in a single evaluation
	user = createTestUser(t, db, "scenario-day100@example.com")
	latest = createSession(t, db, user, 100, testNow.Add(-time.Hour), nil)
	earned, err = svc.EvaluateAndApply(user, nil, latest)
	require.NoError(t, err)
	for _, id := range []int{12, 13, 14, 15, 16, 17} {
		assert.Contains(t, earnedIDs(earned), id)
	}
}
