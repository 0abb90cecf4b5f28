package models

import "time"

type AchievementSource string

const (
	// SourceBackend achievements are decided by this backend's rule engine.
	SourceBackend AchievementSource = "backend"
	// SourceIOS achievements are decided by the client platform and merely
	// recorded here.
	SourceIOS AchievementSource = "ios"
)

// Achievement is a catalog entry. Evaluation is keyed by the numeric ID,
// never by the title: titles are editable copy.
type Achievement struct {
	ID           int               `gorm:"primaryKey" json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Icon         string            `json:"icon"`
	Stars        int               `json:"stars"`
	RewardPoints int               `json:"rewardPoints"` // skip credits granted on award
	Recurring    bool              `gorm:"default:false" json:"recurring"`
	Source       AchievementSource `gorm:"type:text;default:'backend'" json:"source"`
}

// UserAchievement records an award. The composite primary key is the
// uniqueness mechanism: a concurrent duplicate award of a one-shot
// achievement fails the insert instead of producing a second row.
type UserAchievement struct {
	UserID          string    `gorm:"primaryKey;type:text" json:"userId"`
	AchievementID   int       `gorm:"primaryKey" json:"achievementId"`
	AchievementDate time.Time `gorm:"not null" json:"achievementDate"`

	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement"`
}
