package models

// MotivationalPhrase is shown on a curriculum day in the training plan.
// Ordered by position, one per day.
type MotivationalPhrase struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Position int    `gorm:"uniqueIndex" json:"position"`
	Text     string `gorm:"not null" json:"text"`
}

// RecreationPhrase replaces a motivational phrase on projected rest days for
// users who train four or five times a week.
type RecreationPhrase struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Position int    `gorm:"uniqueIndex" json:"position"`
	Text     string `gorm:"not null" json:"text"`
}
