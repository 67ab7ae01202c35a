package model

import "time"

/*

Preference holds a user's news personalization settings, one row per user.

Created lazily with defaults on first access, mutated only by the owning user.

Topics: comma-joined lowercase topic interests driving the default feed filter
Level: training experience, defaults to "beginner"
Equipment: training context, defaults to "gym"
BlockedKeywords: comma-joined lowercase keywords; any match on an article's title or
summary excludes it from the personalized feed
*/
type Preference struct {
	UserID          int64  `gorm:"primaryKey"`
	User            User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Topics          string `gorm:"not null;default:''"`
	Level           string `gorm:"not null;default:'beginner'"`
	Equipment       string `gorm:"not null;default:'gym'"`
	BlockedKeywords string `gorm:"not null;default:''"`
	UpdatedAt       time.Time
}
