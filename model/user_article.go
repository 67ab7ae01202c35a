package model

import "time"

/*

SavedArticle is a relation marking that a user saved an article.

The composite primary key doubles as the uniqueness backstop: a duplicate save
racing another request fails the insert instead of creating a second row.
*/
type SavedArticle struct {
	UserID    int64   `gorm:"primaryKey"`
	ArticleID int64   `gorm:"primaryKey"`
	User      User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Article   Article `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
}

// HiddenArticle marks an article a user does not want to see again. Hiding
// supersedes saving: creating one removes any SavedArticle for the same pair.
type HiddenArticle struct {
	UserID    int64   `gorm:"primaryKey"`
	ArticleID int64   `gorm:"primaryKey"`
	User      User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Article   Article `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time
}
