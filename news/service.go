// Package news implements the personalized news feed: source registry,
// per-user preferences, save/hide state and the feed query engine.
package news

import (
	"errors"

	"gorm.io/gorm"
)

// Domain errors surfaced to the HTTP layer. Match with errors.Is; wrapping
// preserves the chain.
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateRssUrl = errors.New("RSS URL already exists")
)

// Service bundles the relational store with the process-lifetime fetch
// status. All request handlers share one instance.
type Service struct {
	db     *gorm.DB
	status *FetchStatus
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, status: &FetchStatus{}}
}
