package model

import "time"

/*

Article is a single content item ingested from a Source.

Id: primary key
SourceID:
Source: owning source, "belongs-to" relation, cascade delete
Title: article's title in plain text
Link: canonical URL of the article
Guid: external feed identifier, if the feed provided one
UniqueHash: stable hash of the canonical link; (SourceID, UniqueHash) is unique so
re-ingesting the same item under a source can never create a duplicate row
PublishedAt: publish time as reported by the feed, may be absent
Summary: short plain text description
Content: full content when the feed carries it
Tags: comma-joined lowercase tag list, matched by substring in feed queries
CreatedAt: time when entity is created
*/
type Article struct {
	Id          int64      `gorm:"primaryKey"`
	SourceID    int64      `gorm:"not null;index;uniqueIndex:idx_articles_source_hash"`
	Source      Source     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Title       string     `gorm:"not null"`
	Link        string     `gorm:"not null"`
	Guid        *string
	UniqueHash  string     `gorm:"not null;uniqueIndex:idx_articles_source_hash"`
	PublishedAt *time.Time `gorm:"index"`
	Author      *string
	Summary     string     `gorm:"type:text;not null;default:''"`
	Content     *string    `gorm:"type:text"`
	ImageUrl    *string
	Tags        string
	CreatedAt   time.Time
}
