package model

import "time"

/*

Source is a data model for a subscribed news feed.

Id: primary key, use to identify a source
Name: the display name of the source, for example "Breaking Muscle"
RssUrl: the feed URL, unique across all sources
Category: optional grouping label, for example "training" or "wellness"
Tags: comma-joined lowercase tag list, matched by substring in feed queries
Enabled: disabled sources are invisible to every non-admin read path
CreatedAt: time when entity is created
LastFetchedAt: time of the most recent fetch run that covered this source

Articles: articles ingested from this source, removed together with it
*/
type Source struct {
	Id            int64      `gorm:"primaryKey"`
	Name          string     `gorm:"not null"`
	RssUrl        string     `gorm:"uniqueIndex;not null"`
	Category      *string
	Tags          string
	Enabled       bool       `gorm:"not null;default:true"`
	CreatedAt     time.Time
	LastFetchedAt *time.Time

	Articles []Article `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
