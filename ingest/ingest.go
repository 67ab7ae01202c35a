// Package ingest turns external feed documents into article rows and writes
// them with per-source de-duplication. Nothing in here polls the network; a
// future pipeline plugs into UpsertArticles with whatever it fetched.
package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gymunity/backend/model"
	"github.com/gymunity/backend/utils"
	"github.com/mmcdole/gofeed"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fingerprint is the stable de-duplication hash of an article's canonical
// link. Together with the source id it uniquely identifies an article.
func Fingerprint(link string) string {
	sum := sha256.Sum256([]byte(link))
	return hex.EncodeToString(sum[:])
}

// ParseFeed parses a raw RSS or Atom document.
func ParseFeed(document string) (*gofeed.Feed, error) {
	feed, err := gofeed.NewParser().ParseString(document)
	if err != nil {
		return nil, errors.Wrap(err, "parse feed document")
	}
	return feed, nil
}

// FromFeed converts parsed feed items into article rows for the given
// source. Items without a link are skipped since the link is the identity of
// an article.
func FromFeed(sourceID int64, feed *gofeed.Feed) []model.Article {
	articles := make([]model.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Link == "" {
			continue
		}

		article := model.Article{
			SourceID:    sourceID,
			Title:       item.Title,
			Link:        item.Link,
			UniqueHash:  Fingerprint(item.Link),
			Summary:     item.Description,
			Tags:        utils.JoinCSV(item.Categories),
			PublishedAt: publishedTime(item),
		}
		if item.GUID != "" {
			guid := item.GUID
			article.Guid = &guid
		}
		if item.Content != "" {
			content := item.Content
			article.Content = &content
		}
		if item.Author != nil && item.Author.Name != "" {
			author := item.Author.Name
			article.Author = &author
		}
		if item.Image != nil && item.Image.URL != "" {
			imageUrl := item.Image.URL
			article.ImageUrl = &imageUrl
		}
		articles = append(articles, article)
	}
	return articles
}

// UpsertArticles inserts the given articles, silently skipping any row whose
// (source id, fingerprint) pair already exists. Returns the number of rows
// actually inserted, so re-ingesting the same items reports zero.
func UpsertArticles(db *gorm.DB, articles []model.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	result := db.Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_id"}, {Name: "unique_hash"}},
		DoNothing: true,
	}).Create(&articles)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "upsert articles")
	}
	return int(result.RowsAffected), nil
}

func publishedTime(item *gofeed.Item) *time.Time {
	if item.PublishedParsed != nil {
		published := item.PublishedParsed.UTC()
		return &published
	}
	if item.Published != "" {
		// Feeds are sloppy about date formats; parse leniently and give up
		// quietly.
		if parsed, err := dateparse.ParseAny(item.Published); err == nil {
			published := parsed.UTC()
			return &published
		}
	}
	return nil
}
