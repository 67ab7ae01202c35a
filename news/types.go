package news

import (
	"time"

	"github.com/gymunity/backend/model"
	"github.com/gymunity/backend/utils"
)

// SourceOut is the JSON shape of a source. Tags travel as an ordered list
// even though they are stored comma-joined.
type SourceOut struct {
	Id            int64      `json:"id"`
	Name          string     `json:"name"`
	RssUrl        string     `json:"rss_url"`
	Category      *string    `json:"category"`
	Tags          []string   `json:"tags"`
	Enabled       bool       `json:"enabled"`
	CreatedAt     time.Time  `json:"created_at"`
	LastFetchedAt *time.Time `json:"last_fetched_at"`
}

type SourceCreate struct {
	Name     string   `json:"name" binding:"required"`
	RssUrl   string   `json:"rss_url" binding:"required"`
	Category *string  `json:"category"`
	Tags     []string `json:"tags"`
	Enabled  *bool    `json:"enabled"`
}

// SourceUpdate is a partial patch: only non-nil fields change.
type SourceUpdate struct {
	Name     *string   `json:"name"`
	RssUrl   *string   `json:"rss_url"`
	Category *string   `json:"category"`
	Tags     *[]string `json:"tags"`
	Enabled  *bool     `json:"enabled"`
}

type ArticleOut struct {
	Id          int64      `json:"id"`
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Guid        *string    `json:"guid"`
	PublishedAt *time.Time `json:"published_at"`
	Author      *string    `json:"author"`
	Summary     string     `json:"summary"`
	Content     *string    `json:"content"`
	ImageUrl    *string    `json:"image_url"`
	Tags        []string   `json:"tags"`
	Source      SourceOut  `json:"source"`
	Saved       bool       `json:"saved"`
}

// FeedPage is the pagination envelope shared by feed, explore and saved.
type FeedPage struct {
	Items    []ArticleOut `json:"items"`
	Page     int          `json:"page"`
	PageSize int          `json:"page_size"`
	Total    int64        `json:"total"`
}

type PreferencesOut struct {
	Topics          []string `json:"topics"`
	Level           string   `json:"level"`
	Equipment       string   `json:"equipment"`
	BlockedKeywords []string `json:"blocked_keywords"`
}

type PreferencesIn struct {
	Topics          []string `json:"topics"`
	Level           string   `json:"level"`
	Equipment       string   `json:"equipment"`
	BlockedKeywords []string `json:"blocked_keywords"`
}

func serializeSource(source *model.Source) SourceOut {
	return SourceOut{
		Id:            source.Id,
		Name:          source.Name,
		RssUrl:        source.RssUrl,
		Category:      source.Category,
		Tags:          utils.SplitCSV(source.Tags),
		Enabled:       source.Enabled,
		CreatedAt:     source.CreatedAt,
		LastFetchedAt: source.LastFetchedAt,
	}
}

func serializeArticle(article *model.Article, saved bool) ArticleOut {
	return ArticleOut{
		Id:          article.Id,
		Title:       article.Title,
		Link:        article.Link,
		Guid:        article.Guid,
		PublishedAt: article.PublishedAt,
		Author:      article.Author,
		Summary:     article.Summary,
		Content:     article.Content,
		ImageUrl:    article.ImageUrl,
		Tags:        utils.SplitCSV(article.Tags),
		Source:      serializeSource(&article.Source),
		Saved:       saved,
	}
}
