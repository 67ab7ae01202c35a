package news

import (
	"strings"
	"time"

	"github.com/gymunity/backend/ingest"
	"github.com/gymunity/backend/model"
	"github.com/gymunity/backend/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type seedSource struct {
	name     string
	rssUrl   string
	category string
	tags     []string
}

var defaultSources = []seedSource{
	{
		name:     "ACE Insights",
		rssUrl:   "https://feeds.feedburner.com/acefitness/fitnovatives",
		category: "training",
		tags:     []string{"training", "injury prevention", "coaching"},
	},
	{
		name:     "Breaking Muscle",
		rssUrl:   "https://breakingmuscle.com/feed/rss",
		category: "training",
		tags:     []string{"strength", "conditioning", "recovery"},
	},
	{
		name:     "Mindbodygreen",
		rssUrl:   "https://www.mindbodygreen.com/rss/feed.xml",
		category: "wellness",
		tags:     []string{"nutrition", "recovery", "mental fitness"},
	},
}

type seedArticle struct {
	title      string
	summary    string
	tags       string
	link       string
	source     string
	offsetDays int
}

var mockArticles = []seedArticle{
	{
		title:      "Beginner strength roadmap: 3 days that actually stick",
		summary:    "A simple strength schedule built around compounds and steady progress.",
		tags:       "strength,training,beginner",
		link:       "https://example.com/news/strength-roadmap",
		source:     "Breaking Muscle",
		offsetDays: 1,
	},
	{
		title:      "Nutrition anchors for muscle gain without the stress",
		summary:    "Protein timing and easy calorie boosts that fit busy routines.",
		tags:       "nutrition,bodybuilding,muscle gain",
		link:       "https://example.com/news/nutrition-anchors",
		source:     "Mindbodygreen",
		offsetDays: 2,
	},
	{
		title:      "Conditioning finisher ideas for fat loss phases",
		summary:    "Short, focused finishers that lift heart rate without wrecking recovery.",
		tags:       "cardio,weight loss,fat loss,training",
		link:       "https://example.com/news/conditioning-finishers",
		source:     "ACE Insights",
		offsetDays: 3,
	},
	{
		title:      "Recovery checklists: sleep, hydration, and stress control",
		summary:    "Daily habits that reduce soreness and keep your training consistent.",
		tags:       "recovery,mental fitness,injury prevention",
		link:       "https://example.com/news/recovery-checklist",
		source:     "Mindbodygreen",
		offsetDays: 4,
	},
	{
		title:      "Home workout upgrades with minimal equipment",
		summary:    "Use bands, chairs, and tempo to keep progression moving at home.",
		tags:       "home,bodyweight,training",
		link:       "https://example.com/news/home-upgrades",
		source:     "ACE Insights",
		offsetDays: 5,
	},
	{
		title:      "Upper-body hypertrophy: volume that works",
		summary:    "Effective weekly volume targets for shoulders, chest, and back.",
		tags:       "bodybuilding,muscle gain,training",
		link:       "https://example.com/news/hypertrophy-volume",
		source:     "Breaking Muscle",
		offsetDays: 6,
	},
	{
		title:      "Injury prevention: shoulder-friendly push workouts",
		summary:    "Swap in joint-friendly angles while still hitting intensity.",
		tags:       "injury prevention,recovery,training",
		link:       "https://example.com/news/shoulder-friendly",
		source:     "ACE Insights",
		offsetDays: 7,
	},
	{
		title:      "Cardio zones explained: build endurance without burnout",
		summary:    "Why Zone 2 training supports long-term fitness and recovery.",
		tags:       "cardio,endurance,training",
		link:       "https://example.com/news/cardio-zones",
		source:     "Breaking Muscle",
		offsetDays: 8,
	},
}

// SeedSources installs the default source catalog. It only runs against an
// empty table so admin edits survive restarts.
func SeedSources(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&model.Source{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count sources")
	}
	if count > 0 {
		return 0, nil
	}

	for _, seed := range defaultSources {
		category := seed.category
		source := model.Source{
			Name:     seed.name,
			RssUrl:   seed.rssUrl,
			Category: &category,
			Tags:     utils.JoinCSV(seed.tags),
			Enabled:  true,
		}
		if err := db.Create(&source).Error; err != nil {
			return 0, errors.Wrap(err, "seed source")
		}
	}
	return len(defaultSources), nil
}

// SeedMockArticles installs the demo articles, routed through the same
// de-duplicating upsert a real ingestion run would use.
func SeedMockArticles(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&model.Article{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count articles")
	}
	if count > 0 {
		return 0, nil
	}

	var sources []model.Source
	if err := db.Order("id").Find(&sources).Error; err != nil {
		return 0, errors.Wrap(err, "load sources")
	}
	if len(sources) == 0 {
		return 0, nil
	}

	byName := map[string]*model.Source{}
	for i := range sources {
		byName[strings.ToLower(sources[i].Name)] = &sources[i]
	}
	pickSource := func(name string) *model.Source {
		if source, ok := byName[strings.ToLower(name)]; ok {
			return source
		}
		return &sources[0]
	}

	now := time.Now().UTC()
	articles := make([]model.Article, 0, len(mockArticles))
	for _, seed := range mockArticles {
		publishedAt := now.AddDate(0, 0, -seed.offsetDays)
		guid := seed.link
		articles = append(articles, model.Article{
			SourceID:    pickSource(seed.source).Id,
			Title:       seed.title,
			Link:        seed.link,
			Guid:        &guid,
			UniqueHash:  ingest.Fingerprint(seed.link),
			PublishedAt: &publishedAt,
			Summary:     seed.summary,
			Tags:        seed.tags,
		})
	}
	return ingest.UpsertArticles(db, articles)
}
