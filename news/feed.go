package news

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gymunity/backend/model"
	"github.com/gymunity/backend/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPageSize applies when a request omits page_size; maxPageSize caps
// what a caller may ask for.
const (
	DefaultPageSize = 12
	maxPageSize     = 50
)

// FeedQuery carries the request-level feed filters. Zero values mean "not
// set"; Page and PageSize are clamped before use.
type FeedQuery struct {
	Topic    string
	Source   string
	Query    string
	From     string
	To       string
	Page     int
	PageSize int
}

// GetFeed runs the personalized feed: stored preferences supply the default
// topic filter and the blocked keywords, request-level filters compose on
// top.
func (s *Service) GetFeed(userID int64, query FeedQuery) (*FeedPage, error) {
	pref, err := s.getOrCreatePreference(userID)
	if err != nil {
		return nil, err
	}

	// An explicit topic override wins over the stored interests.
	topics := utils.SplitCSV(query.Topic)
	if len(topics) == 0 {
		topics = utils.SplitCSV(pref.Topics)
	}
	blocked := utils.SplitCSV(pref.BlockedKeywords)

	return s.queryArticles(userID, query, topics, blocked)
}

// GetExplore is the same engine without preference-driven defaults: only the
// filters present on the request apply, surfacing the full catalog.
func (s *Service) GetExplore(userID int64, query FeedQuery) (*FeedPage, error) {
	return s.queryArticles(userID, query, utils.SplitCSV(query.Topic), nil)
}

// GetSaved lists the user's saved articles, newest first. Disabled sources
// stay excluded even for saved items.
func (s *Service) GetSaved(userID int64, page, pageSize int) (*FeedPage, error) {
	page, pageSize = clampPaging(page, pageSize)

	tx := s.db.Model(&model.Article{}).
		Joins("JOIN sources ON sources.id = articles.source_id").
		Where("sources.enabled = ?", true).
		Where("articles.id IN (?)", s.savedArticleIds(userID))

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count saved articles")
	}

	var articles []model.Article
	err := tx.Order("articles.published_at DESC").
		Preload("Source").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&articles).Error
	if err != nil {
		return nil, errors.Wrap(err, "query saved articles")
	}

	items := make([]ArticleOut, 0, len(articles))
	for i := range articles {
		items = append(items, serializeArticle(&articles[i], true))
	}
	return &FeedPage{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

// GetArticle returns a single article with the caller's save state.
func (s *Service) GetArticle(userID, articleID int64) (*ArticleOut, error) {
	var article model.Article
	result := s.db.Preload("Source").First(&article, "id = ?", articleID)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(ErrNotFound, "article")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "read article")
	}

	var saved int64
	if err := s.db.Model(&model.SavedArticle{}).Where("user_id = ? AND article_id = ?", userID, articleID).Count(&saved).Error; err != nil {
		return nil, errors.Wrap(err, "read save state")
	}
	out := serializeArticle(&article, saved > 0)
	return &out, nil
}

// queryArticles composes the filter predicates, computes the total before
// slicing, applies the ranking order and annotates the page with the
// caller's save state.
func (s *Service) queryArticles(userID int64, query FeedQuery, topics, blocked []string) (*FeedPage, error) {
	page, pageSize := clampPaging(query.Page, query.PageSize)

	tx := s.db.Model(&model.Article{}).
		Joins("JOIN sources ON sources.id = articles.source_id").
		Where("sources.enabled = ?", true)
	tx = applyArticleFilters(tx, topics, query.Source, query.Query, parseDate(query.From), parseDate(query.To))
	tx = applyBlockedKeywords(tx, blocked)
	tx = tx.Where("articles.id NOT IN (?)", s.hiddenArticleIds(userID))

	var total int64
	if err := tx.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "count feed articles")
	}

	if len(topics) > 0 {
		tx = tx.Order(topicRelevanceOrder(topics))
	} else {
		tx = tx.Order("articles.published_at DESC")
	}

	var articles []model.Article
	err := tx.Preload("Source").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&articles).Error
	if err != nil {
		return nil, errors.Wrap(err, "query feed articles")
	}

	saved, err := s.savedSet(userID, articles)
	if err != nil {
		return nil, err
	}

	items := make([]ArticleOut, 0, len(articles))
	for i := range articles {
		items = append(items, serializeArticle(&articles[i], saved[articles[i].Id]))
	}
	return &FeedPage{Items: items, Page: page, PageSize: pageSize, Total: total}, nil
}

// applyArticleFilters adds the request-level predicates. A source filter that
// parses as an integer selects by source id, anything else matches the source
// name by substring.
func applyArticleFilters(tx *gorm.DB, topics []string, source, search string, from, to *time.Time) *gorm.DB {
	if source != "" {
		if sourceID, err := strconv.ParseInt(source, 10, 64); err == nil {
			tx = tx.Where("articles.source_id = ?", sourceID)
		} else {
			tx = tx.Where("sources.name ILIKE ?", contains(source))
		}
	}

	if search != "" {
		pattern := contains(search)
		tx = tx.Where("articles.title ILIKE ? OR articles.summary ILIKE ?", pattern, pattern)
	}

	if from != nil {
		tx = tx.Where("articles.published_at >= ?", *from)
	}
	if to != nil {
		tx = tx.Where("articles.published_at <= ?", *to)
	}

	// Topic selection is OR semantics over the comma-joined tag text. This is
	// deliberately a substring match, not exact tag membership: topic "card"
	// matches tag "cardio". Clients depend on the looser behavior.
	if len(topics) > 0 {
		cond := tx.Session(&gorm.Session{NewDB: true}).Where("articles.tags ILIKE ?", contains(topics[0]))
		for _, topic := range topics[1:] {
			cond = cond.Or("articles.tags ILIKE ?", contains(topic))
		}
		tx = tx.Where(cond)
	}

	return tx
}

// applyBlockedKeywords excludes any article whose title or summary contains
// one of the user's blocked keywords.
func applyBlockedKeywords(tx *gorm.DB, blocked []string) *gorm.DB {
	for _, keyword := range blocked {
		pattern := contains(keyword)
		tx = tx.Where("NOT (articles.title ILIKE ? OR articles.summary ILIKE ?)", pattern, pattern)
	}
	return tx
}

// topicRelevanceOrder ranks by how many of the effective topics appear in the
// article's tag text, most matches first, recency as the tie breaker.
func topicRelevanceOrder(topics []string) clause.OrderBy {
	parts := make([]string, 0, len(topics))
	vars := make([]interface{}, 0, len(topics))
	for _, topic := range topics {
		parts = append(parts, "(CASE WHEN articles.tags ILIKE ? THEN 1 ELSE 0 END)")
		vars = append(vars, contains(topic))
	}
	score := strings.Join(parts, " + ")
	return clause.OrderBy{
		Expression: clause.Expr{SQL: score + " DESC, articles.published_at DESC", Vars: vars},
	}
}

func (s *Service) hiddenArticleIds(userID int64) *gorm.DB {
	return s.db.Model(&model.HiddenArticle{}).Select("article_id").Where("user_id = ?", userID)
}

func (s *Service) savedArticleIds(userID int64) *gorm.DB {
	return s.db.Model(&model.SavedArticle{}).Select("article_id").Where("user_id = ?", userID)
}

// savedSet returns which of the given articles the user has saved.
func (s *Service) savedSet(userID int64, articles []model.Article) (map[int64]bool, error) {
	saved := map[int64]bool{}
	if len(articles) == 0 {
		return saved, nil
	}

	ids := make([]int64, 0, len(articles))
	for i := range articles {
		ids = append(ids, articles[i].Id)
	}
	var marks []model.SavedArticle
	if err := s.db.Where("user_id = ? AND article_id IN ?", userID, ids).Find(&marks).Error; err != nil {
		return nil, errors.Wrap(err, "read save state")
	}
	for _, mark := range marks {
		saved[mark.ArticleID] = true
	}
	return saved, nil
}

func clampPaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// parseDate is deliberately lenient: an unparsable date filter degrades to
// "no bound" instead of erroring.
func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := dateparse.ParseAny(value)
	if err != nil {
		return nil
	}
	return &parsed
}

func contains(value string) string {
	return "%" + value + "%"
}
