package news

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExplorePaginationAndOrder(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")

	seeded, err := SeedSources(db)
	require.NoError(t, err)
	require.Equal(t, 3, seeded)
	inserted, err := SeedMockArticles(db)
	require.NoError(t, err)
	require.Equal(t, 8, inserted)

	page, err := service.GetExplore(user.Id, FeedQuery{Page: 1, PageSize: 5})
	require.NoError(t, err)
	require.Equal(t, int64(8), page.Total)
	require.Len(t, page.Items, 5)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 5, page.PageSize)
	for i := 1; i < len(page.Items); i++ {
		require.False(t, page.Items[i].PublishedAt.After(*page.Items[i-1].PublishedAt))
	}

	second, err := service.GetExplore(user.Id, FeedQuery{Page: 2, PageSize: 5})
	require.NoError(t, err)
	require.Len(t, second.Items, 3)
	require.Equal(t, int64(8), second.Total)
}

func TestPagingClamped(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")
	source := createTestSource(t, db, "Clamp Source", true)
	createTestArticle(t, db, source.Id, "one", "", "", daysAgo(1))

	page, err := service.GetExplore(user.Id, FeedQuery{Page: -3, PageSize: 500})
	require.NoError(t, err)
	require.Equal(t, 1, page.Page)
	require.Equal(t, 50, page.PageSize)

	page, err = service.GetExplore(user.Id, FeedQuery{Page: 1, PageSize: 0})
	require.NoError(t, err)
	require.Equal(t, 1, page.PageSize)
}

func TestTopicRelevanceRanking(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")
	source := createTestSource(t, db, "Rank Source", true)

	// The newer article matches one topic, the older one matches two. More
	// matches must beat recency.
	oneMatch := createTestArticle(t, db, source.Id, "single", "", "strength,training", daysAgo(1))
	twoMatches := createTestArticle(t, db, source.Id, "double", "", "strength,cardio,training", daysAgo(5))

	page, err := service.GetExplore(user.Id, FeedQuery{Topic: "strength,cardio", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, twoMatches.Id, page.Items[0].Id)
	require.Equal(t, oneMatch.Id, page.Items[1].Id)
}

func TestTopicSubstringMatch(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")
	source := createTestSource(t, db, "Substring Source", true)
	match := createTestArticle(t, db, source.Id, "zones", "", "cardio,endurance", daysAgo(1))
	createTestArticle(t, db, source.Id, "other", "", "strength", daysAgo(2))

	page, err := service.GetExplore(user.Id, FeedQuery{Topic: "card", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, match.Id, page.Items[0].Id)
}

func TestFeedUsesPreferenceTopicsAndBlockedKeywords(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")
	source := createTestSource(t, db, "Pref Source", true)

	tagged := createTestArticle(t, db, source.Id, "strength basics", "", "strength", daysAgo(1))
	createTestArticle(t, db, source.Id, "untagged", "", "nutrition", daysAgo(2))
	blockedTitle := createTestArticle(t, db, source.Id, "Avoiding Injury in squats", "", "strength", daysAgo(3))
	blockedSummary := createTestArticle(t, db, source.Id, "squat depth", "how to avoid INJURY", "strength", daysAgo(4))

	_, err := service.UpdatePreferences(user.Id, PreferencesIn{
		Topics:          []string{"strength"},
		Level:           "beginner",
		Equipment:       "gym",
		BlockedKeywords: []string{"injury"},
	})
	require.NoError(t, err)

	page, err := service.GetFeed(user.Id, FeedQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, tagged.Id, page.Items[0].Id)
	for _, item := range page.Items {
		require.NotEqual(t, blockedTitle.Id, item.Id)
		require.NotEqual(t, blockedSummary.Id, item.Id)
	}

	// Explore ignores both the stored topics and the blocked keywords.
	explore, err := service.GetExplore(user.Id, FeedQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(4), explore.Total)
}

func TestFeedTopicOverrideWinsOverPreferences(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")
	source := createTestSource(t, db, "Override Source", true)
	cardio := createTestArticle(t, db, source.Id, "cardio piece", "", "cardio", daysAgo(1))
	createTestArticle(t, db, source.Id, "strength piece", "", "strength", daysAgo(2))

	_, err := service.UpdatePreferences(user.Id, PreferencesIn{
		Topics: []string{"strength"}, Level: "beginner", Equipment: "gym",
	})
	require.NoError(t, err)

	page, err := service.GetFeed(user.Id, FeedQuery{Topic: "cardio", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, cardio.Id, page.Items[0].Id)
}

func TestSourceFilterByIdAndName(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")
	muscle := createTestSource(t, db, "Breaking Muscle", true)
	ace := createTestSource(t, db, "ACE Insights", true)
	fromMuscle := createTestArticle(t, db, muscle.Id, "from muscle", "", "", daysAgo(1))
	fromAce := createTestArticle(t, db, ace.Id, "from ace", "", "", daysAgo(2))

	byId, err := service.GetExplore(user.Id, FeedQuery{Source: strconv.FormatInt(ace.Id, 10), Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, byId.Items, 1)
	require.Equal(t, fromAce.Id, byId.Items[0].Id)

	byName, err := service.GetExplore(user.Id, FeedQuery{Source: "muscle", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, byName.Items, 1)
	require.Equal(t, fromMuscle.Id, byName.Items[0].Id)
}

func TestSearchMatchesTitleAndSummary(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")
	source := createTestSource(t, db, "Search Source", true)
	inTitle := createTestArticle(t, db, source.Id, "Protein timing explained", "", "", daysAgo(1))
	inSummary := createTestArticle(t, db, source.Id, "meal prep", "easy protein boosts", "", daysAgo(2))
	createTestArticle(t, db, source.Id, "stretching", "mobility work", "", daysAgo(3))

	page, err := service.GetExplore(user.Id, FeedQuery{Query: "PROTEIN", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.Equal(t, inTitle.Id, page.Items[0].Id)
	require.Equal(t, inSummary.Id, page.Items[1].Id)
}

func TestDateRangeBoundsInclusive(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")
	source := createTestSource(t, db, "Date Source", true)
	createTestArticle(t, db, source.Id, "too old", "", "", daysAgo(10))
	inRange := createTestArticle(t, db, source.Id, "in range", "", "", daysAgo(5))
	createTestArticle(t, db, source.Id, "too new", "", "", daysAgo(1))

	from := daysAgo(7).Format("2006-01-02")
	to := daysAgo(3).Format("2006-01-02")
	page, err := service.GetExplore(user.Id, FeedQuery{From: from, To: to, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Equal(t, inRange.Id, page.Items[0].Id)
}

func TestUnparsableDateFilterIgnored(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")
	source := createTestSource(t, db, "Lenient Source", true)
	createTestArticle(t, db, source.Id, "one", "", "", daysAgo(1))
	createTestArticle(t, db, source.Id, "two", "", "", daysAgo(2))

	page, err := service.GetExplore(user.Id, FeedQuery{From: "not-a-date", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), page.Total)
}

func TestDisabledSourceExcludedEverywhere(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")
	enabled := createTestSource(t, db, "Enabled Source", true)
	disabled := createTestSource(t, db, "Disabled Source", false)
	visible := createTestArticle(t, db, enabled.Id, "visible", "", "", daysAgo(1))
	hiddenBySource := createTestArticle(t, db, disabled.Id, "invisible", "", "", daysAgo(2))

	_, err := service.SaveArticle(user.Id, visible.Id)
	require.NoError(t, err)
	_, err = service.SaveArticle(user.Id, hiddenBySource.Id)
	require.NoError(t, err)

	explore, err := service.GetExplore(user.Id, FeedQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, explore.Items, 1)
	require.Equal(t, visible.Id, explore.Items[0].Id)

	saved, err := service.GetSaved(user.Id, 1, 10)
	require.NoError(t, err)
	require.Len(t, saved.Items, 1)
	require.Equal(t, visible.Id, saved.Items[0].Id)
}

func TestHiddenArticleExcludedFromFeeds(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")
	other := createTestUser(t, db, "user")
	source := createTestSource(t, db, "Hide Source", true)
	hidden := createTestArticle(t, db, source.Id, "hidden one", "", "", daysAgo(1))
	createTestArticle(t, db, source.Id, "kept", "", "", daysAgo(2))

	_, err := service.HideArticle(user.Id, hidden.Id)
	require.NoError(t, err)

	page, err := service.GetExplore(user.Id, FeedQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotEqual(t, hidden.Id, page.Items[0].Id)

	// Hiding is per user.
	otherPage, err := service.GetExplore(other.Id, FeedQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, otherPage.Items, 2)
}

func TestFeedAnnotatesSavedState(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")
	source := createTestSource(t, db, "Annotate Source", true)
	saved := createTestArticle(t, db, source.Id, "saved one", "", "", daysAgo(1))
	createTestArticle(t, db, source.Id, "plain one", "", "", daysAgo(2))

	_, err := service.SaveArticle(user.Id, saved.Id)
	require.NoError(t, err)

	page, err := service.GetExplore(user.Id, FeedQuery{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.True(t, page.Items[0].Saved)
	require.False(t, page.Items[1].Saved)
}

func TestGetArticle(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")
	source := createTestSource(t, db, "Single Source", true)
	article := createTestArticle(t, db, source.Id, "the one", "details", "strength,training", daysAgo(1))

	out, err := service.GetArticle(user.Id, article.Id)
	require.NoError(t, err)
	require.Equal(t, article.Id, out.Id)
	require.Equal(t, []string{"strength", "training"}, out.Tags)
	require.Equal(t, source.Id, out.Source.Id)
	require.False(t, out.Saved)

	_, err = service.SaveArticle(user.Id, article.Id)
	require.NoError(t, err)
	out, err = service.GetArticle(user.Id, article.Id)
	require.NoError(t, err)
	require.True(t, out.Saved)

	_, err = service.GetArticle(user.Id, article.Id+1000)
	require.ErrorIs(t, err, ErrNotFound)
}
