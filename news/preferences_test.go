package news

import (
	"testing"

	"github.com/gymunity/backend/model"
	"github.com/stretchr/testify/require"
)

func TestPreferencesLazyDefaults(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")

	prefs, err := service.GetPreferences(user.Id)
	require.NoError(t, err)
	require.Empty(t, prefs.Topics)
	require.Equal(t, "beginner", prefs.Level)
	require.Equal(t, "gym", prefs.Equipment)
	require.Empty(t, prefs.BlockedKeywords)

	// The defaults are persisted, not just serialized.
	var count int64
	require.NoError(t, db.Model(&model.Preference{}).Where("user_id = ?", user.Id).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestUpdatePreferencesNormalizesLists(t *testing.T) {
	service, db := newTestService(t)
	user := createTestUser(t, db, "user")

	prefs, err := service.UpdatePreferences(user.Id, PreferencesIn{
		Topics:          []string{" Strength ", "CARDIO", "strength", ""},
		Level:           "intermediate",
		Equipment:       "home",
		BlockedKeywords: []string{"Injury", "injury ", "supplements"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"strength", "cardio"}, prefs.Topics)
	require.Equal(t, "intermediate", prefs.Level)
	require.Equal(t, "home", prefs.Equipment)
	require.Equal(t, []string{"injury", "supplements"}, prefs.BlockedKeywords)

	// A second read returns the stored values.
	again, err := service.GetPreferences(user.Id)
	require.NoError(t, err)
	require.Equal(t, prefs, again)
}
