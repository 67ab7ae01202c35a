package news

import (
	"time"

	"github.com/gymunity/backend/model"
	"github.com/gymunity/backend/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm/clause"
)

const (
	defaultLevel     = "beginner"
	defaultEquipment = "gym"
)

// getOrCreatePreference is an insert-or-return-existing primitive. The
// conflict-ignoring insert makes concurrent first access by the same user
// safe: the loser of the race simply reads the winner's row.
func (s *Service) getOrCreatePreference(userID int64) (*model.Preference, error) {
	pref := model.Preference{
		UserID:    userID,
		Level:     defaultLevel,
		Equipment: defaultEquipment,
	}
	if err := s.db.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&pref).Error; err != nil {
		return nil, errors.Wrap(err, "create default preference")
	}

	var existing model.Preference
	if err := s.db.First(&existing, "user_id = ?", userID).Error; err != nil {
		return nil, errors.Wrap(err, "read preference")
	}
	return &existing, nil
}

func (s *Service) GetPreferences(userID int64) (*PreferencesOut, error) {
	pref, err := s.getOrCreatePreference(userID)
	if err != nil {
		return nil, err
	}
	return serializePreference(pref), nil
}

// UpdatePreferences replaces the whole preference row. Lists are normalized
// to the comma-joined lowercase storage form.
func (s *Service) UpdatePreferences(userID int64, in PreferencesIn) (*PreferencesOut, error) {
	if _, err := s.getOrCreatePreference(userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"topics":           utils.JoinCSV(in.Topics),
		"level":            in.Level,
		"equipment":        in.Equipment,
		"blocked_keywords": utils.JoinCSV(in.BlockedKeywords),
		"updated_at":       time.Now().UTC(),
	}
	if err := s.db.Model(&model.Preference{}).Where("user_id = ?", userID).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "update preference")
	}

	var pref model.Preference
	if err := s.db.First(&pref, "user_id = ?", userID).Error; err != nil {
		return nil, errors.Wrap(err, "read preference")
	}
	return serializePreference(&pref), nil
}

func serializePreference(pref *model.Preference) *PreferencesOut {
	return &PreferencesOut{
		Topics:          utils.SplitCSV(pref.Topics),
		Level:           pref.Level,
		Equipment:       pref.Equipment,
		BlockedKeywords: utils.SplitCSV(pref.BlockedKeywords),
	}
}
