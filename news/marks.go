package news

import (
	"github.com/gymunity/backend/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Statuses reported by the save/hide operations. The already_* and not_saved
// variants are idempotent no-ops, not errors.
const (
	StatusSaved         = "saved"
	StatusAlreadySaved  = "already_saved"
	StatusDeleted       = "deleted"
	StatusNotSaved      = "not_saved"
	StatusHidden        = "hidden"
	StatusAlreadyHidden = "already_hidden"
)

// SaveArticle marks an article as saved. The conflict-ignoring insert doubles
// as the race guard: two concurrent saves both succeed, one as a no-op.
func (s *Service) SaveArticle(userID, articleID int64) (string, error) {
	if err := s.ensureArticleExists(articleID); err != nil {
		return "", err
	}

	mark := model.SavedArticle{UserID: userID, ArticleID: articleID}
	result := s.db.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&mark)
	if result.Error != nil {
		return "", errors.Wrap(result.Error, "save article")
	}
	if result.RowsAffected == 0 {
		return StatusAlreadySaved, nil
	}
	return StatusSaved, nil
}

// UnsaveArticle removes a saved mark. Unsaving a never-saved article is a
// no-op reported as not_saved.
func (s *Service) UnsaveArticle(userID, articleID int64) (string, error) {
	result := s.db.Delete(&model.SavedArticle{}, "user_id = ? AND article_id = ?", userID, articleID)
	if result.Error != nil {
		return "", errors.Wrap(result.Error, "unsave article")
	}
	if result.RowsAffected == 0 {
		return StatusNotSaved, nil
	}
	return StatusDeleted, nil
}

// HideArticle marks an article as hidden and drops any saved mark for the
// same pair in one transaction: hide supersedes save.
func (s *Service) HideArticle(userID, articleID int64) (string, error) {
	if err := s.ensureArticleExists(articleID); err != nil {
		return "", err
	}

	status := StatusHidden
	err := s.db.Transaction(func(tx *gorm.DB) error {
		mark := model.HiddenArticle{UserID: userID, ArticleID: articleID}
		result := tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&mark)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			status = StatusAlreadyHidden
			return nil
		}
		return tx.Delete(&model.SavedArticle{}, "user_id = ? AND article_id = ?", userID, articleID).Error
	})
	if err != nil {
		return "", errors.Wrap(err, "hide article")
	}
	return status, nil
}

func (s *Service) ensureArticleExists(articleID int64) error {
	var count int64
	if err := s.db.Model(&model.Article{}).Where("id = ?", articleID).Count(&count).Error; err != nil {
		return errors.Wrap(err, "check article")
	}
	if count == 0 {
		return errors.Wrap(ErrNotFound, "article")
	}
	return nil
}
