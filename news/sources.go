package news

import (
	"github.com/gymunity/backend/model"
	"github.com/gymunity/backend/utils"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ListEnabledSources returns the sources visible to regular users, ordered by
// name for deterministic output.
func (s *Service) ListEnabledSources() ([]SourceOut, error) {
	return s.listSources(s.db.Where("enabled = ?", true))
}

// ListAllSources returns every source including disabled ones. Admin only.
func (s *Service) ListAllSources() ([]SourceOut, error) {
	return s.listSources(s.db)
}

func (s *Service) listSources(tx *gorm.DB) ([]SourceOut, error) {
	var sources []model.Source
	if err := tx.Order("name").Find(&sources).Error; err != nil {
		return nil, errors.Wrap(err, "list sources")
	}
	out := make([]SourceOut, 0, len(sources))
	for i := range sources {
		out = append(out, serializeSource(&sources[i]))
	}
	return out, nil
}

func (s *Service) CreateSource(in SourceCreate) (*SourceOut, error) {
	var count int64
	if err := s.db.Model(&model.Source{}).Where("rss_url = ?", in.RssUrl).Count(&count).Error; err != nil {
		return nil, errors.Wrap(err, "check duplicate rss url")
	}
	if count > 0 {
		return nil, ErrDuplicateRssUrl
	}

	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	source := model.Source{
		Name:     in.Name,
		RssUrl:   in.RssUrl,
		Category: in.Category,
		Tags:     utils.JoinCSV(in.Tags),
		Enabled:  enabled,
	}
	if err := s.db.Create(&source).Error; err != nil {
		return nil, errors.Wrap(err, "create source")
	}
	out := serializeSource(&source)
	return &out, nil
}

func (s *Service) UpdateSource(id int64, in SourceUpdate) (*SourceOut, error) {
	source, err := s.getSource(id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		source.Name = *in.Name
	}
	if in.RssUrl != nil {
		source.RssUrl = *in.RssUrl
	}
	if in.Category != nil {
		source.Category = in.Category
	}
	if in.Tags != nil {
		source.Tags = utils.JoinCSV(*in.Tags)
	}
	if in.Enabled != nil {
		source.Enabled = *in.Enabled
	}
	if err := s.db.Save(source).Error; err != nil {
		return nil, errors.Wrap(err, "update source")
	}
	out := serializeSource(source)
	return &out, nil
}

func (s *Service) ToggleSource(id int64) (*SourceOut, error) {
	source, err := s.getSource(id)
	if err != nil {
		return nil, err
	}
	source.Enabled = !source.Enabled
	if err := s.db.Save(source).Error; err != nil {
		return nil, errors.Wrap(err, "toggle source")
	}
	out := serializeSource(source)
	return &out, nil
}

// DeleteSource removes a source. Its articles and their save/hide marks go
// with it through the foreign key cascade.
func (s *Service) DeleteSource(id int64) error {
	source, err := s.getSource(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(source).Error; err != nil {
		return errors.Wrap(err, "delete source")
	}
	return nil
}

func (s *Service) getSource(id int64) (*model.Source, error) {
	var source model.Source
	result := s.db.First(&source, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(ErrNotFound, "source")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "read source")
	}
	return &source, nil
}
