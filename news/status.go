package news

import (
	"sync"
	"time"

	"github.com/gymunity/backend/model"
	. "github.com/gymunity/backend/utils/log"
	"github.com/pkg/errors"
)

// RunReport is the outcome of one fetch run.
type RunReport struct {
	FetchedAt      time.Time `json:"fetched_at"`
	SourcesChecked int       `json:"sources_checked"`
	SourcesSuccess int       `json:"sources_success"`
	SourcesFailed  int       `json:"sources_failed"`
	ItemsIngested  int       `json:"items_ingested"`
	LastError      *string   `json:"last_error"`
}

// StatusReport is the last known run state. LastRun stays null until a fetch
// has actually happened.
type StatusReport struct {
	LastRun        *time.Time `json:"last_run"`
	SourcesChecked int        `json:"sources_checked"`
	SourcesSuccess int        `json:"sources_success"`
	SourcesFailed  int        `json:"sources_failed"`
	ItemsIngested  int        `json:"items_ingested"`
	LastError      *string    `json:"last_error"`
}

// FetchStatus is the process-lifetime record of the most recent fetch run.
// It is owned by the Service and handed to request handlers through it, never
// persisted: a restart resets it. Concurrent fetch runs overwrite each other,
// last write wins.
type FetchStatus struct {
	mu             sync.Mutex
	lastRun        *time.Time
	sourcesChecked int
	sourcesSuccess int
	sourcesFailed  int
	itemsIngested  int
	lastError      *string
}

func (f *FetchStatus) record(run RunReport) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fetchedAt := run.FetchedAt
	f.lastRun = &fetchedAt
	f.sourcesChecked = run.SourcesChecked
	f.sourcesSuccess = run.SourcesSuccess
	f.sourcesFailed = run.SourcesFailed
	f.itemsIngested = run.ItemsIngested
	f.lastError = run.LastError
}

// snapshot returns the last run state, lazily seeding the counters from the
// current enabled-source count when no run has happened yet.
func (f *FetchStatus) snapshot(enabledSources int) StatusReport {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastRun == nil {
		f.sourcesChecked = enabledSources
		f.sourcesSuccess = enabledSources
		f.sourcesFailed = 0
		f.itemsIngested = 0
	}
	return StatusReport{
		LastRun:        f.lastRun,
		SourcesChecked: f.sourcesChecked,
		SourcesSuccess: f.sourcesSuccess,
		SourcesFailed:  f.sourcesFailed,
		ItemsIngested:  f.itemsIngested,
		LastError:      f.lastError,
	}
}

// FetchNow stamps every enabled source as fetched and records the run
// summary. It is a placeholder for a real ingestion run, so it always reports
// zero new items and zero failures.
func (s *Service) FetchNow() (*RunReport, error) {
	enabled, err := s.countEnabledSources()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.db.Model(&model.Source{}).Where("enabled = ?", true).Update("last_fetched_at", now).Error; err != nil {
		return nil, errors.Wrap(err, "stamp fetched sources")
	}

	report := RunReport{
		FetchedAt:      now,
		SourcesChecked: enabled,
		SourcesSuccess: enabled,
	}
	s.status.record(report)
	return &report, nil
}

// Status returns the last recorded run summary.
func (s *Service) Status() (*StatusReport, error) {
	enabled, err := s.countEnabledSources()
	if err != nil {
		return nil, err
	}
	report := s.status.snapshot(enabled)
	return &report, nil
}

func (s *Service) countEnabledSources() (int, error) {
	var count int64
	if err := s.db.Model(&model.Source{}).Where("enabled = ?", true).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "count enabled sources")
	}
	return int(count), nil
}

// StartFetchTimer runs FetchNow on an interval until the returned stop
// function is called. Best effort: a failed run is logged and the next tick
// fires regardless.
func (s *Service) StartFetchTimer(interval time.Duration) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if _, err := s.FetchNow(); err != nil {
					Log.Error("scheduled fetch failed: ", err)
				}
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}
