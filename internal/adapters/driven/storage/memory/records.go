package memory

import (
	"fmt"
	"sync"

	"github.com/custodia-labs/reddit-collect/internal/core/domain"
	"github.com/custodia-labs/reddit-collect/internal/core/ports/driven"
)

// Ensure RecordStore implements the interfaces.
var (
	_ driven.RecordWriter   = (*RecordStore)(nil)
	_ driven.ManifestWriter = (*RecordStore)(nil)
)

// RecordStore is an in-memory implementation of driven.RecordWriter and
// driven.ManifestWriter. It backs dry runs: everything is collected but
// nothing touches the filesystem.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string][]domain.Record
	order   []string
	reports []*domain.RunReport
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string][]domain.Record),
	}
}

// Write stores a copy of the community's records, replacing earlier ones.
// The returned path is a label, not a file.
func (s *RecordStore) Write(community string, window domain.Window, records []domain.Record) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[community]; !ok {
		s.order = append(s.order, community)
	}
	s.records[community] = append([]domain.Record(nil), records...)
	return fmt.Sprintf("memory:%s_data_%s_to_%s", community, window.StartLabel, window.EndLabel), nil
}

// WriteManifest keeps the report.
func (s *RecordStore) WriteManifest(report *domain.RunReport, _ domain.CollectionSettings) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports = append(s.reports, report)
	return fmt.Sprintf("memory:collection_metadata_%s_to_%s", report.Window.StartLabel, report.Window.EndLabel), nil
}

// Records returns the records written for a community.
func (s *RecordStore) Records(community string) ([]domain.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records, ok := s.records[community]
	if !ok {
		return nil, false
	}
	return append([]domain.Record(nil), records...), true
}

// Communities returns the communities written, in first-write order.
func (s *RecordStore) Communities() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

// Reports returns the run reports received.
func (s *RecordStore) Reports() []*domain.RunReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.RunReport(nil), s.reports...)
}
