package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
	"github.com/andresuchdata/wcanalyzer/internal/engine"
	"github.com/andresuchdata/wcanalyzer/internal/report"
	"github.com/andresuchdata/wcanalyzer/internal/storage"
)

// ReportService renders CSV reports and optionally archives them.
type ReportService struct {
	storage storage.ObjectStorage
	prefix  string
	now     func() time.Time
}

// NewReportService archives nothing when objectStorage is nil.
func NewReportService(objectStorage storage.ObjectStorage, prefix string) *ReportService {
	return &ReportService{
		storage: objectStorage,
		prefix:  strings.Trim(prefix, "/"),
		now:     time.Now,
	}
}

// Export is a rendered report and, when archived, its storage key.
type Export struct {
	FileName string
	Data     []byte
	Key      string
}

func (s *ReportService) SimulationCSV(ctx context.Context, in engine.SimulationInput, res domain.SimulationResult, archive bool) (*Export, error) {
	data, err := report.SimulationCSV(in, res)
	if err != nil {
		return nil, err
	}
	return s.finish(ctx, report.SimulationFileName, data, archive)
}

func (s *ReportService) finish(ctx context.Context, fileName string, data []byte, archive bool) (*Export, error) {
	export := &Export{FileName: fileName, Data: data}
	if !archive {
		return export, nil
	}
	if s.storage == nil {
		return nil, fmt.Errorf("report archiving is not configured")
	}

	key := s.objectKey(fileName)
	if err := s.storage.UploadObject(ctx, key, data, report.ContentType); err != nil {
		return nil, fmt.Errorf("failed to archive %s: %w", fileName, err)
	}
	export.Key = key

	log.Info().Str("key", key).Int("bytes", len(data)).Msg("report archived")
	return export, nil
}

// Archive uploads an already rendered report.
func (s *ReportService) Archive(ctx context.Context, fileName string, data []byte) (*Export, error) {
	return s.finish(ctx, fileName, data, true)
}

func (s *ReportService) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.storage == nil {
		return []storage.ObjectInfo{}, nil
	}
	return s.storage.ListObjects(ctx, s.prefix)
}

func (s *ReportService) Get(ctx context.Context, key string) ([]byte, error) {
	if s.storage == nil || (s.prefix != "" && !strings.HasPrefix(key, s.prefix+"/")) {
		return nil, storage.ErrObjectNotFound
	}
	return s.storage.GetObject(ctx, key)
}

func (s *ReportService) objectKey(fileName string) string {
	now := s.now().UTC()
	name := fmt.Sprintf("%s-%s-%s", now.Format("20060102T150405"), uuid.NewString()[:8], fileName)
	return path.Join(s.prefix, now.Format("2006/01/02"), name)
}
