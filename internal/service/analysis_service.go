package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"samvad/internal/analysis"
	"samvad/internal/cache"
	"samvad/internal/model"
	"samvad/internal/repository"
)

// ErrInvalidNarrative is returned when a narrative is missing its speaker or
// text.
var ErrInvalidNarrative = errors.New("narrative requires a speaker and text")

// AnalysisService runs the full pipeline on a dialogue and persists the
// outcome: analyze per speaker, detect agreements, render the report, save,
// update stats, notify the dashboard.
type AnalysisService struct {
	analyzer    *analysis.Analyzer
	detector    *analysis.AgreementDetector
	reporter    *analysis.ReportBuilder
	repo        repository.AnalysisRepo
	stats       cache.StatsCache
	broadcaster Broadcaster
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	analyzer *analysis.Analyzer,
	detector *analysis.AgreementDetector,
	reporter *analysis.ReportBuilder,
	repo repository.AnalysisRepo,
	stats cache.StatsCache,
) *AnalysisService {
	return &AnalysisService{
		analyzer: analyzer,
		detector: detector,
		reporter: reporter,
		repo:     repo,
		stats:    stats,
	}
}

// SetBroadcaster injects the websocket broadcaster (optional).
func (s *AnalysisService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// AnalyzeDialogue runs one synchronous analysis pass over the narratives and
// returns the stored record. Validation failures (empty fields, fewer than 2
// distinct speakers) surface to the caller; nothing partial is persisted.
func (s *AnalysisService) AnalyzeDialogue(ctx context.Context, narratives []model.Narrative, sourceType string) (*model.AnalysisRecord, error) {
	for _, n := range narratives {
		if n.Speaker == "" || n.Text == "" {
			return nil, ErrInvalidNarrative
		}
	}

	profiles, err := s.analyzer.Analyze(narratives)
	if err != nil {
		return nil, err
	}

	agreements := s.detector.Detect(profiles)
	result := model.AnalysisResult{
		Narratives: narratives,
		Profiles:   profiles,
		Agreements: agreements,
	}
	report := s.reporter.Render(result, s.detector.Recommend(agreements))

	record := &model.AnalysisRecord{
		CreatedAt:     time.Now().UTC(),
		NumSpeakers:   len(narratives),
		NumAgreements: len(agreements),
		SourceType:    sourceType,
		Narratives:    narratives,
		Result:        result,
		Report:        report,
	}

	id, err := s.repo.Save(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("saving analysis: %w", err)
	}
	record.ID = id

	// Cache writes are best effort; the record is already durable.
	if err := s.stats.RecordAnalysis(ctx, model.AnalysisSummary{
		ID:            record.ID,
		CreatedAt:     record.CreatedAt,
		NumSpeakers:   record.NumSpeakers,
		NumAgreements: record.NumAgreements,
		SourceType:    record.SourceType,
	}); err != nil {
		log.Printf("stats cache update failed: %v", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastAnalysisCompleted(model.DashboardEvent{
			AnalysisID:    record.ID,
			NumSpeakers:   record.NumSpeakers,
			NumAgreements: record.NumAgreements,
			SourceType:    record.SourceType,
			CreatedAt:     record.CreatedAt,
		})
	}

	return record, nil
}

// GetAnalysis returns a stored analysis by ID; nil when not found.
func (s *AnalysisService) GetAnalysis(ctx context.Context, id string) (*model.AnalysisRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// GetRecent lists recent analyses, newest first, preferring the cache and
// falling back to the repository.
func (s *AnalysisService) GetRecent(ctx context.Context, limit int64) ([]model.AnalysisSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	summaries, err := s.stats.GetRecent(ctx, limit)
	if err == nil && len(summaries) > 0 {
		return summaries, nil
	}
	if err != nil {
		log.Printf("stats cache read failed, falling back to mongo: %v", err)
	}

	return s.repo.GetRecent(ctx, limit)
}

// GetStatistics returns service-wide totals. Counts come from the repository
// (source of truth); the cache is only consulted when mongo fails.
func (s *AnalysisService) GetStatistics(ctx context.Context) (*model.Statistics, error) {
	analyses, err := s.repo.CountAnalyses(ctx)
	if err == nil {
		agreements, aerr := s.repo.CountAgreements(ctx)
		if aerr == nil {
			return buildStatistics(analyses, agreements), nil
		}
		err = aerr
	}
	log.Printf("mongo counts failed, falling back to cache: %v", err)

	analyses, agreements, cerr := s.stats.GetTotals(ctx)
	if cerr != nil {
		return nil, fmt.Errorf("counting analyses: %w", err)
	}
	return buildStatistics(analyses, agreements), nil
}

func buildStatistics(analyses, agreements int64) *model.Statistics {
	denominator := analyses
	if denominator < 1 {
		denominator = 1
	}
	return &model.Statistics{
		TotalAnalyses:   analyses,
		TotalAgreements: agreements,
		AvgAgreements:   float64(agreements) / float64(denominator),
	}
}
