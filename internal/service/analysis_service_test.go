package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"samvad/internal/analysis"
	"samvad/internal/model"
)

type fakeRepo struct {
	records    map[string]*model.AnalysisRecord
	order      []string
	saveErr    error
	countErr   error
	agreements int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]*model.AnalysisRecord)}
}

func (r *fakeRepo) Save(_ context.Context, record *model.AnalysisRecord) (string, error) {
	if r.saveErr != nil {
		return "", r.saveErr
	}
	id := record.ID
	if id == "" {
		id = "analysis-" + string(rune('a'+len(r.order)))
	}
	stored := *record
	stored.ID = id
	r.records[id] = &stored
	r.order = append(r.order, id)
	r.agreements += int64(record.NumAgreements)
	return id, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*model.AnalysisRecord, error) {
	return r.records[id], nil
}

func (r *fakeRepo) GetRecent(_ context.Context, limit int64) ([]model.AnalysisSummary, error) {
	var out []model.AnalysisSummary
	for i := len(r.order) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		record := r.records[r.order[i]]
		out = append(out, model.AnalysisSummary{
			ID:            record.ID,
			CreatedAt:     record.CreatedAt,
			NumSpeakers:   record.NumSpeakers,
			NumAgreements: record.NumAgreements,
			SourceType:    record.SourceType,
		})
	}
	return out, nil
}

func (r *fakeRepo) CountAnalyses(_ context.Context) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return int64(len(r.order)), nil
}

func (r *fakeRepo) CountAgreements(_ context.Context) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.agreements, nil
}

type fakeStats struct {
	recent     []model.AnalysisSummary
	analyses   int64
	agreements int64
	recordErr  error
	readErr    error
}

func (s *fakeStats) RecordAnalysis(_ context.Context, summary model.AnalysisSummary) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.recent = append([]model.AnalysisSummary{summary}, s.recent...)
	s.analyses++
	s.agreements += int64(summary.NumAgreements)
	return nil
}

func (s *fakeStats) GetRecent(_ context.Context, limit int64) ([]model.AnalysisSummary, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	if int64(len(s.recent)) > limit {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

func (s *fakeStats) GetTotals(_ context.Context) (int64, int64, error) {
	if s.readErr != nil {
		return 0, 0, s.readErr
	}
	return s.analyses, s.agreements, nil
}

type fakeBroadcaster struct {
	events []model.DashboardEvent
}

func (b *fakeBroadcaster) BroadcastAnalysisCompleted(event model.DashboardEvent) {
	b.events = append(b.events, event)
}

func newTestService(repo *fakeRepo, stats *fakeStats) *AnalysisService {
	taxonomy := analysis.DefaultTaxonomy()
	return NewAnalysisService(
		analysis.NewAnalyzer(taxonomy),
		analysis.NewAgreementDetector(taxonomy),
		analysis.NewReportBuilder(),
		repo,
		stats,
	)
}

func sampleNarratives() []model.Narrative {
	return []model.Narrative{
		{Speaker: "Sarah", Text: "I saw my mother wait months for treatment. Families deserve better care.", Position: "Healthcare must improve"},
		{Speaker: "Marcus", Text: "Studies show rising costs crush small business jobs and local wages.", Position: "Costs are the problem"},
	}
}

func TestAnalyzeDialoguePersistsAndBroadcasts(t *testing.T) {
	repo := newFakeRepo()
	stats := &fakeStats{}
	broadcaster := &fakeBroadcaster{}

	svc := newTestService(repo, stats)
	svc.SetBroadcaster(broadcaster)

	record, err := svc.AnalyzeDialogue(context.Background(), sampleNarratives(), model.SourceText)
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.NotEmpty(t, record.ID)
	assert.Equal(t, 2, record.NumSpeakers)
	assert.Equal(t, model.SourceText, record.SourceType)
	assert.Contains(t, record.Report, "SAMVAD DIALOGUE ANALYSIS REPORT")
	assert.Len(t, record.Result.Profiles, 2)

	stored, err := svc.GetAnalysis(context.Background(), record.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, record.Report, stored.Report)

	require.Len(t, stats.recent, 1)
	assert.Equal(t, record.ID, stats.recent[0].ID)

	require.Len(t, broadcaster.events, 1)
	assert.Equal(t, record.ID, broadcaster.events[0].AnalysisID)
	assert.Equal(t, record.NumAgreements, broadcaster.events[0].NumAgreements)
}

func TestAnalyzeDialogueValidation(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeStats{})

	_, err := svc.AnalyzeDialogue(context.Background(), []model.Narrative{
		{Speaker: "", Text: "some long enough text about healthcare and families"},
		{Speaker: "Bob", Text: "another statement"},
	}, model.SourceText)
	assert.ErrorIs(t, err, ErrInvalidNarrative)

	_, err = svc.AnalyzeDialogue(context.Background(), []model.Narrative{
		{Speaker: "OnlyOne", Text: "a single voice cannot agree with anyone"},
	}, model.SourceText)
	assert.ErrorIs(t, err, analysis.ErrTooFewSpeakers)
}

func TestAnalyzeDialogueSaveFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.saveErr = errors.New("mongo down")
	stats := &fakeStats{}
	svc := newTestService(repo, stats)

	_, err := svc.AnalyzeDialogue(context.Background(), sampleNarratives(), model.SourceText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "saving analysis")
	assert.Empty(t, stats.recent)
}

func TestAnalyzeDialogueCacheFailureIsNotFatal(t *testing.T) {
	repo := newFakeRepo()
	stats := &fakeStats{recordErr: errors.New("redis down")}
	svc := newTestService(repo, stats)

	record, err := svc.AnalyzeDialogue(context.Background(), sampleNarratives(), model.SourceAudio)
	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.Len(t, repo.order, 1)
}

func TestGetRecentPrefersCache(t *testing.T) {
	repo := newFakeRepo()
	stats := &fakeStats{}
	svc := newTestService(repo, stats)

	_, err := svc.AnalyzeDialogue(context.Background(), sampleNarratives(), model.SourceText)
	require.NoError(t, err)

	summaries, err := svc.GetRecent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	// A failing cache falls back to the repository.
	stats.readErr = errors.New("redis down")
	summaries, err = svc.GetRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}

func TestGetStatistics(t *testing.T) {
	repo := newFakeRepo()
	stats := &fakeStats{}
	svc := newTestService(repo, stats)

	_, err := svc.AnalyzeDialogue(context.Background(), sampleNarratives(), model.SourceText)
	require.NoError(t, err)

	got, err := svc.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalAnalyses)
	assert.Equal(t, float64(got.TotalAgreements), got.AvgAgreements)
}

func TestGetStatisticsFallsBackToCache(t *testing.T) {
	repo := newFakeRepo()
	repo.countErr = errors.New("mongo down")
	stats := &fakeStats{analyses: 4, agreements: 6}
	svc := newTestService(repo, stats)

	got, err := svc.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), got.TotalAnalyses)
	assert.Equal(t, int64(6), got.TotalAgreements)
	assert.InDelta(t, 1.5, got.AvgAgreements, 1e-9)
}

func TestGetStatisticsZeroAnalyses(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeStats{})

	got, err := svc.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.TotalAnalyses)
	assert.Equal(t, 0.0, got.AvgAgreements)
}
