package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"samvad/internal/model"
)

// StatsCache handles Redis operations for running totals and the
// recent-analyses list. Mongo remains the source of truth; the cache exists
// so the statistics and recents endpoints do not hit the database per call.
type StatsCache interface {
	RecordAnalysis(ctx context.Context, summary model.AnalysisSummary) error
	GetRecent(ctx context.Context, limit int64) ([]model.AnalysisSummary, error)
	GetTotals(ctx context.Context) (analyses int64, agreements int64, err error)
}

type statsCache struct {
	client    *redis.Client
	recentTTL time.Duration
	maxRecent int64
}

// NewStatsCache creates a new stats cache
func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{
		client:    client,
		recentTTL: 24 * time.Hour,
		maxRecent: 50,
	}
}

// Key helpers
func (c *statsCache) recentKey() string {
	return "analyses:recent"
}

func (c *statsCache) totalAnalysesKey() string {
	return "stats:total_analyses"
}

func (c *statsCache) totalAgreementsKey() string {
	return "stats:total_agreements"
}

// RecordAnalysis pushes the summary onto the recents list and bumps the
// counters.
func (c *statsCache) RecordAnalysis(ctx context.Context, summary model.AnalysisSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, c.recentKey(), data)
	pipe.LTrim(ctx, c.recentKey(), 0, c.maxRecent-1)
	pipe.Expire(ctx, c.recentKey(), c.recentTTL)
	pipe.Incr(ctx, c.totalAnalysesKey())
	pipe.IncrBy(ctx, c.totalAgreementsKey(), int64(summary.NumAgreements))
	_, err = pipe.Exec(ctx)
	return err
}

// GetRecent returns up to limit cached summaries, newest first. An empty or
// expired list yields an empty slice, not an error.
func (c *statsCache) GetRecent(ctx context.Context, limit int64) ([]model.AnalysisSummary, error) {
	items, err := c.client.LRange(ctx, c.recentKey(), 0, limit-1).Result()
	if err == redis.Nil {
		return []model.AnalysisSummary{}, nil
	}
	if err != nil {
		return nil, err
	}

	summaries := make([]model.AnalysisSummary, 0, len(items))
	for _, item := range items {
		var summary model.AnalysisSummary
		if err := json.Unmarshal([]byte(item), &summary); err != nil {
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetTotals returns the running counters; missing keys count as zero.
func (c *statsCache) GetTotals(ctx context.Context) (int64, int64, error) {
	analyses, err := c.client.Get(ctx, c.totalAnalysesKey()).Int64()
	if err != nil && err != redis.Nil {
		return 0, 0, err
	}
	agreements, err := c.client.Get(ctx, c.totalAgreementsKey()).Int64()
	if err != nil && err != redis.Nil {
		return 0, 0, err
	}
	return analyses, agreements, nil
}
