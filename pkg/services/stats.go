package services

import (
	"context"
	"net/http"
	"time"

	"github.com/bedolaga/remnawave-admin-bff/pkg/cache"
	"github.com/bedolaga/remnawave-admin-bff/pkg/upstream"
)

const (
	overviewCacheKey = "overview"
	overviewCacheTTL = 60 * time.Second
)

// StatsBlock is a count block for users, subscriptions or support tickets.
// Active and New stay nil when the upstream reports nothing (a zero count
// is indistinguishable from an omitted field upstream and is treated as
// absent).
type StatsBlock struct {
	Total   int     `json:"total"`
	Active  *int    `json:"active,omitempty"`
	New     *int    `json:"new,omitempty"`
	Warning *string `json:"warning,omitempty"`
}

// StatsPaymentsBlock carries payment totals. Ruble values are derived from
// kopeks when the upstream does not provide them.
type StatsPaymentsBlock struct {
	TotalKopeks int     `json:"total_kopeks"`
	TotalRubles float64 `json:"total_rubles"`
	TodayKopeks int     `json:"today_kopeks"`
	TodayRubles float64 `json:"today_rubles"`
}

// StatsOverviewResponse is the dashboard overview.
type StatsOverviewResponse struct {
	Users         StatsBlock         `json:"users"`
	Subscriptions StatsBlock         `json:"subscriptions"`
	Support       StatsBlock         `json:"support"`
	Payments      StatsPaymentsBlock `json:"payments"`
	Meta          map[string]any     `json:"meta"`
}

// StatsService proxies the upstream /stats resource, memoizing the
// overview for 60 seconds to shield the upstream from dashboard polling.
type StatsService struct {
	client *upstream.Client
	cache  *cache.Cache
}

// NewStats creates the stats service.
func NewStats(client *upstream.Client, memo *cache.Cache) *StatsService {
	return &StatsService{client: client, cache: memo}
}

// Overview returns the cached stats overview, refreshing it from upstream
// when the cached copy is older than 60 seconds.
func (s *StatsService) Overview(ctx context.Context) (*StatsOverviewResponse, error) {
	return cache.GetOrCompute(ctx, s.cache, overviewCacheKey, overviewCacheTTL, s.fetchOverview)
}

func (s *StatsService) fetchOverview(ctx context.Context) (*StatsOverviewResponse, error) {
	payload, err := s.client.Request(ctx, http.MethodGet, "/stats/overview", nil, nil)
	if err != nil {
		return nil, err
	}

	m := asMap(payload)
	meta := asMap(m["meta"])

	return &StatsOverviewResponse{
		Users:         buildStatsBlock(asMap(m["users"])),
		Subscriptions: buildStatsBlock(asMap(m["subscriptions"])),
		Support:       buildStatsBlock(asMap(m["support"])),
		Payments:      buildPaymentsBlock(asMap(m["payments"])),
		Meta:          meta,
	}, nil
}

// buildStatsBlock extracts a count block. Candidate keys per logical field,
// in priority order:
//
//	active: "active", "active_count"
//	new:    "new", "new_today", "delta"
func buildStatsBlock(raw map[string]any) StatsBlock {
	block := StatsBlock{}
	if total, ok := intField(raw, "total"); ok {
		block.Total = total
	}
	if active, ok := firstNonZeroInt(raw, "active", "active_count"); ok {
		block.Active = &active
	}
	if fresh, ok := firstNonZeroInt(raw, "new", "new_today", "delta"); ok {
		block.New = &fresh
	}
	if warning, ok := raw["warning"].(string); ok && warning != "" {
		block.Warning = &warning
	}
	return block
}

// buildPaymentsBlock extracts payment totals. Candidate keys per logical
// field, in priority order:
//
//	total kopeks: "total_kopeks", "total_amount_kopeks"
//	today kopeks: "today_kopeks", "today_amount_kopeks"
//
// Ruble values fall back to kopeks/100.
func buildPaymentsBlock(raw map[string]any) StatsPaymentsBlock {
	totalKopeks, _ := firstNonZeroInt(raw, "total_kopeks", "total_amount_kopeks")
	todayKopeks, _ := firstNonZeroInt(raw, "today_kopeks", "today_amount_kopeks")

	totalRubles, ok := floatField(raw, "total_rubles")
	if !ok || totalRubles == 0 {
		totalRubles = float64(totalKopeks) / 100
	}
	todayRubles, ok := floatField(raw, "today_rubles")
	if !ok || todayRubles == 0 {
		todayRubles = float64(todayKopeks) / 100
	}

	return StatsPaymentsBlock{
		TotalKopeks: totalKopeks,
		TotalRubles: totalRubles,
		TodayKopeks: todayKopeks,
		TodayRubles: todayRubles,
	}
}
