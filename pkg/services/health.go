package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bedolaga/remnawave-admin-bff/pkg/cache"
	"github.com/bedolaga/remnawave-admin-bff/pkg/upstream"
)

const (
	healthCacheKey = "health"
	healthCacheTTL = 15 * time.Second
)

// HealthResponse reports upstream health as seen by the BFF. LatencyMs is
// the wall-clock duration of the upstream call that produced this snapshot;
// cached reads return the latency observed at refresh time.
type HealthResponse struct {
	Status     string          `json:"status"`
	APIVersion string          `json:"api_version,omitempty"`
	BotVersion string          `json:"bot_version,omitempty"`
	Components map[string]bool `json:"components"`
	Features   map[string]bool `json:"features"`
	LatencyMs  float64         `json:"latency_ms"`
}

// HealthService proxies the upstream /health endpoint, memoized for 15
// seconds to absorb front-end polling.
type HealthService struct {
	client *upstream.Client
	cache  *cache.Cache
}

// NewHealth creates the health service.
func NewHealth(client *upstream.Client, memo *cache.Cache) *HealthService {
	return &HealthService{client: client, cache: memo}
}

// Check returns the cached health snapshot, refreshing it from upstream
// when the cached copy is older than 15 seconds.
func (s *HealthService) Check(ctx context.Context) (*HealthResponse, error) {
	return cache.GetOrCompute(ctx, s.cache, healthCacheKey, healthCacheTTL, s.fetchHealth)
}

func (s *HealthService) fetchHealth(ctx context.Context) (*HealthResponse, error) {
	start := time.Now()
	payload, err := s.client.Request(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return nil, err
	}
	latencyMs := float64(time.Since(start).Microseconds()) / 1000

	m := asMap(payload)

	status := "unknown"
	if v, ok := m["status"].(string); ok && v != "" {
		status = v
	}

	resp := &HealthResponse{
		Status:     status,
		APIVersion: stringField(m, "api_version", "version"),
		BotVersion: stringField(m, "bot_version"),
		Components: boolMapField(m, "components"),
		Features:   boolMapField(m, "features"),
		LatencyMs:  latencyMs,
	}

	// Upstreams without a components block still get a minimal one derived
	// from the reported status.
	if len(resp.Components) == 0 {
		resp.Components = map[string]bool{"api": status == "ok"}
	}
	if resp.Features == nil {
		resp.Features = map[string]bool{}
	}
	return resp, nil
}

// stringField returns the first candidate field rendered as a string;
// numeric version fields are formatted rather than dropped.
func stringField(m map[string]any, keys ...string) string {
	v, ok := firstOf(m, keys...)
	if !ok {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	case bool:
		return fmt.Sprintf("%t", s)
	default:
		return ""
	}
}

func boolMapField(m map[string]any, key string) map[string]bool {
	raw, ok := m[key].(map[string]any)
	if !ok {
		return map[string]bool{}
	}
	out := make(map[string]bool, len(raw))
	for k, v := range raw {
		if b, ok := v.(bool); ok {
			out[k] = b
		}
	}
	return out
}
