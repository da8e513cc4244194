package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bedolaga/remnawave-admin-bff/pkg/upstream"
)

// SubscriptionPlanSummary is the plan embedded in subscription payloads.
type SubscriptionPlanSummary struct {
	ID             *int64 `json:"id,omitempty"`
	Name           string `json:"name,omitempty"`
	TrafficLimitGB *int64 `json:"traffic_limit_gb,omitempty"`
	DeviceLimit    *int64 `json:"device_limit,omitempty"`
}

// SubscriptionDevice is a device registered on a subscription.
type SubscriptionDevice struct {
	ID           int64  `json:"id"`
	DeviceType   string `json:"device_type,omitempty"`
	Name         string `json:"name,omitempty"`
	LastActiveAt string `json:"last_active_at,omitempty"`
}

// Subscription is the full subscription shape.
type Subscription struct {
	ID             int64                    `json:"id"`
	UserID         int64                    `json:"user_id"`
	PlanID         *int64                   `json:"plan_id,omitempty"`
	Status         string                   `json:"status,omitempty"`
	IsTrial        *bool                    `json:"is_trial,omitempty"`
	StartedAt      string                   `json:"started_at,omitempty"`
	ExpiresAt      string                   `json:"expires_at,omitempty"`
	TrafficLimitGB *int64                   `json:"traffic_limit_gb,omitempty"`
	TrafficUsedGB  *int64                   `json:"traffic_used_gb,omitempty"`
	DeviceLimit    *int64                   `json:"device_limit,omitempty"`
	Plan           *SubscriptionPlanSummary `json:"plan,omitempty"`
	Devices        []SubscriptionDevice     `json:"devices,omitempty"`
}

// SubscriptionListResponse is the paginated subscription list.
type SubscriptionListResponse struct {
	Items  []Subscription `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// SubscriptionDetailResponse wraps a single subscription.
type SubscriptionDetailResponse struct {
	Subscription Subscription `json:"subscription"`
}

// SubscriptionUpdateRequest is a partial update; nil fields are not
// transmitted upstream.
type SubscriptionUpdateRequest struct {
	Status         *string `json:"status,omitempty"`
	PlanID         *int64  `json:"plan_id,omitempty"`
	ExpiresAt      *string `json:"expires_at,omitempty"`
	DeviceLimit    *int64  `json:"device_limit,omitempty" validate:"omitempty,min=0"`
	TrafficLimitGB *int64  `json:"traffic_limit_gb,omitempty" validate:"omitempty,min=0"`
}

func (r SubscriptionUpdateRequest) body() map[string]any {
	body := map[string]any{}
	if r.Status != nil {
		body["status"] = *r.Status
	}
	if r.PlanID != nil {
		body["plan_id"] = *r.PlanID
	}
	if r.ExpiresAt != nil {
		body["expires_at"] = *r.ExpiresAt
	}
	if r.DeviceLimit != nil {
		body["device_limit"] = *r.DeviceLimit
	}
	if r.TrafficLimitGB != nil {
		body["traffic_limit_gb"] = *r.TrafficLimitGB
	}
	return body
}

// SubscriptionListFilter holds the recognized optional list filters.
type SubscriptionListFilter struct {
	Limit   int
	Offset  int
	Status  string
	UserID  *int64
	IsTrial *bool
}

// SubscriptionsService proxies the upstream /subscriptions resource.
type SubscriptionsService struct {
	client *upstream.Client
}

// NewSubscriptions creates the subscriptions service.
func NewSubscriptions(client *upstream.Client) *SubscriptionsService {
	return &SubscriptionsService{client: client}
}

// List fetches a page of subscriptions.
func (s *SubscriptionsService) List(ctx context.Context, f SubscriptionListFilter) (*SubscriptionListResponse, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(f.Limit))
	query.Set("offset", strconv.Itoa(f.Offset))
	if f.Status != "" {
		query.Set("status", f.Status)
	}
	if f.UserID != nil {
		query.Set("user_id", strconv.FormatInt(*f.UserID, 10))
	}
	if f.IsTrial != nil {
		query.Set("is_trial", strconv.FormatBool(*f.IsTrial))
	}

	payload, err := s.client.Request(ctx, http.MethodGet, "/subscriptions", query, nil)
	if err != nil {
		return nil, err
	}

	page := ensureListPayload(payload, "subscriptions")
	var items []Subscription
	if err := decodeInto(page.Items, &items); err != nil {
		return nil, fmt.Errorf("decode subscriptions list: %w", err)
	}
	if items == nil {
		items = []Subscription{}
	}

	return &SubscriptionListResponse{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, nil
}

// Get fetches a single subscription by id.
func (s *SubscriptionsService) Get(ctx context.Context, subscriptionID int64) (*SubscriptionDetailResponse, error) {
	payload, err := s.client.Request(ctx, http.MethodGet, fmt.Sprintf("/subscriptions/%d", subscriptionID), nil, nil)
	if err != nil {
		return nil, err
	}

	var resp SubscriptionDetailResponse
	if err := decodeInto(ensureDetailPayload(payload, "subscription"), &resp); err != nil {
		return nil, fmt.Errorf("decode subscription detail: %w", err)
	}
	return &resp, nil
}

// Update applies a partial update and returns the updated subscription.
func (s *SubscriptionsService) Update(ctx context.Context, subscriptionID int64, req SubscriptionUpdateRequest) (*SubscriptionDetailResponse, error) {
	payload, err := s.client.Request(ctx, http.MethodPatch, fmt.Sprintf("/subscriptions/%d", subscriptionID), nil, req.body())
	if err != nil {
		return nil, err
	}

	var resp SubscriptionDetailResponse
	if err := decodeInto(ensureDetailPayload(payload, "subscription"), &resp); err != nil {
		return nil, fmt.Errorf("decode subscription detail: %w", err)
	}
	return &resp, nil
}
