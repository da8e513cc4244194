package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bedolaga/remnawave-admin-bff/pkg/upstream"
)

// PromoGroupSummary is the promo group attached to a user.
type PromoGroupSummary struct {
	ID   *int64 `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// SubscriptionSummary is the compact subscription embedded in user payloads.
type SubscriptionSummary struct {
	ID        *int64 `json:"id,omitempty"`
	Status    string `json:"status,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
}

// BalanceInfo carries a user's balance in kopeks and rubles.
type BalanceInfo struct {
	CurrentBalanceKopeks *int64   `json:"current_balance_kopeks,omitempty"`
	CurrentBalanceRubles *float64 `json:"current_balance_rubles,omitempty"`
}

// UserSummary is the list-endpoint projection of a user.
type UserSummary struct {
	ID           int64                `json:"id"`
	TelegramID   *int64               `json:"telegram_id,omitempty"`
	Username     string               `json:"username,omitempty"`
	FullName     string               `json:"full_name,omitempty"`
	Language     string               `json:"language,omitempty"`
	Status       string               `json:"status,omitempty"`
	IsBlocked    *bool                `json:"is_blocked,omitempty"`
	CreatedAt    string               `json:"created_at,omitempty"`
	Subscription *SubscriptionSummary `json:"subscription,omitempty"`
	PromoGroup   *PromoGroupSummary   `json:"promo_group,omitempty"`
	Balance      *BalanceInfo         `json:"balance,omitempty"`
}

// UserDetail extends UserSummary with the fields only the detail endpoint
// returns.
type UserDetail struct {
	UserSummary
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	PromoCodes []string `json:"promo_codes,omitempty"`
}

// UserListResponse is the paginated user list.
type UserListResponse struct {
	Items  []UserSummary `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// UserDetailResponse wraps a single user under its singular key.
type UserDetailResponse struct {
	User UserDetail `json:"user"`
}

// UserUpdateRequest is a partial update; nil fields are not transmitted
// upstream.
type UserUpdateRequest struct {
	FullName     *string `json:"full_name,omitempty"`
	Username     *string `json:"username,omitempty"`
	Language     *string `json:"language,omitempty" validate:"omitempty,min=2,max=8"`
	Status       *string `json:"status,omitempty"`
	PromoGroupID *int64  `json:"promo_group_id,omitempty"`
	IsBlocked    *bool   `json:"is_blocked,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

func (r UserUpdateRequest) body() map[string]any {
	body := map[string]any{}
	if r.FullName != nil {
		body["full_name"] = *r.FullName
	}
	if r.Username != nil {
		body["username"] = *r.Username
	}
	if r.Language != nil {
		body["language"] = *r.Language
	}
	if r.Status != nil {
		body["status"] = *r.Status
	}
	if r.PromoGroupID != nil {
		body["promo_group_id"] = *r.PromoGroupID
	}
	if r.IsBlocked != nil {
		body["is_blocked"] = *r.IsBlocked
	}
	if r.Notes != nil {
		body["notes"] = *r.Notes
	}
	return body
}

// UserListFilter holds the recognized optional list filters. Zero values
// are omitted from the upstream query.
type UserListFilter struct {
	Limit        int
	Offset       int
	Status       string
	PromoGroupID *int64
	Search       string
}

// UsersService proxies the upstream /users resource.
type UsersService struct {
	client *upstream.Client
}

// NewUsers creates the users service.
func NewUsers(client *upstream.Client) *UsersService {
	return &UsersService{client: client}
}

// List fetches a page of users.
func (s *UsersService) List(ctx context.Context, f UserListFilter) (*UserListResponse, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(f.Limit))
	query.Set("offset", strconv.Itoa(f.Offset))
	if f.Status != "" {
		query.Set("status", f.Status)
	}
	if f.PromoGroupID != nil {
		query.Set("promo_group_id", strconv.FormatInt(*f.PromoGroupID, 10))
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}

	payload, err := s.client.Request(ctx, http.MethodGet, "/users", query, nil)
	if err != nil {
		return nil, err
	}

	page := ensureListPayload(payload, "users")
	var items []UserSummary
	if err := decodeInto(page.Items, &items); err != nil {
		return nil, fmt.Errorf("decode users list: %w", err)
	}
	if items == nil {
		items = []UserSummary{}
	}

	return &UserListResponse{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, nil
}

// Get fetches a single user by id.
func (s *UsersService) Get(ctx context.Context, userID int64) (*UserDetailResponse, error) {
	payload, err := s.client.Request(ctx, http.MethodGet, fmt.Sprintf("/users/%d", userID), nil, nil)
	if err != nil {
		return nil, err
	}

	var resp UserDetailResponse
	if err := decodeInto(ensureDetailPayload(payload, "user"), &resp); err != nil {
		return nil, fmt.Errorf("decode user detail: %w", err)
	}
	return &resp, nil
}

// Update applies a partial update and returns the updated user.
func (s *UsersService) Update(ctx context.Context, userID int64, req UserUpdateRequest) (*UserDetailResponse, error) {
	payload, err := s.client.Request(ctx, http.MethodPatch, fmt.Sprintf("/users/%d", userID), nil, req.body())
	if err != nil {
		return nil, err
	}

	var resp UserDetailResponse
	if err := decodeInto(ensureDetailPayload(payload, "user"), &resp); err != nil {
		return nil, fmt.Errorf("decode user detail: %w", err)
	}
	return &resp, nil
}
