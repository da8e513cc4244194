package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/bedolaga/remnawave-admin-bff/pkg/upstream"
)

// Token is an API token as listed by the upstream.
type Token struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	TokenPrefix string   `json:"token_prefix,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	LastUsedAt  string   `json:"last_used_at,omitempty"`
	LastUsedIP  string   `json:"last_used_ip,omitempty"`
	ExpiresAt   string   `json:"expires_at,omitempty"`
	IsActive    bool     `json:"is_active"`
	Scopes      []string `json:"scopes,omitempty"`
}

// TokenListResponse is the paginated token list.
type TokenListResponse struct {
	Items  []Token `json:"items"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// TokenCreateRequest creates a new API token. ExpiresAt is optional and
// omitted from the upstream body when unset.
type TokenCreateRequest struct {
	Name      string   `json:"name" validate:"required"`
	ExpiresAt *string  `json:"expires_at,omitempty"`
	Scopes    []string `json:"scopes"`
}

func (r TokenCreateRequest) body() map[string]any {
	scopes := r.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	body := map[string]any{
		"name":   r.Name,
		"scopes": scopes,
	}
	if r.ExpiresAt != nil {
		body["expires_at"] = *r.ExpiresAt
	}
	return body
}

// TokenCreateResponse carries the created token plus the one-time plaintext
// value, which the upstream returns exactly once.
type TokenCreateResponse struct {
	Token      Token  `json:"token"`
	PlainToken string `json:"plain_token,omitempty"`
}

// TokenRevokeResponse reports a revocation result.
type TokenRevokeResponse struct {
	Success bool `json:"success"`
}

// TokenListFilter holds the recognized optional list filters.
type TokenListFilter struct {
	Limit  int
	Offset int
	Search string
}

// TokensService proxies the upstream /tokens resource.
type TokensService struct {
	client *upstream.Client
}

// NewTokens creates the tokens service.
func NewTokens(client *upstream.Client) *TokensService {
	return &TokensService{client: client}
}

// List fetches a page of tokens.
func (s *TokensService) List(ctx context.Context, f TokenListFilter) (*TokenListResponse, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(f.Limit))
	query.Set("offset", strconv.Itoa(f.Offset))
	if f.Search != "" {
		query.Set("search", f.Search)
	}

	payload, err := s.client.Request(ctx, http.MethodGet, "/tokens", query, nil)
	if err != nil {
		return nil, err
	}

	page := ensureListPayload(payload, "tokens")
	var items []Token
	if err := decodeInto(page.Items, &items); err != nil {
		return nil, fmt.Errorf("decode tokens list: %w", err)
	}
	if items == nil {
		items = []Token{}
	}

	return &TokenListResponse{
		Items:  items,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}, nil
}

// Create issues a new token upstream and returns it together with the
// one-time plaintext value.
func (s *TokensService) Create(ctx context.Context, req TokenCreateRequest) (*TokenCreateResponse, error) {
	payload, err := s.client.Request(ctx, http.MethodPost, "/tokens", nil, req.body())
	if err != nil {
		return nil, err
	}

	var resp TokenCreateResponse
	if err := decodeInto(ensureDetailPayload(payload, "token"), &resp); err != nil {
		return nil, fmt.Errorf("decode created token: %w", err)
	}
	return &resp, nil
}

// Revoke deactivates a token. A missing success flag in the upstream
// response counts as success.
func (s *TokensService) Revoke(ctx context.Context, tokenID int64) (*TokenRevokeResponse, error) {
	payload, err := s.client.Request(ctx, http.MethodPost, fmt.Sprintf("/tokens/%d/revoke", tokenID), nil, nil)
	if err != nil {
		return nil, err
	}

	success := true
	if v, ok := asMap(payload)["success"].(bool); ok {
		success = v
	}
	return &TokenRevokeResponse{Success: success}, nil
}
