package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/bedolaga/remnawave-admin-bff/internal/testutil"
)

func TestTokensList(t *testing.T) {
	mock := testutil.NewMockRemnaWave()
	defer mock.Close()
	mock.RespondJSON(http.MethodGet, "/tokens", http.StatusOK, `{
		"tokens": [
			{"id": 1, "name": "ci", "tokenPrefix": "rw_abc", "isActive": true, "scopes": ["read"]}
		]
	}`)

	svc := NewTokens(newUpstreamClient(t, mock.URL()))

	resp, err := svc.List(context.Background(), TokenListFilter{Limit: 20, Search: "ci"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(resp.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(resp.Items))
	}
	tok := resp.Items[0]
	if tok.Name != "ci" || tok.TokenPrefix != "rw_abc" || !tok.IsActive {
		t.Errorf("token = %+v", tok)
	}
	if resp.Total != 1 || resp.Limit != 1 || resp.Offset != 0 {
		t.Errorf("pagination = %d/%d/%d, want defaults 1/1/0", resp.Total, resp.Limit, resp.Offset)
	}
	if got := mock.LastRequest().Query.Get("search"); got != "ci" {
		t.Errorf("search = %q, want ci", got)
	}
}

func TestTokensCreate_BodyAndPlainToken(t *testing.T) {
	mock := testutil.NewMockRemnaWave()
	defer mock.Close()
	mock.RespondJSON(http.MethodPost, "/tokens", http.StatusOK, `{
		"token": {"id": 5, "name": "deploy", "tokenPrefix": "rw_xyz", "isActive": true},
		"plainToken": "rw_xyz_secret_once"
	}`)

	svc := NewTokens(newUpstreamClient(t, mock.URL()))

	resp, err := svc.Create(context.Background(), TokenCreateRequest{Name: "deploy", Scopes: []string{"deploy"}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.Token.ID != 5 || resp.Token.Name != "deploy" {
		t.Errorf("token = %+v", resp.Token)
	}
	if resp.PlainToken != "rw_xyz_secret_once" {
		t.Errorf("plain_token = %q, want one-time value passed through", resp.PlainToken)
	}

	var body map[string]any
	if err := json.Unmarshal(mock.LastRequest().Body, &body); err != nil {
		t.Fatalf("invalid upstream body: %v", err)
	}
	if _, ok := body["expires_at"]; ok {
		t.Error("unset expires_at must not be transmitted")
	}
	if body["name"] != "deploy" {
		t.Errorf("body = %#v, want name=deploy", body)
	}
}

func TestTokensCreate_BareTokenWrapped(t *testing.T) {
	mock := testutil.NewMockRemnaWave()
	defer mock.Close()
	mock.RespondJSON(http.MethodPost, "/tokens", http.StatusOK,
		`{"id": 6, "name": "bare", "isActive": true}`)

	svc := NewTokens(newUpstreamClient(t, mock.URL()))

	resp, err := svc.Create(context.Background(), TokenCreateRequest{Name: "bare"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.Token.ID != 6 || resp.Token.Name != "bare" {
		t.Errorf("token = %+v, want bare object wrapped", resp.Token)
	}
}

func TestTokensRevoke(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "explicit success", body: `{"success": true}`, want: true},
		{name: "explicit failure", body: `{"success": false}`, want: false},
		{name: "missing flag defaults to success", body: `{}`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockRemnaWave()
			defer mock.Close()
			mock.RespondJSON(http.MethodPost, "/tokens/9/revoke", http.StatusOK, tt.body)

			svc := NewTokens(newUpstreamClient(t, mock.URL()))

			resp, err := svc.Revoke(context.Background(), 9)
			if err != nil {
				t.Fatalf("Revoke failed: %v", err)
			}
			if resp.Success != tt.want {
				t.Errorf("success = %v, want %v", resp.Success, tt.want)
			}
		})
	}
}
