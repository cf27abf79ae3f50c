package auth

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/platinummonkey/feedgate/pkg/accounts"
)

func TestExtractCredential(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{
			name:   "valid bearer",
			header: "Bearer tok-123",
			want:   "tok-123",
			ok:     true,
		},
		{
			name:   "missing header",
			header: "",
			ok:     false,
		},
		{
			name:   "wrong scheme",
			header: "Basic dXNlcjpwYXNz",
			ok:     false,
		},
		{
			name:   "lowercase scheme rejected",
			header: "bearer tok-123",
			ok:     false,
		},
		{
			name:   "empty credential",
			header: "Bearer ",
			ok:     false,
		},
		{
			name:   "oversize credential",
			header: "Bearer " + strings.Repeat("x", MaxCredentialLength+1),
			ok:     false,
		},
		{
			name:   "max length credential accepted",
			header: "Bearer " + strings.Repeat("x", MaxCredentialLength),
			want:   strings.Repeat("x", MaxCredentialLength),
			ok:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/feeds", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, ok := ExtractCredential(r)
			if ok != tt.ok {
				t.Fatalf("ExtractCredential() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ExtractCredential() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractCredential_IgnoresQueryString(t *testing.T) {
	// Credentials must come from the header only; a credential in the
	// query string is not a credential.
	r := httptest.NewRequest("GET", "/feeds?credential=tok-123&access_token=tok-123", nil)
	if _, ok := ExtractCredential(r); ok {
		t.Error("credential extracted from query string")
	}
}

func TestBearerAuthenticator_Authenticate(t *testing.T) {
	store := accounts.NewStore(accounts.NewDirectory([]accounts.Account{
		{Username: "alice", Credential: "tok-123"},
	}))
	a := NewBearerAuthenticator(store)

	r := httptest.NewRequest("GET", "/feeds", nil)
	r.Header.Set("Authorization", "Bearer tok-123")
	acct, err := a.Authenticate(r)
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if acct.Username != "alice" {
		t.Errorf("resolved account = %+v, want alice", acct)
	}

	r = httptest.NewRequest("GET", "/feeds", nil)
	if _, err := a.Authenticate(r); err != ErrNoCredential {
		t.Errorf("missing header error = %v, want ErrNoCredential", err)
	}

	r = httptest.NewRequest("GET", "/feeds", nil)
	r.Header.Set("Authorization", "Bearer wrong")
	if _, err := a.Authenticate(r); err != ErrUnknownCredential {
		t.Errorf("unknown credential error = %v, want ErrUnknownCredential", err)
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	if got := ClientIP(r); got != "10.0.0.1:1234" {
		t.Errorf("ClientIP() = %q", got)
	}

	r.Header.Set("X-Real-IP", "10.0.0.2")
	if got := ClientIP(r); got != "10.0.0.2" {
		t.Errorf("ClientIP() with X-Real-IP = %q", got)
	}

	r.Header.Set("X-Forwarded-For", "10.0.0.3")
	if got := ClientIP(r); got != "10.0.0.3" {
		t.Errorf("ClientIP() with X-Forwarded-For = %q", got)
	}
}

func TestEventFields(t *testing.T) {
	e := Event{Action: ActionAuthFailure, Reason: "unknown_credential", IPAddress: "10.0.0.1"}
	fields := e.Fields()

	if fields["action"] != ActionAuthFailure {
		t.Errorf("action field = %v", fields["action"])
	}
	if fields["reason"] != "unknown_credential" {
		t.Errorf("reason field = %v", fields["reason"])
	}
	if _, present := fields["username"]; present {
		t.Error("empty username should be omitted")
	}
	if _, present := fields["token_digest"]; present {
		t.Error("empty token digest should be omitted")
	}
}
