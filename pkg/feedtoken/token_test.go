package feedtoken

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/flate"
)

const testSecret = "unit-test-secret-0123456789"

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		username string
		url      string
		secret   string
		ok       bool
	}{
		{
			name:     "valid",
			username: "alice",
			url:      "https://news.example/a",
			secret:   testSecret,
			ok:       true,
		},
		{
			name:     "username with allowed punctuation",
			username: "bot_user-42",
			url:      "https://news.example/a",
			secret:   testSecret,
			ok:       true,
		},
		{
			name:     "empty username",
			username: "",
			url:      "https://news.example/a",
			secret:   testSecret,
			ok:       false,
		},
		{
			name:     "username with space",
			username: "alice smith",
			url:      "https://news.example/a",
			secret:   testSecret,
			ok:       false,
		},
		{
			name:     "username too long",
			username: strings.Repeat("a", 101),
			url:      "https://news.example/a",
			secret:   testSecret,
			ok:       false,
		},
		{
			name:     "invalid url",
			username: "alice",
			url:      "not-a-url",
			secret:   testSecret,
			ok:       false,
		},
		{
			name:     "empty secret",
			username: "alice",
			url:      "https://news.example/a",
			secret:   "",
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok, ok := Create(tt.username, tt.url, tt.secret, 0)
			if ok != tt.ok {
				t.Fatalf("Create ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if tok.Username != tt.username || tok.URL != tt.url {
				t.Errorf("token = %+v, want username %q url %q", tok, tt.username, tt.url)
			}
			if tok.Signature == "" {
				t.Error("token signature is empty")
			}
			if len(tok.Signature) != 64 {
				t.Errorf("signature length = %d, want 64 hex chars", len(tok.Signature))
			}
		})
	}
}

func TestCreate_DefaultTTL(t *testing.T) {
	before := time.Now().Add(DefaultTTL).Unix()
	tok, ok := Create("alice", "https://news.example/a", testSecret, 0)
	after := time.Now().Add(DefaultTTL).Unix()
	if !ok {
		t.Fatal("Create failed")
	}
	if tok.ExpiresAt < before || tok.ExpiresAt > after {
		t.Errorf("ExpiresAt = %d, want within [%d, %d]", tok.ExpiresAt, before, after)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	cases := []struct {
		username string
		url      string
	}{
		{"alice", "https://news.example/a"},
		{"bob-2", "https://example.com/path?q=1&r=2"},
		{"user_with_long_name-0123456789", "https://example.com/" + strings.Repeat("x", 500)},
	}

	for _, c := range cases {
		tok, ok := Create(c.username, c.url, testSecret, time.Hour)
		if !ok {
			t.Fatalf("Create(%q, %q) failed", c.username, c.url)
		}

		encoded, err := tok.Encode()
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		if encoded == "" {
			t.Fatal("Encode() returned empty string")
		}

		decoded, ok := Decode(encoded)
		if !ok {
			t.Fatalf("Decode(%q) failed", encoded)
		}
		if decoded != tok {
			t.Errorf("round-trip mismatch: got %+v, want %+v", decoded, tok)
		}
	}
}

func TestDecode_AcceptsPaddedBase64(t *testing.T) {
	tok, _ := Create("alice", "https://news.example/a", testSecret, time.Hour)
	encoded, err := tok.Encode()
	if err != nil {
		t.Fatal(err)
	}

	// Re-encode the same bytes with padding.
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatal(err)
	}
	padded := base64.URLEncoding.EncodeToString(raw)

	decoded, ok := Decode(padded)
	if !ok {
		t.Fatal("Decode rejected padded encoding")
	}
	if decoded != tok {
		t.Errorf("padded decode mismatch: got %+v, want %+v", decoded, tok)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"base64 but not deflate", base64.RawURLEncoding.EncodeToString([]byte("plain text"))},
		{"truncated stream", func() string {
			tok, _ := Create("alice", "https://news.example/a", testSecret, time.Hour)
			s, _ := tok.Encode()
			raw, _ := base64.RawURLEncoding.DecodeString(s)
			return base64.RawURLEncoding.EncodeToString(raw[:len(raw)/2])
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Decode(tt.encoded); ok {
				t.Errorf("Decode(%q) succeeded, want failure", tt.encoded)
			}
		})
	}
}

func TestValidateAndDecode_MissingFields(t *testing.T) {
	// Hand-built wire structures with fields removed one at a time.
	shapes := []string{
		`{}`,
		`{"s":"abc"}`,
		`{"p":{},"s":"abc"}`,
		`{"p":{"u":"alice","l":"https://news.example/a"},"s":"abc"}`,
		`{"p":{"u":"alice","e":123},"s":"abc"}`,
		`{"p":{"l":"https://news.example/a","e":123},"s":"abc"}`,
		`{"p":{"u":"alice","l":"https://news.example/a","e":123}}`,
	}

	for _, shape := range shapes {
		encoded := deflateAndEncode(t, []byte(shape))
		if _, reason := ValidateAndDecode(encoded, "https://news.example/a", testSecret); reason == ReasonOK {
			t.Errorf("shape %s validated, want rejection", shape)
		}
		if _, ok := Decode(encoded); ok {
			t.Errorf("shape %s decoded, want rejection", shape)
		}
	}
}

func TestValidateAndDecode(t *testing.T) {
	url := "https://news.example/a"
	tok, _ := Create("alice", url, testSecret, time.Hour)
	encoded, err := tok.Encode()
	if err != nil {
		t.Fatal(err)
	}

	got, reason := ValidateAndDecode(encoded, url, testSecret)
	if reason != ReasonOK {
		t.Fatalf("ValidateAndDecode reason = %q, want ok", reason)
	}
	if got != tok {
		t.Errorf("validated token = %+v, want %+v", got, tok)
	}

	if _, reason := ValidateAndDecode(encoded, url, "different-secret"); reason != ReasonBadSig {
		t.Errorf("wrong secret reason = %q, want %q", reason, ReasonBadSig)
	}
	if _, reason := ValidateAndDecode("garbage", url, testSecret); reason != ReasonMalformed {
		t.Errorf("garbage reason = %q, want %q", reason, ReasonMalformed)
	}
}

func TestValidateAndDecode_URLBinding(t *testing.T) {
	url := "https://news.example/a"
	tok, _ := Create("alice", url, testSecret, time.Hour)
	encoded, _ := tok.Encode()

	variants := []string{
		"https://news.example/b",
		"https://news.example/a/",
		"https://news.example/a?extra=1",
		"http://news.example/a",
		"https://News.example/a",
	}

	for _, other := range variants {
		if _, reason := ValidateAndDecode(encoded, other, testSecret); reason != ReasonURLMismatch {
			t.Errorf("ValidateAndDecode against %q reason = %q, want %q", other, reason, ReasonURLMismatch)
		}
	}
}

func TestValidateAndDecode_TamperDetection(t *testing.T) {
	url := "https://news.example/a"
	tok, _ := Create("alice", url, testSecret, time.Hour)

	mutations := []struct {
		name   string
		mutate func(Token) Token
	}{
		{"username", func(t Token) Token { t.Username = "mallory"; return t }},
		{"url", func(t Token) Token { t.URL = "https://evil.example/a"; return t }},
		{"expiry", func(t Token) Token { t.ExpiresAt++; return t }},
		{"signature", func(t Token) Token {
			t.Signature = flipHexChar(t.Signature)
			return t
		}},
	}

	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			tampered := m.mutate(tok)
			encoded, err := tampered.Encode()
			if err != nil {
				t.Fatal(err)
			}
			// Validate against the tampered token's own URL so only the
			// signature check can reject it.
			if _, reason := ValidateAndDecode(encoded, tampered.URL, testSecret); reason != ReasonBadSig {
				t.Errorf("tampered %s reason = %q, want %q", m.name, reason, ReasonBadSig)
			}
		})
	}
}

func TestValidateAndDecode_ExpiryBoundary(t *testing.T) {
	url := "https://news.example/a"
	now := time.Now()

	restore := timeNow
	timeNow = func() time.Time { return now }
	defer func() { timeNow = restore }()

	tests := []struct {
		name      string
		expiresAt int64
		want      Reason
	}{
		{"one second past", now.Unix() - 1, ReasonExpired},
		{"exactly now", now.Unix(), ReasonOK},
		{"one second ahead", now.Unix() + 1, ReasonOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := Token{Username: "alice", URL: url, ExpiresAt: tt.expiresAt}
			tok.Signature = sign(tok.Username, tok.URL, tok.ExpiresAt, testSecret)
			encoded, err := tok.Encode()
			if err != nil {
				t.Fatal(err)
			}
			if _, reason := ValidateAndDecode(encoded, url, testSecret); reason != tt.want {
				t.Errorf("reason = %q, want %q", reason, tt.want)
			}
		})
	}
}

func TestVerifySignature(t *testing.T) {
	tok, _ := Create("alice", "https://news.example/a", testSecret, time.Hour)

	if !VerifySignature(tok, testSecret) {
		t.Error("genuine signature rejected")
	}
	if VerifySignature(tok, "other-secret") {
		t.Error("signature accepted under wrong secret")
	}
	if VerifySignature(tok, "") {
		t.Error("signature accepted under empty secret")
	}
}

func TestConstantTimeEqual(t *testing.T) {
	// Equal-length truth table: the comparison must not depend on where
	// strings differ, so exercise differences at the start, middle, end.
	tests := []struct {
		a, b string
		want bool
	}{
		{"", "", true},
		{"abcd", "abcd", true},
		{"abcd", "xbcd", false},
		{"abcd", "abxd", false},
		{"abcd", "abcx", false},
		{"abcd", "abc", false},
		{"abc", "abcd", false},
	}

	for _, tt := range tests {
		if got := constantTimeEqual(tt.a, tt.b); got != tt.want {
			t.Errorf("constantTimeEqual(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCorrelationDigest(t *testing.T) {
	d1 := CorrelationDigest("some-encoded-token")
	d2 := CorrelationDigest("some-encoded-token")
	if d1 != d2 {
		t.Error("digest is not deterministic")
	}
	if len(d1) != 12 {
		t.Errorf("digest length = %d, want 12", len(d1))
	}
	if d1 == CorrelationDigest("other-token") {
		t.Error("distinct tokens share a digest")
	}
}

func TestDeriveFeedID(t *testing.T) {
	id := DeriveFeedID("alice", "https://news.example/a", "tok-123")
	if len(id) != 16 {
		t.Fatalf("feed id length = %d, want 16", len(id))
	}
	for _, r := range id {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Fatalf("feed id %q contains non-hex character %q", id, r)
		}
	}

	if id != DeriveFeedID("alice", "https://news.example/a", "tok-123") {
		t.Error("feed id is not deterministic")
	}
	if id == DeriveFeedID("alice", "https://news.example/b", "tok-123") {
		t.Error("feed id ignores the URL")
	}
	if id == DeriveFeedID("alice", "https://news.example/a", "tok-456") {
		t.Error("feed id ignores the credential")
	}
	if id == DeriveFeedID("bob", "https://news.example/a", "tok-123") {
		t.Error("feed id ignores the username")
	}
}

func flipHexChar(s string) string {
	b := []byte(s)
	if b[0] == '0' {
		b[0] = '1'
	} else {
		b[0] = '0'
	}
	return string(b)
}

func deflateAndEncode(t *testing.T, raw []byte) string {
	t.Helper()
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(raw); err != nil {
		t.Fatal(err)
	}
	if err := fw.Close(); err != nil {
		t.Fatal(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes())
}
