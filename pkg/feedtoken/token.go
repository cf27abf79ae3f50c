package feedtoken

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/platinummonkey/feedgate/pkg/urlmatch"
)

// DefaultTTL is the lifetime applied when the caller does not choose one.
// Feed tokens are long-lived by design; the allow-list of the owning
// account is re-checked on every use, so revocation does not depend on
// expiry.
const DefaultTTL = 10 * 365 * 24 * time.Hour

// maxDecodedSize bounds the inflated payload so a hostile token cannot
// expand into arbitrary memory.
const maxDecodedSize = 64 * 1024

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)

// timeNow is replaced in tests that exercise the expiry boundary.
var timeNow = time.Now

// Token is an immutable feed capability. The signature covers the
// canonical (username, url, expiresAt) payload under the process-wide
// secret; the token is valid only for the exact URL it names.
type Token struct {
	Username  string
	URL       string
	ExpiresAt int64
	Signature string
}

// Reason classifies the outcome of token validation. Callers must treat
// every non-OK reason identically when deciding access; reasons exist so
// the logging collaborator can record why a token was rejected without
// that distinction leaking to the requester.
type Reason string

const (
	ReasonOK          Reason = "ok"
	ReasonMalformed   Reason = "malformed"
	ReasonBadSig      Reason = "signature_mismatch"
	ReasonExpired     Reason = "expired"
	ReasonURLMismatch Reason = "url_mismatch"
)

// canonicalPayload is the exact serialization the HMAC covers. Field
// order is fixed by the struct declaration, so any two encodings of the
// same triple hash identically.
type canonicalPayload struct {
	Username  string `json:"username"`
	URL       string `json:"url"`
	ExpiresAt int64  `json:"expires_at"`
}

// wirePayload is the compact on-the-wire shape. Short keys keep the
// encoded token small enough to embed in URLs.
type wirePayload struct {
	U *string `json:"u"`
	L *string `json:"l"`
	E *int64  `json:"e"`
}

type wireToken struct {
	P *wirePayload `json:"p"`
	S *string      `json:"s"`
}

// ValidUsername reports whether name satisfies the account username
// grammar enforced at token creation.
func ValidUsername(name string) bool {
	return usernamePattern.MatchString(name)
}

// Create builds and signs a token for username and url, expiring ttl from
// now. A non-positive ttl selects DefaultTTL. The boolean is false when
// the username fails the account grammar, the url is not a valid absolute
// http/https URL, or the secret is empty. The url is stored exactly as
// given; it is the byte-for-byte binding the token carries.
func Create(username, rawURL, secret string, ttl time.Duration) (Token, bool) {
	if !ValidUsername(username) {
		return Token{}, false
	}
	if !urlmatch.IsValid(rawURL) {
		return Token{}, false
	}
	if secret == "" {
		return Token{}, false
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	expiresAt := timeNow().Add(ttl).Unix()
	return Token{
		Username:  username,
		URL:       rawURL,
		ExpiresAt: expiresAt,
		Signature: sign(username, rawURL, expiresAt, secret),
	}, true
}

// Encode serializes the token into its transport form:
// base64url(deflate(JSON{p:{u,l,e}, s})), unpadded.
func (t Token) Encode() (string, error) {
	wire := wireToken{
		P: &wirePayload{U: &t.Username, L: &t.URL, E: &t.ExpiresAt},
		S: &t.Signature,
	}
	raw, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(raw); err != nil {
		return "", err
	}
	if err := fw.Close(); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode parses a transport string back into a Token. Both padded and
// unpadded base64url are accepted. The boolean is false for malformed
// base64, a corrupt compressed stream, invalid JSON, or any missing
// field. Decode performs no signature or expiry checks.
func Decode(encoded string) (Token, bool) {
	if encoded == "" {
		return Token{}, false
	}

	compressed, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return Token{}, false
	}

	fr := flate.NewReader(bytes.NewReader(compressed))
	raw, err := io.ReadAll(io.LimitReader(fr, maxDecodedSize))
	fr.Close()
	if err != nil {
		return Token{}, false
	}

	var wire wireToken
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Token{}, false
	}
	if wire.P == nil || wire.S == nil || wire.P.U == nil || wire.P.L == nil || wire.P.E == nil {
		return Token{}, false
	}

	return Token{
		Username:  *wire.P.U,
		URL:       *wire.P.L,
		ExpiresAt: *wire.P.E,
		Signature: *wire.S,
	}, true
}

// VerifySignature recomputes the HMAC over the token's canonical payload
// and compares it against the carried signature in constant time.
func VerifySignature(t Token, secret string) bool {
	if secret == "" {
		return false
	}
	expected := sign(t.Username, t.URL, t.ExpiresAt, secret)
	return constantTimeEqual(t.Signature, expected)
}

// ValidateAndDecode decodes a transport string and runs the full check
// chain: signature, exact URL binding, expiry. A token whose expiry is
// exactly now is still valid. The returned Reason is ReasonOK only when
// every check passes; any other reason means the token must be rejected.
func ValidateAndDecode(encoded, expectedURL, secret string) (Token, Reason) {
	t, ok := Decode(encoded)
	if !ok {
		return Token{}, ReasonMalformed
	}
	if !VerifySignature(t, secret) {
		return Token{}, ReasonBadSig
	}
	if t.URL != expectedURL {
		return Token{}, ReasonURLMismatch
	}
	if timeNow().Unix() > t.ExpiresAt {
		return Token{}, ReasonExpired
	}
	return t, ReasonOK
}

// CorrelationDigest returns a short one-way hash of an encoded token for
// log correlation. The digest cannot be reversed into the token and is
// safe to record.
func CorrelationDigest(encoded string) string {
	sum := sha256.Sum256([]byte(encoded))
	return hex.EncodeToString(sum[:])[:12]
}

// DeriveFeedID derives the stable public identifier for a feed:
// the first 16 hex characters of SHA-256("username:url:credential").
// The identifier is a display reference, not an authorization proof.
func DeriveFeedID(username, rawURL, credential string) string {
	sum := sha256.Sum256([]byte(username + ":" + rawURL + ":" + credential))
	return hex.EncodeToString(sum[:])[:16]
}

func sign(username, rawURL string, expiresAt int64, secret string) string {
	raw, err := json.Marshal(canonicalPayload{
		Username:  username,
		URL:       rawURL,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		// Marshaling three scalar fields cannot fail.
		panic(err)
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(raw)
	return hex.EncodeToString(mac.Sum(nil))
}

// constantTimeEqual compares two strings without short-circuiting on the
// first differing byte. Length is compared up front; length is not secret
// here, only content is.
func constantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := 0; i < len(a); i++ {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}
