package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/platinummonkey/feedgate/pkg/accounts"
)

// MaxCredentialLength is a hard ceiling on the bearer credential,
// independent of any real credential's length.
const MaxCredentialLength = 1024

const bearerScheme = "Bearer "

var (
	// ErrNoCredential means the request carried no usable bearer header.
	ErrNoCredential = errors.New("no bearer credential")
	// ErrUnknownCredential means the credential resolved to no account.
	ErrUnknownCredential = errors.New("unknown bearer credential")
)

// ExtractCredential pulls the bearer credential out of the Authorization
// header. The boolean is false when the header is absent, does not use
// the Bearer scheme, or carries an empty or oversize credential.
func ExtractCredential(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, bearerScheme) {
		return "", false
	}
	credential := header[len(bearerScheme):]
	if credential == "" || len(credential) > MaxCredentialLength {
		return "", false
	}
	return credential, true
}

// BearerAuthenticator resolves requests to accounts through the
// directory store. It holds no state of its own and is safe for
// concurrent use.
type BearerAuthenticator struct {
	store *accounts.Store
}

// NewBearerAuthenticator creates an authenticator backed by store.
func NewBearerAuthenticator(store *accounts.Store) *BearerAuthenticator {
	return &BearerAuthenticator{store: store}
}

// Authenticate extracts the bearer credential and resolves it against
// the current directory. The returned error is ErrNoCredential or
// ErrUnknownCredential; the credential value itself is never part of
// the error.
func (a *BearerAuthenticator) Authenticate(r *http.Request) (*accounts.Account, error) {
	credential, ok := ExtractCredential(r)
	if !ok {
		return nil, ErrNoCredential
	}
	acct := a.store.Current().FindByCredential(credential)
	if acct == nil {
		return nil, ErrUnknownCredential
	}
	return acct, nil
}
