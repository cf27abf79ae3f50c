package authz

import (
	"net/http"

	"github.com/platinummonkey/feedgate/pkg/accounts"
	"github.com/platinummonkey/feedgate/pkg/auth"
	"github.com/platinummonkey/feedgate/pkg/feedtoken"
	"github.com/platinummonkey/feedgate/pkg/urlmatch"
)

// Reason classifies a decision for logging and metrics.
type Reason string

const (
	ReasonOK                Reason = "ok"
	ReasonMissingCredential Reason = "missing_credential"
	ReasonUnknownCredential Reason = "unknown_credential"
	ReasonInvalidToken      Reason = "invalid_token"
	ReasonTokenExpired      Reason = "token_expired"
	ReasonURLMismatch       Reason = "url_mismatch"
	ReasonUnknownPrincipal  Reason = "unknown_principal"
	ReasonPolicyDenied      Reason = "policy_denied"
	ReasonInvalidURL        Reason = "invalid_url"
)

// Decision is the outcome of an authorization check. Account is non-nil
// whenever a principal was resolved, even on denial, so logs can say who
// was denied — distinct from a request that never identified anyone.
type Decision struct {
	Account *accounts.Account
	Allowed bool
	Reason  Reason
}

// Facade answers authorization questions over the current account
// directory and the process-wide token secret. It is stateless beyond
// the store and secret it was constructed with.
type Facade struct {
	store         *accounts.Store
	authenticator *auth.BearerAuthenticator
	secret        string
}

// NewFacade builds a facade over store, signing and verifying feed
// tokens with secret.
func NewFacade(store *accounts.Store, secret string) *Facade {
	return &Facade{
		store:         store,
		authenticator: auth.NewBearerAuthenticator(store),
		secret:        secret,
	}
}

// AuthorizeDirect answers whether the bearer request r may act on
// rawURL: authenticate, then apply the account's allow-list.
func (f *Facade) AuthorizeDirect(r *http.Request, rawURL string) Decision {
	acct, err := f.authenticator.Authenticate(r)
	if err != nil {
		reason := ReasonUnknownCredential
		if err == auth.ErrNoCredential {
			reason = ReasonMissingCredential
		}
		return Decision{Reason: reason}
	}

	if !urlmatch.IsValid(rawURL) {
		return Decision{Account: acct, Reason: ReasonInvalidURL}
	}
	if !urlmatch.IsAllowed(rawURL, acct.AllowedURLPatterns) {
		return Decision{Account: acct, Reason: ReasonPolicyDenied}
	}
	return Decision{Account: acct, Allowed: true, Reason: ReasonOK}
}

// AuthorizeDelegated answers whether encodedToken grants access to
// rawURL. The token must decode, verify, bind to exactly rawURL, and be
// unexpired; its principal must still exist; and rawURL must still pass
// the principal's current allow-list. The last check is what makes
// narrowing an account's patterns revoke previously minted tokens.
func (f *Facade) AuthorizeDelegated(encodedToken, rawURL string) Decision {
	token, reason := feedtoken.ValidateAndDecode(encodedToken, rawURL, f.secret)
	if reason != feedtoken.ReasonOK {
		return Decision{Reason: tokenReason(reason)}
	}

	acct := f.store.Current().FindByUsername(token.Username)
	if acct == nil {
		return Decision{Reason: ReasonUnknownPrincipal}
	}
	if !urlmatch.IsAllowed(rawURL, acct.AllowedURLPatterns) {
		return Decision{Account: acct, Reason: ReasonPolicyDenied}
	}
	return Decision{Account: acct, Allowed: true, Reason: ReasonOK}
}

// IssueFeedToken mints an encoded feed token for acct and rawURL. The
// allow-list is enforced before any token is created; the boolean is
// false when the URL is not permitted or token creation fails.
func (f *Facade) IssueFeedToken(acct *accounts.Account, rawURL string) (string, bool) {
	if acct == nil {
		return "", false
	}
	if !urlmatch.IsAllowed(rawURL, acct.AllowedURLPatterns) {
		return "", false
	}
	token, ok := feedtoken.Create(acct.Username, rawURL, f.secret, 0)
	if !ok {
		return "", false
	}
	encoded, err := token.Encode()
	if err != nil {
		return "", false
	}
	return encoded, true
}

// Directory exposes the directory in effect right now, for handlers
// that need a username lookup outside an authorization decision.
func (f *Facade) Directory() *accounts.Directory {
	return f.store.Current()
}

func tokenReason(r feedtoken.Reason) Reason {
	switch r {
	case feedtoken.ReasonExpired:
		return ReasonTokenExpired
	case feedtoken.ReasonURLMismatch:
		return ReasonURLMismatch
	default:
		return ReasonInvalidToken
	}
}
