package auth

import "net/http"

// Event is one security-relevant occurrence, logged by the HTTP layer
// with requester metadata. Credential values and feed tokens never
// appear in an Event; tokens are referenced by their correlation digest.
type Event struct {
	Action      string
	Username    string
	URL         string
	Reason      string
	IPAddress   string
	UserAgent   string
	TokenDigest string
}

// Fields renders the event as structured log fields. Empty values are
// omitted so log lines stay compact.
func (e Event) Fields() map[string]interface{} {
	fields := map[string]interface{}{
		"action": e.Action,
	}
	if e.Username != "" {
		fields["username"] = e.Username
	}
	if e.URL != "" {
		fields["url"] = e.URL
	}
	if e.Reason != "" {
		fields["reason"] = e.Reason
	}
	if e.IPAddress != "" {
		fields["ip"] = e.IPAddress
	}
	if e.UserAgent != "" {
		fields["user_agent"] = e.UserAgent
	}
	if e.TokenDigest != "" {
		fields["token_digest"] = e.TokenDigest
	}
	return fields
}

// EventFromRequest pre-fills requester metadata.
func EventFromRequest(r *http.Request, action string) Event {
	return Event{
		Action:    action,
		IPAddress: ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

// ClientIP returns the requester address, honoring the usual proxy
// headers.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}

// Common audit action constants
const (
	ActionAuthSuccess       = "auth.success"
	ActionAuthFailure       = "auth.failure"
	ActionTokenIssue        = "token.issue"
	ActionTokenIssueDenied  = "token.issue_denied"
	ActionTokenRedeem       = "token.redeem"
	ActionTokenRejected     = "token.rejected"
	ActionPolicyDenied      = "policy.denied"
	ActionRateLimitExceeded = "ratelimit.exceeded"
)
