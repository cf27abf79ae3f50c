package api

import (
	"net/http"
	"time"

	"github.com/platinummonkey/feedgate/pkg/auth"
	"github.com/platinummonkey/feedgate/pkg/authz"
	"github.com/platinummonkey/feedgate/pkg/feed"
	"github.com/platinummonkey/feedgate/pkg/feedtoken"
	"github.com/platinummonkey/feedgate/pkg/httputil"
)

// directFeed handles GET /feeds?url=...&strategy=... with a bearer
// credential.
func (s *Server) directFeed(w http.ResponseWriter, r *http.Request) {
	rawURL := r.URL.Query().Get("url")
	if rawURL == "" {
		httputil.WriteBadRequest(w, "url parameter is required")
		return
	}

	decision := s.facade.AuthorizeDirect(r, rawURL)
	s.logDecision(r, "direct", rawURL, decision, "")
	if !decision.Allowed {
		s.writeDenied(w, decision)
		return
	}

	feedID := feedtoken.DeriveFeedID(decision.Account.Username, rawURL, decision.Account.Credential)
	s.serveFeed(w, r, feedID, rawURL)
}

// delegatedFeed handles GET /f?token=...&url=...&strategy=... — access
// via a feed capability token, no bearer credential involved.
func (s *Server) delegatedFeed(w http.ResponseWriter, r *http.Request) {
	encoded := r.URL.Query().Get("token")
	rawURL := r.URL.Query().Get("url")
	if encoded == "" || rawURL == "" {
		httputil.WriteBadRequest(w, "token and url parameters are required")
		return
	}

	decision := s.facade.AuthorizeDelegated(encoded, rawURL)
	s.logDecision(r, "delegated", rawURL, decision, feedtoken.CorrelationDigest(encoded))
	if !decision.Allowed {
		s.writeDenied(w, decision)
		return
	}

	feedID := feedtoken.DeriveFeedID(decision.Account.Username, rawURL, decision.Account.Credential)
	s.serveFeed(w, r, feedID, rawURL)
}

// issueToken handles POST /tokens. The caller authenticates with a
// bearer credential and receives a portable feed token bound to one URL.
func (s *Server) issueToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if req.URL == "" {
		httputil.WriteBadRequest(w, "url is required")
		return
	}

	decision := s.facade.AuthorizeDirect(r, req.URL)
	if !decision.Allowed {
		s.logDecision(r, "issue", req.URL, decision, "")
		s.writeDenied(w, decision)
		return
	}

	encoded, ok := s.facade.IssueFeedToken(decision.Account, req.URL)
	if !ok {
		s.logEvent(r, auth.Event{
			Action:   auth.ActionTokenIssueDenied,
			Username: decision.Account.Username,
			URL:      req.URL,
		})
		httputil.WriteBadRequest(w, "could not issue token for this URL")
		return
	}

	s.metrics.TokensIssuedTotal.Inc()
	s.logEvent(r, auth.Event{
		Action:      auth.ActionTokenIssue,
		Username:    decision.Account.Username,
		URL:         req.URL,
		TokenDigest: feedtoken.CorrelationDigest(encoded),
	})

	feedID := feedtoken.DeriveFeedID(decision.Account.Username, req.URL, decision.Account.Credential)
	httputil.WriteCreated(w, map[string]string{
		"token":   encoded,
		"url":     req.URL,
		"feed_id": feedID,
	})
}

// serveFeed returns a cached document or asks the engine for one.
func (s *Server) serveFeed(w http.ResponseWriter, r *http.Request, feedID, rawURL string) {
	if s.cache != nil {
		if doc, ok := s.cache.Get(feedID); ok {
			s.metrics.CacheHitsTotal.Inc()
			writeDocument(w, doc)
			return
		}
		s.metrics.CacheMissesTotal.Inc()
	}

	strategy := r.URL.Query().Get("strategy")
	start := time.Now()
	doc, err := s.generator.GenerateFeed(r.Context(), rawURL, strategy)
	s.metrics.FeedGenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.FeedGenerationsTotal.WithLabelValues("error").Inc()
		s.logger.WithError(err).WithField("url", rawURL).Error("feed generation failed")
		httputil.WriteBadGateway(w, "feed generation failed")
		return
	}
	s.metrics.FeedGenerationsTotal.WithLabelValues("success").Inc()

	if s.cache != nil {
		s.cache.Put(feedID, doc)
	}
	writeDocument(w, doc)
}

func writeDocument(w http.ResponseWriter, doc *feed.Document) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Body)
}

// writeDenied maps a denial to a status code without revealing why a
// token failed: everything short of an authenticated-but-denied policy
// check is a plain 401.
func (s *Server) writeDenied(w http.ResponseWriter, decision authz.Decision) {
	if decision.Reason == authz.ReasonPolicyDenied {
		httputil.WriteForbidden(w, "URL not permitted for this account")
		return
	}
	if decision.Reason == authz.ReasonInvalidURL {
		httputil.WriteBadRequest(w, "invalid url")
		return
	}
	httputil.WriteUnauthorized(w, "unauthorized")
}

func (s *Server) logDecision(r *http.Request, mode, rawURL string, decision authz.Decision, tokenDigest string) {
	s.metrics.AuthDecisionsTotal.WithLabelValues(mode, string(decision.Reason)).Inc()
	if mode == "delegated" {
		result := "success"
		if !decision.Allowed {
			result = "failure"
		}
		s.metrics.TokenValidationsTotal.WithLabelValues(result).Inc()
	}

	event := auth.EventFromRequest(r, auth.ActionAuthSuccess)
	event.URL = rawURL
	event.Reason = string(decision.Reason)
	event.TokenDigest = tokenDigest
	if decision.Account != nil {
		event.Username = decision.Account.Username
	}
	switch {
	case decision.Allowed:
		event.Action = auth.ActionAuthSuccess
		if mode == "delegated" {
			event.Action = auth.ActionTokenRedeem
		}
		s.logger.WithFields(event.Fields()).Info("authorized")
	case decision.Reason == authz.ReasonPolicyDenied:
		event.Action = auth.ActionPolicyDenied
		s.logger.WithFields(event.Fields()).Warn("denied by allow-list")
	default:
		event.Action = auth.ActionAuthFailure
		if mode == "delegated" {
			event.Action = auth.ActionTokenRejected
		}
		s.logger.WithFields(event.Fields()).Warn("unauthorized")
	}
}

func (s *Server) logEvent(r *http.Request, event auth.Event) {
	event.IPAddress = auth.ClientIP(r)
	event.UserAgent = r.UserAgent()
	s.logger.WithFields(event.Fields()).Info(event.Action)
}
