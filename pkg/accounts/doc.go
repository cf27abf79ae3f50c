// Package accounts provides the static account directory for the FeedGate authorization layer.
//
// # Overview
//
// This package loads user accounts from a YAML file, validates them, and indexes them
// for constant-time lookup by bearer credential or by username. A Store wraps the
// directory behind an atomic pointer so it can be hot-reloaded without restarting the
// service, and a Reloader watches the accounts file for changes.
//
// # Account Format
//
// Accounts are declared in YAML:
//
//	accounts:
//	  - username: alice
//	    credential: "k7f2...long-random-string..."
//	    allowed_url_patterns:
//	      - "https://blog.example.com/*"
//	      - "https://news.example.com/feed"
//	  - username: bob
//	    credential: "..."
//	    allowed_url_patterns: []   # empty list means any valid URL
//
// Usernames are 1-100 characters from [A-Za-z0-9_-]. Credentials must be non-empty
// and unique across the file; duplicate usernames are also rejected at parse time.
//
// # Usage Example
//
// Load and index:
//
//	accts, err := accounts.LoadFile("/etc/feedgate/accounts.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	dir := accounts.NewDirectory(accts)
//	acct := dir.FindByCredential(credential)
//	if acct == nil {
//		// unknown credential
//	}
//
// Hot reload:
//
//	store := accounts.NewStore(dir)
//	reloader, err := accounts.NewReloader(path, store, logger)
//	defer reloader.Close()
//	// handlers always read store.Current()
//
// A bad file left on disk never takes down a running service: reload failures are
// logged and the previous directory stays active.
//
// # Production Hardening
//
// ValidateProduction enforces a minimum credential length for production deployments:
//
//	if err := accounts.ValidateProduction(accts); err != nil {
//		log.Fatal(err)
//	}
//
// # Related Packages
//
//   - pkg/auth: resolves bearer credentials against the directory
//   - pkg/authz: authorization decisions over resolved accounts
//   - pkg/urlmatch: evaluates allowed_url_patterns
package accounts
