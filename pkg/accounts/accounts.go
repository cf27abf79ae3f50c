package accounts

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

// MinProductionCredentialLength is the floor enforced on bearer
// credentials when the service runs in production mode.
const MinProductionCredentialLength = 16

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,100}$`)

// Account is one configured principal. Accounts are immutable after
// load; a changed accounts file produces a whole new Directory.
type Account struct {
	Username string `yaml:"username"`
	// Credential is the opaque bearer secret. It is sensitive and must
	// never be logged in full.
	Credential string `yaml:"credential"`
	// AllowedURLPatterns restricts which URLs the account may generate
	// feeds for. An empty list means no restriction.
	AllowedURLPatterns []string `yaml:"allowed_url_patterns"`
}

type accountsFile struct {
	Accounts []Account `yaml:"accounts"`
}

// LoadFile reads the accounts file at path. A missing `accounts` key
// yields an empty list; structural problems (duplicate usernames or
// credentials, bad username grammar, empty credentials) are errors.
func LoadFile(path string) ([]Account, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading accounts file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML accounts document.
func Parse(raw []byte) ([]Account, error) {
	var f accountsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing accounts file: %w", err)
	}

	usernames := make(map[string]bool, len(f.Accounts))
	credentials := make(map[string]bool, len(f.Accounts))
	for _, a := range f.Accounts {
		if !usernamePattern.MatchString(a.Username) {
			return nil, fmt.Errorf("account %q: username must match [A-Za-z0-9_-]{1,100}", a.Username)
		}
		if a.Credential == "" {
			return nil, fmt.Errorf("account %q: credential is empty", a.Username)
		}
		if usernames[a.Username] {
			return nil, fmt.Errorf("account %q: duplicate username", a.Username)
		}
		if credentials[a.Credential] {
			return nil, fmt.Errorf("account %q: credential already assigned to another account", a.Username)
		}
		usernames[a.Username] = true
		credentials[a.Credential] = true
	}
	return f.Accounts, nil
}

// ValidateProduction enforces the production credential policy: every
// credential must be at least MinProductionCredentialLength bytes. The
// check runs once at startup, before the service accepts traffic.
func ValidateProduction(accts []Account) error {
	for _, a := range accts {
		if len(a.Credential) < MinProductionCredentialLength {
			return fmt.Errorf("account %q: credential shorter than %d bytes is not allowed in production",
				a.Username, MinProductionCredentialLength)
		}
	}
	return nil
}

// Directory provides credential and username lookup over a fixed account
// list. The lookup maps are built lazily on first access, guarded so
// concurrent first lookups from multiple goroutines build them exactly
// once. The Directory itself never changes after construction.
type Directory struct {
	accounts []Account

	once         sync.Once
	byCredential map[string]*Account
	byUsername   map[string]*Account
}

// NewDirectory builds a directory over accts. The slice is not copied;
// callers must not mutate it afterwards.
func NewDirectory(accts []Account) *Directory {
	return &Directory{accounts: accts}
}

// FindByCredential resolves a bearer credential to its account. The nil
// return covers both an empty credential and an unknown one. The match
// is a map lookup, not a scan, so lookup cost does not grow with an
// attacker-controlled comparison position.
func (d *Directory) FindByCredential(credential string) *Account {
	if credential == "" {
		return nil
	}
	d.buildIndex()
	return d.byCredential[credential]
}

// FindByUsername resolves a username to its account, or nil.
func (d *Directory) FindByUsername(username string) *Account {
	if username == "" {
		return nil
	}
	d.buildIndex()
	return d.byUsername[username]
}

// Len reports the number of configured accounts.
func (d *Directory) Len() int {
	return len(d.accounts)
}

// Accounts returns the configured account list. The returned slice is
// shared; callers must treat it as read-only.
func (d *Directory) Accounts() []Account {
	return d.accounts
}

func (d *Directory) buildIndex() {
	d.once.Do(func() {
		byCredential := make(map[string]*Account, len(d.accounts))
		byUsername := make(map[string]*Account, len(d.accounts))
		for i := range d.accounts {
			a := &d.accounts[i]
			byCredential[a.Credential] = a
			byUsername[a.Username] = a
		}
		d.byCredential = byCredential
		d.byUsername = byUsername
	})
}
