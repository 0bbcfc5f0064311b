// Package store owns the single persisted state document: every user
// account plus the schema version. Load happens once at startup; every
// mutating command re-persists the full document. The Store interface
// isolates the persistence boundary so incremental or transactional storage
// can be swapped in without touching the reward logic.
package store

import (
	"context"
	"time"

	"github.com/nekosui/petbot/internal/domain"
)

// Document is the logical layout of the persisted state.
type Document struct {
	SchemaVersion string                         `json:"schema_version"`
	Users         map[string]*domain.UserAccount `json:"users"`
}

// NewDocument returns an empty document at the current schema version.
func NewDocument() *Document {
	return &Document{
		SchemaVersion: domain.StateSchemaVersion,
		Users:         make(map[string]*domain.UserAccount),
	}
}

// Store provides access to user accounts and durable persistence.
type Store interface {
	// Account returns the account for userID, creating a zeroed one on
	// first access. Never fails.
	Account(userID string, now time.Time) *domain.UserAccount

	// Peek returns the account without creating it.
	Peek(userID string) (*domain.UserAccount, bool)

	// Update runs fn while holding the document open for account
	// mutation. Save waits for every in-flight Update before marshaling,
	// so fn is the only place account fields may be written. Updates for
	// different users run concurrently; same-user ordering is the
	// caller's per-user lock.
	Update(fn func() error) error

	// Save durably persists the whole document. A failed save is
	// reported, not swallowed; in-memory state stays advanced.
	Save(ctx context.Context) error

	// Load replaces the in-memory document from durable storage. A
	// missing backing file yields an empty document.
	Load(ctx context.Context) error
}
