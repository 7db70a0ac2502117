package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned by the session store for unknown or
// expired session IDs.
var ErrSessionNotFound = errors.New("session not found")

// Session is the gateway-owned session record. The token triplet (access,
// refresh, role) is always written and cleared as one value; no partial
// state is ever observable between reads.
type Session struct {
	ID           string           `json:"id"`
	AccessToken  string           `json:"accessToken"`
	RefreshToken string           `json:"refreshToken"`
	Role         Role             `json:"role"`
	User         User             `json:"user"`
	Profile      *ProfileSnapshot `json:"profile,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// ProfileSnapshot is the role-specific profile last fetched from the
// platform API, cached alongside the session.
type ProfileSnapshot struct {
	JobSeeker    *JobSeekerProfile     `json:"jobSeeker,omitempty"`
	Employer     *EmployerProfile      `json:"employer,omitempty"`
	Verification *EmployerVerification `json:"verification,omitempty"`
}

// SessionStore persists session records. Save replaces the whole record
// atomically; Delete is idempotent.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}

// LoginOutcome is what a completed login hands back to the delivery layer.
// Redirect is the onboarding path the user must visit first, or empty when
// the user may proceed straight to their dashboard.
type LoginOutcome struct {
	SessionID string `json:"sessionId"`
	User      User   `json:"user"`
	Redirect  string `json:"redirect,omitempty"`
	Dashboard string `json:"dashboard"`
}

// SessionUsecase owns the current user, the role-specific profile snapshot
// and the token lifecycle. It is the single place that triggers completion
// checks.
type SessionUsecase interface {
	// Login persists the token triplet, fetches the role-specific profile
	// and resolves the post-login redirect. Token persistence completes
	// before the profile fetch starts.
	Login(ctx context.Context, result *AuthResult) (*LoginOutcome, error)

	// Logout clears the session. Succeeds even if no session exists.
	Logout(ctx context.Context, sessionID string) error

	// Current returns the stored session.
	Current(ctx context.Context, sessionID string) (*Session, error)

	// RefreshProfile re-fetches the profile, updates the cached snapshot and
	// returns an onboarding redirect only for the unambiguous NOT_STARTED
	// case. Full redirect resolution is reserved for CheckProfileCompletion
	// so background refreshes cannot cause redirect loops mid-edit.
	RefreshProfile(ctx context.Context, sessionID string) (*ProfileSnapshot, string, error)

	// CheckProfileCompletion runs the full redirect resolution on demand.
	// On fetch failure it returns the role's onboarding path, never empty.
	CheckProfileCompletion(ctx context.Context, sessionID string) (string, error)

	// RefreshTokens exchanges the stored refresh token for a new pair and
	// atomically replaces the triplet.
	RefreshTokens(ctx context.Context, sessionID string) (*Session, error)
}
