package domain

import (
	"context"
	"strings"
)

// Role is the canonical persona identifier used everywhere past the API boundary.
type Role string

const (
	RoleJobSeeker Role = "JOB_SEEKER"
	RoleEmployer  Role = "EMPLOYER"
	RoleAdmin     Role = "ADMIN"
)

// NormalizeRole maps the platform API's role strings ("JobSeeker", "Recruiter",
// "Admin" and casing variants) to canonical roles. Unrecognized strings pass
// through upper-cased: a lenient default, not a silent failure - callers log it.
func NormalizeRole(raw string) Role {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	cleaned = strings.ReplaceAll(cleaned, "-", "_")
	switch strings.ReplaceAll(cleaned, "_", "") {
	case "JOBSEEKER", "CANDIDATE", "SEEKER":
		return RoleJobSeeker
	case "RECRUITER", "EMPLOYER":
		return RoleEmployer
	case "ADMIN":
		return RoleAdmin
	default:
		return Role(cleaned)
	}
}

// IsKnown reports whether the role is one of the canonical personas.
func (r Role) IsKnown() bool {
	return r == RoleJobSeeker || r == RoleEmployer || r == RoleAdmin
}

// User is the authenticated identity returned by the platform API's
// login/verify endpoints and cached in the session record.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	ProfileID string `json:"profileId,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// AuthResult is the parsed payload of a successful login or email
// verification against the platform API, consumed verbatim.
type AuthResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// TokenPair is returned by the platform API's token refresh endpoint.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RegisterInput is the payload forwarded to the platform API on signup.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// AuthGateway is the remote auth surface of the platform API.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, input *RegisterInput) error
	VerifyEmail(ctx context.Context, email, otp string) (*AuthResult, error)
	ResendOtp(ctx context.Context, email string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}
