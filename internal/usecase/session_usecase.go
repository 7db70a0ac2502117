package usecase

import (
	"context"
	"time"

	"go-jobboard-gateway/internal/domain"
	"go-jobboard-gateway/pkg/apperror"
	"go-jobboard-gateway/pkg/logger"

	"github.com/google/uuid"
)

type sessionUsecase struct {
	store       domain.SessionStore
	profileRepo domain.ProfileRepository
	authGateway domain.AuthGateway
}

func NewSessionUsecase(store domain.SessionStore, profileRepo domain.ProfileRepository, authGateway domain.AuthGateway) domain.SessionUsecase {
	return &sessionUsecase{
		store:       store,
		profileRepo: profileRepo,
		authGateway: authGateway,
	}
}

func (u *sessionUsecase) Login(ctx context.Context, result *domain.AuthResult) (*domain.LoginOutcome, error) {
	if result == nil || result.AccessToken == "" {
		return nil, apperror.Unauthorized("Missing credentials from auth result")
	}

	role := domain.NormalizeRole(string(result.User.Role))
	if !role.IsKnown() {
		logger.Log.Warn("Unrecognized role from platform API, passing through",
			"role", string(result.User.Role))
	}
	result.User.Role = role

	session := &domain.Session{
		ID:           uuid.NewString(),
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Role:         role,
		User:         result.User,
		CreatedAt:    time.Now().UTC(),
	}

	// Token persistence must complete before the profile fetch starts.
	if err := u.store.Save(ctx, session); err != nil {
		return nil, apperror.Internal(err)
	}

	outcome := &domain.LoginOutcome{
		SessionID: session.ID,
		User:      session.User,
		Dashboard: domain.DashboardPath(role),
	}

	snapshot, err := u.fetchSnapshot(ctx, session)
	if err != nil {
		// Never proceed to a dashboard on a failed fetch: the user lands on
		// onboarding until the profile can actually be read.
		logger.Log.Error("Profile fetch failed after login, assuming incomplete",
			"user_id", session.User.ID, "role", string(role), "error", err)
		outcome.Redirect = domain.OnboardingPath(role)
		return outcome, nil
	}

	session.Profile = snapshot
	if err := u.store.Save(ctx, session); err != nil {
		logger.Log.Warn("Failed to cache profile snapshot", "error", err)
	}

	outcome.Redirect = domain.ResolveRedirect(role, snapshot)
	return outcome, nil
}

func (u *sessionUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to clear; logout is idempotent
	}
	if err := u.store.Delete(ctx, sessionID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *sessionUsecase) Current(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sessionID == "" {
		return nil, apperror.Unauthorized("No active session")
	}
	session, err := u.store.Get(ctx, sessionID)
	if err != nil {
		if err == domain.ErrSessionNotFound {
			return nil, apperror.Unauthorized("Session expired or not found")
		}
		return nil, apperror.Internal(err)
	}
	return session, nil
}

func (u *sessionUsecase) RefreshProfile(ctx context.Context, sessionID string) (*domain.ProfileSnapshot, string, error) {
	session, err := u.Current(ctx, sessionID)
	if err != nil {
		return nil, "", err
	}

	snapshot, err := u.fetchSnapshot(ctx, session)
	if err != nil {
		// A background refresh never navigates on its own; the hard
		// gate lives in CheckProfileCompletion.
		logger.Log.Warn("Profile refresh failed", "user_id", session.User.ID, "error", err)
		return nil, "", apperror.Upstream("Could not refresh profile", err)
	}

	session.Profile = snapshot
	if err := u.store.Save(ctx, session); err != nil {
		logger.Log.Warn("Failed to cache refreshed snapshot", "error", err)
	}

	// Only the unambiguous NOT_STARTED case redirects here. Re-running the
	// full resolution on every refresh would bounce users who are mid-edit
	// on their own profile page.
	return snapshot, softRedirect(session.Role, snapshot), nil
}

func (u *sessionUsecase) CheckProfileCompletion(ctx context.Context, sessionID string) (string, error) {
	session, err := u.Current(ctx, sessionID)
	if err != nil {
		return "", err
	}

	if session.Role == domain.RoleAdmin {
		return "", nil
	}

	snapshot, err := u.fetchSnapshot(ctx, session)
	if err != nil {
		logger.Log.Warn("Completion check fetch failed, assuming incomplete",
			"user_id", session.User.ID, "error", err)
		return domain.OnboardingPath(session.Role), nil
	}

	session.Profile = snapshot
	if err := u.store.Save(ctx, session); err != nil {
		logger.Log.Warn("Failed to cache snapshot on completion check", "error", err)
	}

	return domain.ResolveRedirect(session.Role, snapshot), nil
}

func (u *sessionUsecase) RefreshTokens(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := u.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.RefreshToken == "" {
		return nil, apperror.Unauthorized("Session has no refresh token")
	}

	pair, err := u.authGateway.RefreshToken(ctx, session.RefreshToken)
	if err != nil {
		return nil, apperror.Unauthorized("Token refresh rejected")
	}

	// The triplet is replaced as a whole; a reader sees either the old
	// record or the new one, never a mix.
	session.AccessToken = pair.AccessToken
	if pair.RefreshToken != "" {
		session.RefreshToken = pair.RefreshToken
	}
	if err := u.store.Save(ctx, session); err != nil {
		return nil, apperror.Internal(err)
	}
	return session, nil
}

// fetchSnapshot loads the role-specific profile from the platform API.
func (u *sessionUsecase) fetchSnapshot(ctx context.Context, session *domain.Session) (*domain.ProfileSnapshot, error) {
	switch session.Role {
	case domain.RoleJobSeeker:
		profile, err := u.profileRepo.GetJobSeekerProfile(ctx, session.AccessToken)
		if err != nil {
			return nil, err
		}
		return &domain.ProfileSnapshot{JobSeeker: profile}, nil
	case domain.RoleEmployer:
		profile, err := u.profileRepo.GetEmployerProfile(ctx, session.AccessToken)
		if err != nil {
			return nil, err
		}
		verification, err := u.profileRepo.GetEmployerVerification(ctx, session.AccessToken)
		if err != nil {
			return nil, err
		}
		return &domain.ProfileSnapshot{Employer: profile, Verification: verification}, nil
	default:
		// Admins and pass-through roles have no onboarding profile.
		return &domain.ProfileSnapshot{}, nil
	}
}

// softRedirect acts only on the literal NOT_STARTED case.
func softRedirect(role domain.Role, snapshot *domain.ProfileSnapshot) string {
	if snapshot == nil {
		return ""
	}
	switch role {
	case domain.RoleJobSeeker:
		if snapshot.JobSeeker != nil &&
			domain.NormalizeApprovalStatus(string(snapshot.JobSeeker.ApprovalStatus)) == domain.ApprovalNotStarted {
			return domain.JobSeekerOnboardingPath
		}
	case domain.RoleEmployer:
		v := snapshot.Verification
		if v == nil && snapshot.Employer != nil {
			v = snapshot.Employer.Verification
		}
		if v == nil || domain.NormalizeVerificationStatus(string(v.Status)) == domain.VerificationNotStarted {
			return domain.EmployerOnboardingPath
		}
	}
	return ""
}
