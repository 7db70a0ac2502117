package remote

import (
	"context"
	"errors"
	"net/http"

	"go-jobboard-gateway/internal/domain"
	"go-jobboard-gateway/pkg/apperror"
)

// profileRepository implements domain.ProfileRepository against the platform
// API. Status enums are normalized at this boundary so the rest of the
// gateway only ever sees canonical values.
type profileRepository struct {
	client *Client
}

func NewProfileRepository(client *Client) domain.ProfileRepository {
	return &profileRepository{client: client}
}

func (r *profileRepository) GetJobSeekerProfile(ctx context.Context, accessToken string) (*domain.JobSeekerProfile, error) {
	var profile domain.JobSeekerProfile
	if err := r.client.do(ctx, http.MethodGet, "/job-seekers/me", accessToken, nil, &profile); err != nil {
		return nil, err
	}
	profile.ApprovalStatus = domain.NormalizeApprovalStatus(string(profile.ApprovalStatus))
	return &profile, nil
}

func (r *profileRepository) UpdateJobSeekerProfile(ctx context.Context, accessToken string, upd *domain.JobSeekerProfileUpdate) (*domain.JobSeekerProfile, error) {
	var profile domain.JobSeekerProfile
	if err := r.client.do(ctx, http.MethodPatch, "/job-seekers/me", accessToken, upd, &profile); err != nil {
		return nil, err
	}
	profile.ApprovalStatus = domain.NormalizeApprovalStatus(string(profile.ApprovalStatus))
	return &profile, nil
}

func (r *profileRepository) GetEmployerProfile(ctx context.Context, accessToken string) (*domain.EmployerProfile, error) {
	var profile domain.EmployerProfile
	if err := r.client.do(ctx, http.MethodGet, "/employers/me", accessToken, nil, &profile); err != nil {
		return nil, err
	}
	normalizeEmployer(&profile)
	return &profile, nil
}

func (r *profileRepository) UpdateEmployerProfile(ctx context.Context, accessToken string, upd *domain.EmployerProfileUpdate) (*domain.EmployerProfile, error) {
	var profile domain.EmployerProfile
	if err := r.client.do(ctx, http.MethodPatch, "/employers/me", accessToken, upd, &profile); err != nil {
		return nil, err
	}
	normalizeEmployer(&profile)
	return &profile, nil
}

func (r *profileRepository) GetEmployerVerification(ctx context.Context, accessToken string) (*domain.EmployerVerification, error) {
	var verification domain.EmployerVerification
	err := r.client.do(ctx, http.MethodGet, "/employers/me/verification", accessToken, nil, &verification)
	if err != nil {
		// The platform reports a never-submitted verification as 404. That is
		// the NOT_STARTED state, not a failure.
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	if verification.ID == "" && verification.Status == "" {
		return nil, nil
	}
	verification.Status = domain.NormalizeVerificationStatus(string(verification.Status))
	return &verification, nil
}

func (r *profileRepository) SubmitEmployerVerification(ctx context.Context, accessToken string, sub *domain.EmployerVerificationSubmission) (*domain.EmployerVerification, error) {
	var verification domain.EmployerVerification
	if err := r.client.do(ctx, http.MethodPost, "/employers/me/verification", accessToken, sub, &verification); err != nil {
		return nil, err
	}
	verification.Status = domain.NormalizeVerificationStatus(string(verification.Status))
	return &verification, nil
}

func normalizeEmployer(p *domain.EmployerProfile) {
	if p.Type != "" {
		p.Type = domain.NormalizeCompanyType(string(p.Type))
	}
	if p.Verification != nil {
		p.Verification.Status = domain.NormalizeVerificationStatus(string(p.Verification.Status))
	}
}

func isNotFound(err error) bool {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Code == http.StatusNotFound
	}
	return false
}
