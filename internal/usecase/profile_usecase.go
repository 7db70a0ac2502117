package usecase

import (
	"context"

	"go-jobboard-gateway/internal/domain"
	"go-jobboard-gateway/pkg/apperror"
	"go-jobboard-gateway/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// ProfileUsecase forwards wizard steps to the platform API on behalf of the
// authenticated user and keeps completion semantics out of the handlers.
type ProfileUsecase interface {
	GetJobSeekerProfile(ctx context.Context) (*domain.JobSeekerProfile, error)
	UpdateJobSeekerProfile(ctx context.Context, upd *domain.JobSeekerProfileUpdate) (*domain.JobSeekerProfile, error)
	GetEmployerProfile(ctx context.Context) (*domain.EmployerProfile, error)
	UpdateEmployerProfile(ctx context.Context, upd *domain.EmployerProfileUpdate) (*domain.EmployerProfile, error)
	GetEmployerVerification(ctx context.Context) (*domain.EmployerVerification, error)
	SubmitEmployerVerification(ctx context.Context, sub *domain.EmployerVerificationSubmission) (*domain.EmployerVerification, error)
}

type profileUsecase struct {
	repo     domain.ProfileRepository
	validate *validator.Validate
}

func NewProfileUsecase(repo domain.ProfileRepository, validate *validator.Validate) ProfileUsecase {
	return &profileUsecase{repo: repo, validate: validate}
}

// accessToken pulls the caller's platform token out of the request context.
func accessToken(ctx context.Context) (string, error) {
	token, ok := ctx.Value(domain.KeyAccessToken).(string)
	if !ok || token == "" {
		return "", apperror.Unauthorized("User not authenticated")
	}
	return token, nil
}

func requireRole(ctx context.Context, want domain.Role) error {
	role, _ := ctx.Value(domain.KeyUserRole).(string)
	if domain.NormalizeRole(role) != want {
		return apperror.Forbidden("This resource belongs to another persona")
	}
	return nil
}

func (u *profileUsecase) GetJobSeekerProfile(ctx context.Context) (*domain.JobSeekerProfile, error) {
	if err := requireRole(ctx, domain.RoleJobSeeker); err != nil {
		return nil, err
	}
	token, err := accessToken(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := u.repo.GetJobSeekerProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("Job seeker profile not found")
	}
	return profile, nil
}

func (u *profileUsecase) UpdateJobSeekerProfile(ctx context.Context, upd *domain.JobSeekerProfileUpdate) (*domain.JobSeekerProfile, error) {
	if err := requireRole(ctx, domain.RoleJobSeeker); err != nil {
		return nil, err
	}
	token, err := accessToken(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.validate.Struct(upd); err != nil {
		msgs := validation.FormatValidationErrors(err)
		if len(msgs) > 0 {
			return nil, apperror.BadRequest(msgs[0])
		}
		return nil, apperror.BadRequest(err.Error())
	}
	return u.repo.UpdateJobSeekerProfile(ctx, token, upd)
}

func (u *profileUsecase) GetEmployerProfile(ctx context.Context) (*domain.EmployerProfile, error) {
	if err := requireRole(ctx, domain.RoleEmployer); err != nil {
		return nil, err
	}
	token, err := accessToken(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := u.repo.GetEmployerProfile(ctx, token)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("Employer profile not found")
	}
	return profile, nil
}

func (u *profileUsecase) UpdateEmployerProfile(ctx context.Context, upd *domain.EmployerProfileUpdate) (*domain.EmployerProfile, error) {
	if err := requireRole(ctx, domain.RoleEmployer); err != nil {
		return nil, err
	}
	token, err := accessToken(ctx)
	if err != nil {
		return nil, err
	}
	if upd.Type != "" {
		upd.Type = string(domain.NormalizeCompanyType(upd.Type))
	}
	if err := u.validate.Struct(upd); err != nil {
		msgs := validation.FormatValidationErrors(err)
		if len(msgs) > 0 {
			return nil, apperror.BadRequest(msgs[0])
		}
		return nil, apperror.BadRequest(err.Error())
	}
	return u.repo.UpdateEmployerProfile(ctx, token, upd)
}

func (u *profileUsecase) GetEmployerVerification(ctx context.Context) (*domain.EmployerVerification, error) {
	if err := requireRole(ctx, domain.RoleEmployer); err != nil {
		return nil, err
	}
	token, err := accessToken(ctx)
	if err != nil {
		return nil, err
	}
	// A null verification from the platform is a valid "never started" state,
	// not an error.
	return u.repo.GetEmployerVerification(ctx, token)
}

func (u *profileUsecase) SubmitEmployerVerification(ctx context.Context, sub *domain.EmployerVerificationSubmission) (*domain.EmployerVerification, error) {
	if err := requireRole(ctx, domain.RoleEmployer); err != nil {
		return nil, err
	}
	token, err := accessToken(ctx)
	if err != nil {
		return nil, err
	}
	if err := u.validate.Struct(sub); err != nil {
		msgs := validation.FormatValidationErrors(err)
		if len(msgs) > 0 {
			return nil, apperror.BadRequest(msgs[0])
		}
		return nil, apperror.BadRequest(err.Error())
	}

	// CompanySize is only optional for individual employers. The profile is
	// the source of truth for the type.
	profile, err := u.repo.GetEmployerProfile(ctx, token)
	if err == nil && profile != nil {
		if domain.NormalizeCompanyType(string(profile.Type)) != domain.CompanyTypeIndividual && sub.CompanySize == "" {
			return nil, apperror.BadRequest("Company size is required for this company type")
		}
	}

	return u.repo.SubmitEmployerVerification(ctx, token, sub)
}
