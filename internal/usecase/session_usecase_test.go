package usecase_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"go-jobboard-gateway/internal/domain"
	"go-jobboard-gateway/internal/usecase"
	"go-jobboard-gateway/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Mock Repositories
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(ctx context.Context, session *domain.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetJobSeekerProfile(ctx context.Context, token string) (*domain.JobSeekerProfile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSeekerProfile), args.Error(1)
}

func (m *MockProfileRepo) UpdateJobSeekerProfile(ctx context.Context, token string, upd *domain.JobSeekerProfileUpdate) (*domain.JobSeekerProfile, error) {
	args := m.Called(ctx, token, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSeekerProfile), args.Error(1)
}

func (m *MockProfileRepo) GetEmployerProfile(ctx context.Context, token string) (*domain.EmployerProfile, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerProfile), args.Error(1)
}

func (m *MockProfileRepo) UpdateEmployerProfile(ctx context.Context, token string, upd *domain.EmployerProfileUpdate) (*domain.EmployerProfile, error) {
	args := m.Called(ctx, token, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerProfile), args.Error(1)
}

func (m *MockProfileRepo) GetEmployerVerification(ctx context.Context, token string) (*domain.EmployerVerification, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerVerification), args.Error(1)
}

func (m *MockProfileRepo) SubmitEmployerVerification(ctx context.Context, token string, sub *domain.EmployerVerificationSubmission) (*domain.EmployerVerification, error) {
	args := m.Called(ctx, token, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerVerification), args.Error(1)
}

type MockAuthGateway struct {
	mock.Mock
}

func (m *MockAuthGateway) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockAuthGateway) Register(ctx context.Context, input *domain.RegisterInput) error {
	return m.Called(ctx, input).Error(0)
}

func (m *MockAuthGateway) VerifyEmail(ctx context.Context, email, otp string) (*domain.AuthResult, error) {
	args := m.Called(ctx, email, otp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockAuthGateway) ResendOtp(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthGateway) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAuthGateway) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	return m.Called(ctx, email, otp, newPassword).Error(0)
}

func (m *MockAuthGateway) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenPair), args.Error(1)
}

func seekerAuthResult() *domain.AuthResult {
	return &domain.AuthResult{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User: domain.User{
			ID:    "user-1",
			Email: "ada@example.com",
			Role:  domain.RoleJobSeeker,
		},
	}
}

func approvedSeekerProfile() *domain.JobSeekerProfile {
	return &domain.JobSeekerProfile{
		ID:             "profile-1",
		UserID:         "user-1",
		ApprovalStatus: domain.ApprovalApproved,
		FirstName:      "Ada",
		LastName:       "Eze",
		PhoneNumber:    "+2348000000000",
		JobTitle:       "Frontend Engineer",
		Address:        "12 Allen Avenue",
		State:          "Lagos",
		City:           "Ikeja",
		Brief:          "Frontend engineer",
		CvURL:          "https://files.example.com/cv.pdf",
		Skills:         []domain.Skill{{ID: "s1", Name: "React"}},
	}
}

func TestSessionLogin(t *testing.T) {
	t.Run("Should persist tokens before fetching the profile", func(t *testing.T) {
		store := new(MockSessionStore)
		repo := new(MockProfileRepo)
		uc := usecase.NewSessionUsecase(store, repo, new(MockAuthGateway))

		var savedBeforeFetch bool
		store.On("Save", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil).Run(func(args mock.Arguments) {
			s := args.Get(1).(*domain.Session)
			assert.Equal(t, "access-1", s.AccessToken)
			assert.Equal(t, "refresh-1", s.RefreshToken)
			savedBeforeFetch = true
		})
		repo.On("GetJobSeekerProfile", mock.Anything, "access-1").Return(approvedSeekerProfile(), nil).Run(func(mock.Arguments) {
			assert.True(t, savedBeforeFetch, "profile fetch must not start before the session is stored")
		})

		outcome, err := uc.Login(context.Background(), seekerAuthResult())
		assert.NoError(t, err)
		assert.NotEmpty(t, outcome.SessionID)
		assert.Empty(t, outcome.Redirect)
		assert.Equal(t, domain.JobSeekerDashboardPath, outcome.Dashboard)
	})

	t.Run("Should redirect to onboarding when the profile fetch fails", func(t *testing.T) {
		store := new(MockSessionStore)
		repo := new(MockProfileRepo)
		uc := usecase.NewSessionUsecase(store, repo, new(MockAuthGateway))

		store.On("Save", mock.Anything, mock.Anything).Return(nil)
		repo.On("GetJobSeekerProfile", mock.Anything, "access-1").Return(nil, errors.New("platform down"))

		outcome, err := uc.Login(context.Background(), seekerAuthResult())
		assert.NoError(t, err)
		assert.Equal(t, domain.JobSeekerOnboardingPath, outcome.Redirect)
	})

	t.Run("Should redirect an incomplete job seeker to onboarding", func(t *testing.T) {
		store := new(MockSessionStore)
		repo := new(MockProfileRepo)
		uc := usecase.NewSessionUsecase(store, repo, new(MockAuthGateway))

		profile := approvedSeekerProfile()
		profile.PhoneNumber = "   "

		store.On("Save", mock.Anything, mock.Anything).Return(nil)
		repo.On("GetJobSeekerProfile", mock.Anything, "access-1").Return(profile, nil)

		outcome, err := uc.Login(context.Background(), seekerAuthResult())
		assert.NoError(t, err)
		assert.Equal(t, domain.JobSeekerOnboardingPath, outcome.Redirect)
	})

	t.Run("Should normalize non-canonical roles", func(t *testing.T) {
		store := new(MockSessionStore)
		repo := new(MockProfileRepo)
		uc := usecase.NewSessionUsecase(store, repo, new(MockAuthGateway))

		result := seekerAuthResult()
		result.User.Role = domain.Role("job_seeker")

		store.On("Save", mock.Anything, mock.Anything).Return(nil)
		repo.On("GetJobSeekerProfile", mock.Anything, "access-1").Return(approvedSeekerProfile(), nil)

		outcome, err := uc.Login(context.Background(), result)
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleJobSeeker, outcome.User.Role)
	})

	t.Run("Should reject an auth result without an access token", func(t *testing.T) {
		uc := usecase.NewSessionUsecase(new(MockSessionStore), new(MockProfileRepo), new(MockAuthGateway))
		_, err := uc.Login(context.Background(), &domain.AuthResult{})
		assert.Error(t, err)
	})
}

func TestSessionLoginEmployer(t *testing.T) {
	employerResult := func() *domain.AuthResult {
		r := seekerAuthResult()
		r.User.Role = domain.RoleEmployer
		return r
	}

	t.Run("Should send an employer without company info to the company step", func(t *testing.T) {
		store := new(MockSessionStore)
		repo := new(MockProfileRepo)
		uc := usecase.NewSessionUsecase(store, repo, new(MockAuthGateway))

		store.On("Save", mock.Anything, mock.Anything).Return(nil)
		repo.On("GetEmployerProfile", mock.Anything, "access-1").Return(&domain.EmployerProfile{ID: "e1"}, nil)
		repo.On("GetEmployerVerification", mock.Anything, "access-1").Return(nil, nil)

		outcome, err := uc.Login(context.Background(), employerResult())
		assert.NoError(t, err)
		assert.Equal(t, domain.EmployerCompanyInfoPath, outcome.Redirect)
	})

	t.Run("Should let a pending employer through", func(t *testing.T) {
		store := new(MockSessionStore)
		repo := new(MockProfileRepo)
		uc := usecase.NewSessionUsecase(store, repo, new(MockAuthGateway))

		store.On("Save", mock.Anything, mock.Anything).Return(nil)
		repo.On("GetEmployerProfile", mock.Anything, "access-1").Return(&domain.EmployerProfile{ID: "e1", CompanyName: "Acme"}, nil)
		repo.On("GetEmployerVerification", mock.Anything, "access-1").Return(&domain.EmployerVerification{
			Status:         domain.VerificationPending,
			CompanyName:    "Acme",
			CompanyAddress: "1 Road",
			State:          "Lagos",
			City:           "Ikeja",
			CompanySize:    "11-30",
			Documents:      []domain.DocumentRef{{ID: "d1"}},
		}, nil)

		outcome, err := uc.Login(context.Background(), employerResult())
		assert.NoError(t, err)
		assert.Empty(t, outcome.Redirect)
	})
}

func TestSessionLogout(t *testing.T) {
	t.Run("Should be a no-op for an empty session id", func(t *testing.T) {
		store := new(MockSessionStore)
		uc := usecase.NewSessionUsecase(store, new(MockProfileRepo), new(MockAuthGateway))

		assert.NoError(t, uc.Logout(context.Background(), ""))
		store.AssertNotCalled(t, "Delete")
	})

	t.Run("Should delete the stored session", func(t *testing.T) {
		store := new(MockSessionStore)
		uc := usecase.NewSessionUsecase(store, new(MockProfileRepo), new(MockAuthGateway))

		store.On("Delete", mock.Anything, "sess-1").Return(nil)
		assert.NoError(t, uc.Logout(context.Background(), "sess-1"))
		store.AssertExpectations(t)
	})
}

func TestCheckProfileCompletion(t *testing.T) {
	storedSession := func(role domain.Role) *domain.Session {
		return &domain.Session{
			ID:          "sess-1",
			AccessToken: "access-1",
			Role:        role,
			User:        domain.User{ID: "user-1", Role: role},
		}
	}

	t.Run("Should fail closed when the fetch errors", func(t *testing.T) {
		store := new(MockSessionStore)
		repo := new(MockProfileRepo)
		uc := usecase.NewSessionUsecase(store, repo, new(MockAuthGateway))

		store.On("Get", mock.Anything, "sess-1").Return(storedSession(domain.RoleJobSeeker), nil)
		repo.On("GetJobSeekerProfile", mock.Anything, "access-1").Return(nil, errors.New("timeout"))

		redirect, err := uc.CheckProfileCompletion(context.Background(), "sess-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.JobSeekerOnboardingPath, redirect)
	})

	t.Run("Should never redirect admins", func(t *testing.T) {
		store := new(MockSessionStore)
		repo := new(MockProfileRepo)
		uc := usecase.NewSessionUsecase(store, repo, new(MockAuthGateway))

		store.On("Get", mock.Anything, "sess-1").Return(storedSession(domain.RoleAdmin), nil)

		redirect, err := uc.CheckProfileCompletion(context.Background(), "sess-1")
		assert.NoError(t, err)
		assert.Empty(t, redirect)
		repo.AssertNotCalled(t, "GetJobSeekerProfile")
	})

	t.Run("Should reject a missing session", func(t *testing.T) {
		store := new(MockSessionStore)
		uc := usecase.NewSessionUsecase(store, new(MockProfileRepo), new(MockAuthGateway))

		store.On("Get", mock.Anything, "gone").Return(nil, domain.ErrSessionNotFound)

		_, err := uc.CheckProfileCompletion(context.Background(), "gone")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Session expired")
	})
}

func TestRefreshProfile(t *testing.T) {
	storedSession := func() *domain.Session {
		return &domain.Session{
			ID:          "sess-1",
			AccessToken: "access-1",
			Role:        domain.RoleJobSeeker,
			User:        domain.User{ID: "user-1", Role: domain.RoleJobSeeker},
		}
	}

	t.Run("Should only redirect on NOT_STARTED", func(t *testing.T) {
		store := new(MockSessionStore)
		repo := new(MockProfileRepo)
		uc := usecase.NewSessionUsecase(store, repo, new(MockAuthGateway))

		profile := approvedSeekerProfile()
		profile.PhoneNumber = "" // incomplete but already started

		store.On("Get", mock.Anything, "sess-1").Return(storedSession(), nil)
		store.On("Save", mock.Anything, mock.Anything).Return(nil)
		repo.On("GetJobSeekerProfile", mock.Anything, "access-1").Return(profile, nil)

		snapshot, redirect, err := uc.RefreshProfile(context.Background(), "sess-1")
		assert.NoError(t, err)
		assert.NotNil(t, snapshot.JobSeeker)
		assert.Empty(t, redirect)
	})

	t.Run("Should redirect a NOT_STARTED profile", func(t *testing.T) {
		store := new(MockSessionStore)
		repo := new(MockProfileRepo)
		uc := usecase.NewSessionUsecase(store, repo, new(MockAuthGateway))

		profile := approvedSeekerProfile()
		profile.ApprovalStatus = domain.ApprovalNotStarted

		store.On("Get", mock.Anything, "sess-1").Return(storedSession(), nil)
		store.On("Save", mock.Anything, mock.Anything).Return(nil)
		repo.On("GetJobSeekerProfile", mock.Anything, "access-1").Return(profile, nil)

		_, redirect, err := uc.RefreshProfile(context.Background(), "sess-1")
		assert.NoError(t, err)
		assert.Equal(t, domain.JobSeekerOnboardingPath, redirect)
	})

	t.Run("Should surface upstream failures without navigating", func(t *testing.T) {
		store := new(MockSessionStore)
		repo := new(MockProfileRepo)
		uc := usecase.NewSessionUsecase(store, repo, new(MockAuthGateway))

		store.On("Get", mock.Anything, "sess-1").Return(storedSession(), nil)
		repo.On("GetJobSeekerProfile", mock.Anything, "access-1").Return(nil, errors.New("503"))

		_, redirect, err := uc.RefreshProfile(context.Background(), "sess-1")
		assert.Error(t, err)
		assert.Empty(t, redirect)
	})
}

func TestRefreshTokens(t *testing.T) {
	t.Run("Should replace the token pair as a unit", func(t *testing.T) {
		store := new(MockSessionStore)
		gw := new(MockAuthGateway)
		uc := usecase.NewSessionUsecase(store, new(MockProfileRepo), gw)

		store.On("Get", mock.Anything, "sess-1").Return(&domain.Session{
			ID:           "sess-1",
			AccessToken:  "old-access",
			RefreshToken: "old-refresh",
			Role:         domain.RoleJobSeeker,
		}, nil)
		gw.On("RefreshToken", mock.Anything, "old-refresh").Return(&domain.TokenPair{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
		}, nil)
		store.On("Save", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil).Run(func(args mock.Arguments) {
			s := args.Get(1).(*domain.Session)
			assert.Equal(t, "new-access", s.AccessToken)
			assert.Equal(t, "new-refresh", s.RefreshToken)
		})

		session, err := uc.RefreshTokens(context.Background(), "sess-1")
		assert.NoError(t, err)
		assert.Equal(t, "new-access", session.AccessToken)
	})

	t.Run("Should fail when the platform rejects the refresh", func(t *testing.T) {
		store := new(MockSessionStore)
		gw := new(MockAuthGateway)
		uc := usecase.NewSessionUsecase(store, new(MockProfileRepo), gw)

		store.On("Get", mock.Anything, "sess-1").Return(&domain.Session{
			ID:           "sess-1",
			RefreshToken: "old-refresh",
		}, nil)
		gw.On("RefreshToken", mock.Anything, "old-refresh").Return(nil, errors.New("invalid_grant"))

		_, err := uc.RefreshTokens(context.Background(), "sess-1")
		assert.Error(t, err)
		store.AssertNotCalled(t, "Save")
	})
}
