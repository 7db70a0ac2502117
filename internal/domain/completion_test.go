package domain_test

import (
	"testing"

	"go-jobboard-gateway/internal/domain"

	"github.com/stretchr/testify/assert"
)

func completeJobSeeker() *domain.JobSeekerProfile {
	return &domain.JobSeekerProfile{
		ApprovalStatus: domain.ApprovalApproved,
		FirstName:      "Ada",
		LastName:       "Eze",
		PhoneNumber:    "+2348000000000",
		JobTitle:       "Dev",
		Address:        "12 Rd",
		State:          "Lagos",
		City:           "Ikeja",
		Bio:            "Engineer",
		Skills:         []domain.Skill{{ID: "1", Name: "React"}},
		CvURL:          "http://x/cv.pdf",
	}
}

func completeVerification() *domain.EmployerVerification {
	return &domain.EmployerVerification{
		Status:         domain.VerificationPending,
		CompanyName:    "Acme",
		CompanyAddress: "1 St",
		State:          "Lagos",
		City:           "Lagos",
		CompanySize:    "11-30",
		Documents:      []domain.DocumentRef{{ID: "1"}},
	}
}

func TestNeedsJobSeekerCompletion(t *testing.T) {
	t.Run("NOT_STARTED forces onboarding regardless of other fields", func(t *testing.T) {
		p := completeJobSeeker()
		p.ApprovalStatus = domain.ApprovalNotStarted
		assert.True(t, domain.NeedsJobSeekerCompletion(p))

		// Bare record too
		assert.True(t, domain.NeedsJobSeekerCompletion(&domain.JobSeekerProfile{
			ApprovalStatus: domain.ApprovalNotStarted,
		}))
	})

	t.Run("blank status counts as NOT_STARTED", func(t *testing.T) {
		p := completeJobSeeker()
		p.ApprovalStatus = ""
		assert.True(t, domain.NeedsJobSeekerCompletion(p))
	})

	t.Run("nil profile is incomplete", func(t *testing.T) {
		assert.True(t, domain.NeedsJobSeekerCompletion(nil))
	})

	t.Run("fully populated approved profile is complete", func(t *testing.T) {
		assert.False(t, domain.NeedsJobSeekerCompletion(completeJobSeeker()))
	})

	t.Run("each required field forces incompletion when blank", func(t *testing.T) {
		mutations := map[string]func(*domain.JobSeekerProfile){
			"firstName":   func(p *domain.JobSeekerProfile) { p.FirstName = "" },
			"lastName":    func(p *domain.JobSeekerProfile) { p.LastName = "  " },
			"phoneNumber": func(p *domain.JobSeekerProfile) { p.PhoneNumber = "" },
			"jobTitle":    func(p *domain.JobSeekerProfile) { p.JobTitle = "" },
			"address":     func(p *domain.JobSeekerProfile) { p.Address = "" },
			"state":       func(p *domain.JobSeekerProfile) { p.State = "" },
			"city":        func(p *domain.JobSeekerProfile) { p.City = "" },
		}
		for name, mutate := range mutations {
			p := completeJobSeeker()
			mutate(p)
			assert.True(t, domain.NeedsJobSeekerCompletion(p), "blank %s should be incomplete", name)
		}
	})

	t.Run("brief or bio satisfies the summary requirement", func(t *testing.T) {
		p := completeJobSeeker()
		p.Bio = ""
		p.Brief = "Short summary"
		assert.False(t, domain.NeedsJobSeekerCompletion(p))

		p.Brief = ""
		assert.True(t, domain.NeedsJobSeekerCompletion(p))
	})

	t.Run("no skills means incomplete", func(t *testing.T) {
		p := completeJobSeeker()
		p.Skills = nil
		p.UserSkills = nil
		assert.True(t, domain.NeedsJobSeekerCompletion(p))
	})

	t.Run("userSkills alone satisfies the skill requirement", func(t *testing.T) {
		p := completeJobSeeker()
		p.Skills = nil
		p.UserSkills = []domain.UserSkill{{ID: "u1", Skill: domain.Skill{ID: "1", Name: "Go"}}}
		assert.False(t, domain.NeedsJobSeekerCompletion(p))
	})

	t.Run("cv document id alone satisfies the cv requirement", func(t *testing.T) {
		p := completeJobSeeker()
		p.CvURL = ""
		p.CvDocumentID = "doc-1"
		assert.False(t, domain.NeedsJobSeekerCompletion(p))

		p.CvDocumentID = ""
		assert.True(t, domain.NeedsJobSeekerCompletion(p))
	})

	t.Run("rejected approval does not force onboarding by itself", func(t *testing.T) {
		// Only NOT_STARTED is special-cased; REJECTED behaves like any
		// other submitted status.
		p := completeJobSeeker()
		p.ApprovalStatus = domain.ApprovalRejected
		assert.False(t, domain.NeedsJobSeekerCompletion(p))
	})

	t.Run("idempotent for the same input", func(t *testing.T) {
		p := completeJobSeeker()
		first := domain.NeedsJobSeekerCompletion(p)
		second := domain.NeedsJobSeekerCompletion(p)
		assert.Equal(t, first, second)
	})
}

func TestNeedsEmployerCompletion(t *testing.T) {
	company := &domain.EmployerProfile{Type: domain.CompanyTypeCompany, CompanyName: "Acme"}

	t.Run("missing verification means incomplete", func(t *testing.T) {
		assert.True(t, domain.NeedsEmployerCompletion(company, nil))
	})

	t.Run("NOT_STARTED and REJECTED force re-completion", func(t *testing.T) {
		for _, status := range []domain.VerificationStatus{
			domain.VerificationNotStarted,
			domain.VerificationRejected,
		} {
			v := completeVerification()
			v.Status = status
			assert.True(t, domain.NeedsEmployerCompletion(company, v), "status %s", status)
		}
	})

	t.Run("PENDING with all fields and a document is complete", func(t *testing.T) {
		assert.False(t, domain.NeedsEmployerCompletion(company, completeVerification()))
	})

	t.Run("APPROVED with all fields is complete", func(t *testing.T) {
		v := completeVerification()
		v.Status = domain.VerificationApproved
		assert.False(t, domain.NeedsEmployerCompletion(company, v))
	})

	t.Run("no documents means incomplete", func(t *testing.T) {
		v := completeVerification()
		v.Documents = nil
		assert.True(t, domain.NeedsEmployerCompletion(company, v))
	})

	t.Run("company size optional only for individuals", func(t *testing.T) {
		v := completeVerification()
		v.CompanySize = ""

		individual := &domain.EmployerProfile{Type: domain.CompanyTypeIndividual}
		assert.False(t, domain.NeedsEmployerCompletion(individual, v))

		assert.True(t, domain.NeedsEmployerCompletion(company, v))

		// Unknown type requires a size too
		assert.True(t, domain.NeedsEmployerCompletion(nil, v))
	})

	t.Run("profile company name backfills a blank verification name", func(t *testing.T) {
		v := completeVerification()
		v.CompanyName = ""
		assert.False(t, domain.NeedsEmployerCompletion(company, v))

		nameless := &domain.EmployerProfile{Type: domain.CompanyTypeCompany}
		assert.True(t, domain.NeedsEmployerCompletion(nameless, v))
	})

	t.Run("embedded verification is used when none is passed", func(t *testing.T) {
		p := &domain.EmployerProfile{
			Type:         domain.CompanyTypeCompany,
			CompanyName:  "Acme",
			Verification: completeVerification(),
		}
		assert.False(t, domain.NeedsEmployerCompletion(p, nil))
	})

	t.Run("rejected blocks even with every field present", func(t *testing.T) {
		v := completeVerification()
		v.Status = domain.VerificationRejected
		v.CompanySize = "100+"
		assert.True(t, domain.NeedsEmployerCompletion(company, v))
	})
}

func TestResolveRedirect(t *testing.T) {
	t.Run("incomplete job seeker goes to onboarding", func(t *testing.T) {
		snap := &domain.ProfileSnapshot{JobSeeker: &domain.JobSeekerProfile{
			ApprovalStatus: domain.ApprovalNotStarted,
		}}
		assert.Equal(t, domain.JobSeekerOnboardingPath, domain.ResolveRedirect(domain.RoleJobSeeker, snap))
	})

	t.Run("complete job seeker proceeds to dashboard", func(t *testing.T) {
		snap := &domain.ProfileSnapshot{JobSeeker: completeJobSeeker()}
		assert.Empty(t, domain.ResolveRedirect(domain.RoleJobSeeker, snap))
	})

	t.Run("fresh employer starts at the company info step", func(t *testing.T) {
		snap := &domain.ProfileSnapshot{Employer: &domain.EmployerProfile{}}
		assert.Equal(t, domain.EmployerCompanyInfoPath, domain.ResolveRedirect(domain.RoleEmployer, snap))
	})

	t.Run("named employer with no verification goes to verification", func(t *testing.T) {
		snap := &domain.ProfileSnapshot{Employer: &domain.EmployerProfile{
			CompanyName: "Acme",
			Type:        domain.CompanyTypeCompany,
		}}
		assert.Equal(t, domain.EmployerOnboardingPath, domain.ResolveRedirect(domain.RoleEmployer, snap))
	})

	t.Run("verified employer proceeds to dashboard", func(t *testing.T) {
		snap := &domain.ProfileSnapshot{
			Employer:     &domain.EmployerProfile{CompanyName: "Acme", Type: domain.CompanyTypeCompany},
			Verification: completeVerification(),
		}
		assert.Empty(t, domain.ResolveRedirect(domain.RoleEmployer, snap))
	})

	t.Run("admins never need onboarding", func(t *testing.T) {
		assert.Empty(t, domain.ResolveRedirect(domain.RoleAdmin, nil))
	})

	t.Run("nil snapshot is incomplete for job seekers", func(t *testing.T) {
		assert.Equal(t, domain.JobSeekerOnboardingPath, domain.ResolveRedirect(domain.RoleJobSeeker, nil))
	})
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, domain.JobSeekerDashboardPath, domain.DashboardPath(domain.RoleJobSeeker))
	assert.Equal(t, domain.EmployerDashboardPath, domain.DashboardPath(domain.RoleEmployer))
	assert.Equal(t, domain.AdminDashboardPath, domain.DashboardPath(domain.RoleAdmin))
	assert.Equal(t, domain.LandingPath, domain.DashboardPath(domain.Role("MODERATOR")))
}
