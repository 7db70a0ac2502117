package domain_test

import (
	"testing"

	"go-jobboard-gateway/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	cases := map[string]domain.Role{
		"JobSeeker":  domain.RoleJobSeeker,
		"JOB_SEEKER": domain.RoleJobSeeker,
		"jobseeker":  domain.RoleJobSeeker,
		"job-seeker": domain.RoleJobSeeker,
		"candidate":  domain.RoleJobSeeker,
		"Recruiter":  domain.RoleEmployer,
		"EMPLOYER":   domain.RoleEmployer,
		"employer":   domain.RoleEmployer,
		"Admin":      domain.RoleAdmin,
		"ADMIN":      domain.RoleAdmin,
		" admin ":    domain.RoleAdmin,
	}
	for raw, want := range cases {
		assert.Equal(t, want, domain.NormalizeRole(raw), "input %q", raw)
	}
}

func TestNormalizeRolePermissiveFallback(t *testing.T) {
	// Unrecognized strings pass through upper-cased rather than failing.
	assert.Equal(t, domain.Role("MODERATOR"), domain.NormalizeRole("moderator"))
	assert.False(t, domain.NormalizeRole("moderator").IsKnown())
	assert.True(t, domain.NormalizeRole("Recruiter").IsKnown())
}

func TestNormalizeApprovalStatus(t *testing.T) {
	assert.Equal(t, domain.ApprovalNotStarted, domain.NormalizeApprovalStatus(""))
	assert.Equal(t, domain.ApprovalNotStarted, domain.NormalizeApprovalStatus("SOMETHING_ELSE"))
	assert.Equal(t, domain.ApprovalPending, domain.NormalizeApprovalStatus("PENDING"))
	assert.Equal(t, domain.ApprovalRejected, domain.NormalizeApprovalStatus("REJECTED"))
}

func TestNormalizeCompanyType(t *testing.T) {
	assert.Equal(t, domain.CompanyTypeSME, domain.NormalizeCompanyType("AGENCY"))
	assert.Equal(t, domain.CompanyTypeCompany, domain.NormalizeCompanyType("organization"))
	assert.Equal(t, domain.CompanyTypeIndividual, domain.NormalizeCompanyType(" individual "))
	assert.Equal(t, domain.CompanyType("COOPERATIVE"), domain.NormalizeCompanyType("cooperative"))
}
