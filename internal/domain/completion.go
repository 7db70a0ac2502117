package domain

import "strings"

// Onboarding and dashboard routes. Opaque redirect targets owned by the
// frontend; the gateway only hands them back.
const (
	JobSeekerOnboardingPath = "/onboarding/job-seeker"
	EmployerOnboardingPath  = "/onboarding/employer/verification"
	EmployerCompanyInfoPath = "/onboarding/employer/company"
	JobSeekerDashboardPath  = "/dashboard/job-seeker"
	EmployerDashboardPath   = "/dashboard/employer"
	AdminDashboardPath      = "/admin"
	LandingPath             = "/"
)

// blank treats missing, null-decoded and whitespace-only strings alike.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func upperTrim(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NeedsJobSeekerCompletion reports whether a job seeker must be routed to
// onboarding. A NOT_STARTED approval status forces onboarding regardless of
// the other fields. Otherwise the profile counts as complete only when every
// required field is non-blank, at least one skill is attached and a CV
// reference exists. Pure and idempotent; a nil profile is incomplete.
func NeedsJobSeekerCompletion(p *JobSeekerProfile) bool {
	if p == nil {
		return true
	}
	if NormalizeApprovalStatus(string(p.ApprovalStatus)) == ApprovalNotStarted {
		return true
	}
	for _, field := range []string{
		p.FirstName,
		p.LastName,
		p.PhoneNumber,
		p.JobTitle,
		p.Address,
		p.State,
		p.City,
	} {
		if blank(field) {
			return true
		}
	}
	if blank(p.Brief) && blank(p.Bio) {
		return true
	}
	if len(p.UserSkills) == 0 && len(p.Skills) == 0 {
		return true
	}
	if blank(p.CvDocumentID) && blank(p.CvURL) {
		return true
	}
	return false
}

// NeedsEmployerCompletion reports whether an employer must be routed to
// onboarding. A missing verification, or one in NOT_STARTED or REJECTED,
// forces onboarding: a rejected verification must be resubmitted, unlike
// PENDING which is already submitted and awaiting review. CompanySize is
// required for every company type except INDIVIDUAL.
func NeedsEmployerCompletion(p *EmployerProfile, v *EmployerVerification) bool {
	if v == nil && p != nil {
		v = p.Verification
	}
	if v == nil {
		return true
	}
	switch NormalizeVerificationStatus(string(v.Status)) {
	case VerificationNotStarted, VerificationRejected:
		return true
	}
	companyName := v.CompanyName
	if blank(companyName) && p != nil {
		companyName = p.CompanyName
	}
	if blank(companyName) {
		return true
	}
	if blank(v.CompanyAddress) || blank(v.State) || blank(v.City) {
		return true
	}
	individual := p != nil && NormalizeCompanyType(string(p.Type)) == CompanyTypeIndividual
	if !individual && blank(v.CompanySize) {
		return true
	}
	if len(v.Documents) == 0 {
		return true
	}
	return false
}

// ResolveRedirect dispatches to the evaluator for the given role and returns
// the onboarding path the user must visit, or "" when the user may proceed
// to their dashboard. Side-effect free; the caller performs the navigation.
// Admins and unrecognized roles never need onboarding here.
func ResolveRedirect(role Role, snapshot *ProfileSnapshot) string {
	if snapshot == nil {
		snapshot = &ProfileSnapshot{}
	}
	switch role {
	case RoleJobSeeker:
		if NeedsJobSeekerCompletion(snapshot.JobSeeker) {
			return JobSeekerOnboardingPath
		}
	case RoleEmployer:
		if NeedsEmployerCompletion(snapshot.Employer, snapshot.Verification) {
			return employerOnboardingStep(snapshot.Employer, snapshot.Verification)
		}
	}
	return ""
}

// employerOnboardingStep picks the wizard step for an incomplete employer:
// the company-info step while the profile itself has no company identity and
// nothing was ever submitted, the verification step otherwise.
func employerOnboardingStep(p *EmployerProfile, v *EmployerVerification) string {
	if v == nil && p != nil {
		v = p.Verification
	}
	if v == nil && (p == nil || blank(p.CompanyName)) {
		return EmployerCompanyInfoPath
	}
	return EmployerOnboardingPath
}

// OnboardingPath returns the role's onboarding entry point. Used as the
// defensive destination when a profile fetch fails: on any ambiguity the
// user lands on onboarding, never on a dashboard.
func OnboardingPath(role Role) string {
	switch role {
	case RoleJobSeeker:
		return JobSeekerOnboardingPath
	case RoleEmployer:
		return EmployerOnboardingPath
	default:
		// Unknown personas have no onboarding; the landing page is the
		// only safe destination.
		return LandingPath
	}
}

// DashboardPath returns the role's dashboard route.
func DashboardPath(role Role) string {
	switch role {
	case RoleJobSeeker:
		return JobSeekerDashboardPath
	case RoleEmployer:
		return EmployerDashboardPath
	case RoleAdmin:
		return AdminDashboardPath
	default:
		return LandingPath
	}
}
