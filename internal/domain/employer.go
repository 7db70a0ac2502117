package domain

import "time"

// CompanyType distinguishes the employer personas during verification.
type CompanyType string

const (
	CompanyTypeIndividual CompanyType = "INDIVIDUAL"
	CompanyTypeSME        CompanyType = "SME"
	CompanyTypeCompany    CompanyType = "COMPANY"
)

// NormalizeCompanyType folds the platform API's aliases onto the canonical
// set. Unknown values pass through upper-cased like roles do.
func NormalizeCompanyType(raw string) CompanyType {
	switch CompanyType(upperTrim(raw)) {
	case CompanyTypeIndividual:
		return CompanyTypeIndividual
	case CompanyTypeSME, CompanyType("AGENCY"):
		return CompanyTypeSME
	case CompanyTypeCompany, CompanyType("ORGANIZATION"), CompanyType("ORGANISATION"):
		return CompanyTypeCompany
	default:
		return CompanyType(upperTrim(raw))
	}
}

// VerificationStatus is the lifecycle state of an employer verification.
type VerificationStatus string

const (
	VerificationNotStarted VerificationStatus = "NOT_STARTED"
	VerificationPending    VerificationStatus = "PENDING"
	VerificationApproved   VerificationStatus = "APPROVED"
	VerificationRejected   VerificationStatus = "REJECTED"
)

// NormalizeVerificationStatus collapses blank/unknown into NOT_STARTED.
func NormalizeVerificationStatus(raw string) VerificationStatus {
	switch s := VerificationStatus(upperTrim(raw)); s {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return s
	default:
		return VerificationNotStarted
	}
}

// EmployerVerification is the employer's verification record. A REJECTED
// verification must be resubmitted before the employer can proceed; PENDING
// is already submitted and does not re-block.
type EmployerVerification struct {
	ID             string             `json:"id"`
	Status         VerificationStatus `json:"status"`
	CompanyName    string             `json:"companyName"`
	CompanyAddress string             `json:"companyAddress"`
	State          string             `json:"state"`
	City           string             `json:"city"`
	CompanySize    string             `json:"companySize,omitempty"`
	Documents      []DocumentRef      `json:"documents,omitempty"`
	SubmittedAt    *time.Time         `json:"submittedAt,omitempty"`
	ReviewedAt     *time.Time         `json:"reviewedAt,omitempty"`
	Notes          string             `json:"notes,omitempty"`
}

// EmployerProfile is the employer's server-owned profile with its optional
// embedded verification.
type EmployerProfile struct {
	ID           string                `json:"id"`
	UserID       string                `json:"userId"`
	FirstName    string                `json:"firstName"`
	LastName     string                `json:"lastName"`
	CompanyName  string                `json:"companyName"`
	Type         CompanyType           `json:"type"`
	Verification *EmployerVerification `json:"verification,omitempty"`
	CreatedAt    time.Time             `json:"createdAt,omitempty"`
	UpdatedAt    time.Time             `json:"updatedAt,omitempty"`
}

// EmployerProfileUpdate carries the company-info wizard step.
type EmployerProfileUpdate struct {
	FirstName   string `json:"firstName,omitempty" validate:"omitempty,valid_name,no_emoji"`
	LastName    string `json:"lastName,omitempty" validate:"omitempty,valid_name,no_emoji"`
	CompanyName string `json:"companyName,omitempty" validate:"omitempty,min=2,max=150"`
	Type        string `json:"type,omitempty" validate:"omitempty,oneof=INDIVIDUAL SME COMPANY"`
}

// EmployerVerificationSubmission is the verification wizard step forwarded
// to the platform API. CompanySize is required unless the employer is an
// INDIVIDUAL; the platform re-validates either way.
type EmployerVerificationSubmission struct {
	CompanyName    string        `json:"companyName" validate:"required,min=2,max=150"`
	CompanyAddress string        `json:"companyAddress" validate:"required,max=200"`
	State          string        `json:"state" validate:"required,max=100"`
	City           string        `json:"city" validate:"required,max=100"`
	CompanySize    string        `json:"companySize,omitempty" validate:"omitempty,max=20"`
	Documents      []DocumentRef `json:"documents" validate:"required,min=1"`
}
