package domain

import (
	"context"
	"time"
)

// ApprovalStatus is the server-assigned lifecycle state of a job seeker profile.
type ApprovalStatus string

const (
	ApprovalNotStarted ApprovalStatus = "NOT_STARTED"
	ApprovalPending    ApprovalStatus = "PENDING"
	ApprovalApproved   ApprovalStatus = "APPROVED"
	ApprovalRejected   ApprovalStatus = "REJECTED"
)

// NormalizeApprovalStatus collapses missing/blank status into NOT_STARTED so
// the evaluator never special-cases absent fields.
func NormalizeApprovalStatus(raw string) ApprovalStatus {
	switch s := ApprovalStatus(upperTrim(raw)); s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return s
	default:
		return ApprovalNotStarted
	}
}

// DocumentRef points at a document stored by the platform's storage service.
type DocumentRef struct {
	ID   string `json:"id"`
	URL  string `json:"url,omitempty"`
	Name string `json:"name,omitempty"`
}

// UserSkill is the join between a profile and a skill, carrying proficiency
// and years of experience.
type UserSkill struct {
	ID                string `json:"id"`
	Skill             Skill  `json:"skill"`
	Proficiency       string `json:"proficiency,omitempty"`
	YearsOfExperience int    `json:"yearsOfExperience,omitempty"`
}

// JobSeekerProfile is the job seeker's server-owned profile. Fields arrive
// from the platform API already normalized: missing, null and empty strings
// are all the empty string here.
type JobSeekerProfile struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	PhoneNumber    string         `json:"phoneNumber"`
	JobTitle       string         `json:"jobTitle"`
	Address        string         `json:"address"`
	State          string         `json:"state"`
	City           string         `json:"city"`
	Brief          string         `json:"brief"`
	Bio            string         `json:"bio"`
	ApprovalStatus ApprovalStatus `json:"approvalStatus"`
	Skills         []Skill        `json:"skills,omitempty"`
	UserSkills     []UserSkill    `json:"userSkills,omitempty"`
	CvDocumentID   string         `json:"cvDocumentId,omitempty"`
	CvURL          string         `json:"cvUrl,omitempty"`
	CreatedAt      time.Time      `json:"createdAt,omitempty"`
	UpdatedAt      time.Time      `json:"updatedAt,omitempty"`
}

// JobSeekerProfileUpdate carries the personal-info wizard step. Zero-value
// fields are omitted from the outbound request.
type JobSeekerProfileUpdate struct {
	FirstName    string   `json:"firstName,omitempty" validate:"omitempty,valid_name,no_emoji"`
	LastName     string   `json:"lastName,omitempty" validate:"omitempty,valid_name,no_emoji"`
	PhoneNumber  string   `json:"phoneNumber,omitempty" validate:"omitempty,valid_phone"`
	JobTitle     string   `json:"jobTitle,omitempty" validate:"omitempty,min=2,max=100"`
	Address      string   `json:"address,omitempty" validate:"omitempty,max=200"`
	State        string   `json:"state,omitempty" validate:"omitempty,max=100"`
	City         string   `json:"city,omitempty" validate:"omitempty,max=100"`
	Brief        string   `json:"brief,omitempty" validate:"omitempty,max=1000"`
	Bio          string   `json:"bio,omitempty" validate:"omitempty,max=1000"`
	SkillIDs     []string `json:"skillIds,omitempty"`
	CvDocumentID string   `json:"cvDocumentId,omitempty"`
	CvURL        string   `json:"cvUrl,omitempty" validate:"omitempty,url"`
}

// ProfileRepository is the remote profile surface of the platform API.
// Calls are authenticated with the caller's access token.
type ProfileRepository interface {
	GetJobSeekerProfile(ctx context.Context, accessToken string) (*JobSeekerProfile, error)
	UpdateJobSeekerProfile(ctx context.Context, accessToken string, upd *JobSeekerProfileUpdate) (*JobSeekerProfile, error)
	GetEmployerProfile(ctx context.Context, accessToken string) (*EmployerProfile, error)
	UpdateEmployerProfile(ctx context.Context, accessToken string, upd *EmployerProfileUpdate) (*EmployerProfile, error)
	GetEmployerVerification(ctx context.Context, accessToken string) (*EmployerVerification, error)
	SubmitEmployerVerification(ctx context.Context, accessToken string, sub *EmployerVerificationSubmission) (*EmployerVerification, error)
}
