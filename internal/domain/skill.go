package domain

import "context"

// SkillStatus gates which skills appear in search results by default.
type SkillStatus string

const (
	SkillActive    SkillStatus = "ACTIVE"
	SkillSuggested SkillStatus = "SUGGESTED"
	SkillInactive  SkillStatus = "INACTIVE"
)

// Skill is a platform-wide skill record. User-suggested skills are created
// with status SUGGESTED and are immediately attachable to the requesting
// user's profile.
type Skill struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Synonyms []string    `json:"synonyms,omitempty"`
	Status   SkillStatus `json:"status,omitempty"`
}

// SkillSuggestion creates a new SUGGESTED skill and attaches it to the
// requesting user's profile in a single call.
type SkillSuggestion struct {
	Name              string `json:"name" validate:"required,min=2,max=80,no_emoji"`
	Proficiency       string `json:"proficiency,omitempty" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED EXPERT"`
	YearsOfExperience int    `json:"yearsOfExperience,omitempty" validate:"omitempty,min=0,max=60"`
}

// SkillRepository is the remote skill surface of the platform API.
type SkillRepository interface {
	Search(ctx context.Context, accessToken, query string, limit int) ([]Skill, error)
	Suggest(ctx context.Context, accessToken string, suggestion *SkillSuggestion) (*Skill, error)
}

// SkillUsecase validates and forwards skill operations.
type SkillUsecase interface {
	Search(ctx context.Context, query string) ([]Skill, error)
	Suggest(ctx context.Context, suggestion *SkillSuggestion) (*Skill, error)
}
