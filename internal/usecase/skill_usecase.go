package usecase

import (
	"context"
	"strings"

	"go-jobboard-gateway/internal/domain"
	"go-jobboard-gateway/pkg/apperror"
	"go-jobboard-gateway/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const skillSearchLimit = 20

type skillUsecase struct {
	repo     domain.SkillRepository
	validate *validator.Validate
}

func NewSkillUsecase(repo domain.SkillRepository, validate *validator.Validate) domain.SkillUsecase {
	return &skillUsecase{repo: repo, validate: validate}
}

func (u *skillUsecase) Search(ctx context.Context, query string) ([]domain.Skill, error) {
	token, err := accessToken(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Skill{}, nil
	}
	return u.repo.Search(ctx, token, query, skillSearchLimit)
}

func (u *skillUsecase) Suggest(ctx context.Context, suggestion *domain.SkillSuggestion) (*domain.Skill, error) {
	if err := requireRole(ctx, domain.RoleJobSeeker); err != nil {
		return nil, err
	}
	token, err := accessToken(ctx)
	if err != nil {
		return nil, err
	}
	suggestion.Name = strings.TrimSpace(suggestion.Name)
	if err := u.validate.Struct(suggestion); err != nil {
		msgs := validation.FormatValidationErrors(err)
		if len(msgs) > 0 {
			return nil, apperror.BadRequest(msgs[0])
		}
		return nil, apperror.BadRequest(err.Error())
	}
	return u.repo.Suggest(ctx, token, suggestion)
}
