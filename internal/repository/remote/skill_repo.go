package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"go-jobboard-gateway/internal/domain"
)

type skillRepository struct {
	client *Client
}

func NewSkillRepository(client *Client) domain.SkillRepository {
	return &skillRepository{client: client}
}

func (r *skillRepository) Search(ctx context.Context, accessToken, query string, limit int) ([]domain.Skill, error) {
	q := url.Values{}
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var skills []domain.Skill
	if err := r.client.do(ctx, http.MethodGet, "/skills?"+q.Encode(), accessToken, nil, &skills); err != nil {
		return nil, err
	}
	if skills == nil {
		skills = []domain.Skill{}
	}
	return skills, nil
}

func (r *skillRepository) Suggest(ctx context.Context, accessToken string, suggestion *domain.SkillSuggestion) (*domain.Skill, error) {
	var skill domain.Skill
	if err := r.client.do(ctx, http.MethodPost, "/skills/suggest", accessToken, suggestion, &skill); err != nil {
		return nil, err
	}
	return &skill, nil
}
