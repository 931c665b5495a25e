package api

import (
	"context"
	"net/url"
	"strings"

	apperrors "github.com/octabyte/skillswap-client/errors"
	"github.com/octabyte/skillswap-client/models"
)

type Skills struct {
	t Transport
}

func NewSkills(t Transport) *Skills {
	return &Skills{t: t}
}

func (s *Skills) Suggestions(ctx context.Context, userID string) (models.SkillSuggestions, error) {
	if err := requireID("user id", userID); err != nil {
		return nil, err
	}
	var suggestions models.SkillSuggestions
	err := get(ctx, s.t, path("/api/skill-suggestions", userID), nil, "suggestions", &suggestions)
	return suggestions, err
}

func (s *Skills) Categories(ctx context.Context) ([]models.SkillCategory, error) {
	var categories []models.SkillCategory
	err := get(ctx, s.t, "/api/skill-categories", nil, "categories", &categories)
	return categories, err
}

func (s *Skills) Search(ctx context.Context, query string) ([]models.SkillMatch, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "search query is empty")
	}
	var matches []models.SkillMatch
	err := get(ctx, s.t, "/api/skills/search", url.Values{"q": {query}}, "skills", &matches)
	return matches, err
}

func (s *Skills) Popular(ctx context.Context) (models.PopularSkills, error) {
	var popular models.PopularSkills
	err := get(ctx, s.t, "/api/skills/popular", nil, "popular_skills", &popular)
	return popular, err
}
