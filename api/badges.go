package api

import (
	"context"
	"net/http"

	"github.com/octabyte/skillswap-client/gateway"
	"github.com/octabyte/skillswap-client/models"
)

const badgesPath = "/api/badges"

type Badges struct {
	t Transport
}

func NewBadges(t Transport) *Badges {
	return &Badges{t: t}
}

func (b *Badges) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := get(ctx, b.t, path(badgesPath, "leaderboard"), nil, "leaderboard", &entries)
	return entries, err
}

func (b *Badges) Stats(ctx context.Context) (models.BadgeStats, error) {
	var stats models.BadgeStats
	err := get(ctx, b.t, path(badgesPath, "stats"), nil, "stats", &stats)
	return stats, err
}

func (b *Badges) ForUser(ctx context.Context, userID string) (models.BadgeInfo, error) {
	var info models.BadgeInfo
	if err := requireID("user id", userID); err != nil {
		return info, err
	}
	err := get(ctx, b.t, path(badgesPath, "user", userID), nil, "badge_info", &info)
	return info, err
}

// Update asks the server to recompute the user's badge.
func (b *Badges) Update(ctx context.Context, userID string) (models.BadgeUpdate, error) {
	var update models.BadgeUpdate
	if err := requireID("user id", userID); err != nil {
		return update, err
	}
	err := call(ctx, b.t, gateway.Request{Method: http.MethodPost, Path: path(badgesPath, "update", userID)}, "@this", &update)
	return update, err
}
