package models

import "github.com/octabyte/skillswap-client/enums"

type LeaderboardEntry struct {
	ID                  string           `json:"_id"`
	Rank                int              `json:"rank"`
	Name                string           `json:"name"`
	PhotoURL            string           `json:"photo_url"`
	TotalSessionsTaught int              `json:"total_sessions_taught"`
	BadgeLevel          enums.BadgeLevel `json:"badge_level"`
	Rating              float64          `json:"rating"`
	SkillsTeach         []string         `json:"skills_teach"`
}

type MonthlyLeader struct {
	ID                string           `json:"_id"`
	Name              string           `json:"name"`
	PhotoURL          string           `json:"photo_url"`
	SessionsThisMonth int              `json:"sessions_this_month"`
	BadgeLevel        enums.BadgeLevel `json:"badge_level"`
}

type BadgeStats struct {
	BadgeDistribution map[enums.BadgeLevel]int `json:"badge_distribution"`
	TotalUsers        int                      `json:"total_users"`
	TotalSessions     int                      `json:"total_sessions"`
	MonthlyLeaders    []MonthlyLeader          `json:"monthly_leaders"`
	BadgeThresholds   map[enums.BadgeLevel]int `json:"badge_thresholds"`
}

type Achievement struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	EarnedAt    Timestamp `json:"earned_at"`
}

type BadgeInfo struct {
	CurrentBadge       enums.BadgeLevel         `json:"current_badge"`
	NextBadge          *enums.BadgeLevel        `json:"next_badge"`
	CurrentSessions    int                      `json:"current_sessions"`
	SessionsToNext     int                      `json:"sessions_to_next"`
	ProgressPercentage float64                  `json:"progress_percentage"`
	Achievements       []Achievement            `json:"achievements"`
	BadgeThresholds    map[enums.BadgeLevel]int `json:"badge_thresholds"`
}

type BadgeUpdate struct {
	OldBadge      enums.BadgeLevel `json:"old_badge"`
	NewBadge      enums.BadgeLevel `json:"new_badge"`
	BadgeUpgraded bool             `json:"badge_upgraded"`
}
