package models

import "github.com/octabyte/skillswap-client/enums"

// ProfileUpdate is the body of POST /api/users and PUT /api/users/{id}.
// Nil fields are left unchanged by the server.
type ProfileUpdate struct {
	Name                    *string                  `json:"name,omitempty"`
	Bio                     *string                  `json:"bio,omitempty"`
	SkillsTeach             []string                 `json:"skills_teach,omitempty"`
	SkillsLearn             []string                 `json:"skills_learn,omitempty"`
	Availability            *string                  `json:"availability,omitempty"`
	IsPublic                *bool                    `json:"is_public,omitempty"`
	NotificationPreferences *NotificationPreferences `json:"notification_preferences,omitempty"`
}

type UserQuery struct {
	// PublicOnly defaults to true on the server.
	PublicOnly *bool
	Search     string
}

type UserStats struct {
	TotalSessionsTaught   int              `json:"total_sessions_taught"`
	TotalSessionsAttended int              `json:"total_sessions_attended"`
	Rating                float64          `json:"rating"`
	BadgeLevel            enums.BadgeLevel `json:"badge_level"`
	SkillsCount           struct {
		Teaching int `json:"teaching"`
		Learning int `json:"learning"`
	} `json:"skills_count"`
}
