package models

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/octabyte/skillswap-client/enums"
	"github.com/octabyte/skillswap-client/utils"
)

// SkillSession is a scheduled teaching session between two users.
type SkillSession struct {
	ID            string              `json:"_id"`
	Teacher       Participant         `json:"teacher"`
	Student       Participant         `json:"student"`
	Skill         string              `json:"skill"`
	Description   string              `json:"description"`
	ScheduledDate Timestamp           `json:"scheduled_date"`
	Duration      int                 `json:"duration"`
	Status        enums.SessionStatus `json:"status"`
	MeetingLink   string              `json:"meeting_link"`
	Notes         string              `json:"notes"`
	CreatedAt     Timestamp           `json:"created_at"`
	UpdatedAt     Timestamp           `json:"updated_at"`
}

type NewSkillSession struct {
	ParticipantID string    `json:"participant_id" validate:"required"`
	Skill         string    `json:"skill" validate:"required"`
	ScheduledDate time.Time `json:"-" validate:"required"`
	// Duration in minutes.
	Duration    int    `json:"duration" validate:"required,gt=0"`
	Description string `json:"description,omitempty"`
	MeetingLink string `json:"meeting_link,omitempty" validate:"omitempty,url"`
	Notes       string `json:"notes,omitempty"`
}

type SkillSessionUpdate struct {
	Status        *enums.SessionStatus `json:"status,omitempty" validate:"omitempty,oneof=scheduled completed cancelled missed"`
	MeetingLink   *string              `json:"meeting_link,omitempty" validate:"omitempty,url"`
	Notes         *string              `json:"notes,omitempty"`
	ScheduledDate *time.Time           `json:"-"`
	Duration      *int                 `json:"duration,omitempty" validate:"omitempty,gt=0"`
}

func (n NewSkillSession) MarshalJSON() ([]byte, error) {
	type alias NewSkillSession
	return json.Marshal(struct {
		alias
		ScheduledDate string `json:"scheduled_date"`
	}{alias: alias(n), ScheduledDate: utils.FormatAPITime(n.ScheduledDate)})
}

func (u SkillSessionUpdate) MarshalJSON() ([]byte, error) {
	type alias SkillSessionUpdate
	out := struct {
		alias
		ScheduledDate string `json:"scheduled_date,omitempty"`
	}{alias: alias(u)}
	if u.ScheduledDate != nil {
		out.ScheduledDate = utils.FormatAPITime(*u.ScheduledDate)
	}
	return json.Marshal(out)
}
