package models

import "github.com/octabyte/skillswap-client/enums"

// Participant is the condensed user embedded in swap requests and sessions.
type Participant struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	PhotoURL    string   `json:"photo_url"`
	SkillsTeach []string `json:"skills_teach,omitempty"`
}

type SwapRequest struct {
	ID         string                  `json:"_id"`
	TargetUser *Participant            `json:"target_user,omitempty"`
	Requester  *Participant            `json:"requester,omitempty"`
	Message    string                  `json:"message"`
	Status     enums.SwapRequestStatus `json:"status"`
	CreatedAt  Timestamp               `json:"created_at"`
	UpdatedAt  Timestamp               `json:"updated_at"`
}

type NewSwapRequest struct {
	TargetUserID string `json:"target_user_id" validate:"required"`
	Message      string `json:"message,omitempty" validate:"max=1000"`
}
