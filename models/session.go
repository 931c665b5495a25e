package models

import (
	"time"

	"github.com/octabyte/skillswap-client/utils"
)

// Session is the client-local record of the authenticated identity.
type Session struct {
	User         User   `json:"user"`
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

func (s Session) Valid() bool {
	return s.AccessToken != "" && !s.User.IsZero()
}

// AccessTokenExpiry is informational; the client only refreshes on 401.
func (s Session) AccessTokenExpiry() (time.Time, bool) {
	return utils.TokenExpiry(s.AccessToken)
}
