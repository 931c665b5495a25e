package models

import (
	"bytes"
	"time"

	"github.com/goccy/go-json"
	"github.com/octabyte/skillswap-client/utils"
)

// Timestamp decodes every datetime representation the API emits.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	parsed, err := utils.ParseAPITime(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(utils.FormatAPITime(t.Time))
}
