package models

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/octabyte/skillswap-client/enums"
	"github.com/tidwall/gjson"
)

// User is the user record returned by the API. It is kept as the raw JSON
// object so fields the client does not know about survive a round trip.
type User struct {
	raw []byte
}

// UserPatch holds top-level fields to overwrite in a cached User.
type UserPatch map[string]interface{}

// NewUser wraps a raw JSON object. Only presence is checked: the payload
// must be a non-empty JSON object.
func NewUser(raw []byte) (User, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !gjson.ValidBytes(raw) {
		return User{}, errors.New("user record is not valid JSON")
	}
	parsed := gjson.ParseBytes(raw)
	if !parsed.IsObject() || len(parsed.Map()) == 0 {
		return User{}, errors.New("user record must be a non-empty JSON object")
	}
	return User{raw: append([]byte(nil), raw...)}, nil
}

func (u User) IsZero() bool { return len(u.raw) == 0 }

// Raw returns a copy of the JSON object.
func (u User) Raw() []byte { return append([]byte(nil), u.raw...) }

// Get reads any field by gjson path.
func (u User) Get(path string) gjson.Result { return gjson.GetBytes(u.raw, path) }

// ID accepts both the "id" form of the auth endpoints and the "_id" form of
// the users endpoints.
func (u User) ID() string {
	if id := u.Get("id").String(); id != "" {
		return id
	}
	return u.Get("_id").String()
}

func (u User) Name() string     { return u.Get("name").String() }
func (u User) Email() string    { return u.Get("email").String() }
func (u User) PhotoURL() string { return u.Get("photo_url").String() }

func (u User) BadgeLevel() enums.BadgeLevel {
	if level := u.Get("badge_level").String(); level != "" {
		return enums.BadgeLevel(level)
	}
	return enums.BadgeBronze
}

func (u User) SkillsTeach() []string { return stringArray(u.Get("skills_teach")) }
func (u User) SkillsLearn() []string { return stringArray(u.Get("skills_learn")) }

// Apply returns a copy of u with patch merged over its top-level fields.
func (u User) Apply(patch UserPatch) (User, error) {
	if u.IsZero() {
		return User{}, errors.New("cannot patch an empty user record")
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(u.raw, &fields); err != nil {
		return User{}, fmt.Errorf("decode user record: %w", err)
	}
	for key, value := range patch {
		encoded, err := json.Marshal(value)
		if err != nil {
			return User{}, fmt.Errorf("encode patch field %q: %w", key, err)
		}
		fields[key] = encoded
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return User{}, fmt.Errorf("encode user record: %w", err)
	}
	return User{raw: merged}, nil
}

func (u User) MarshalJSON() ([]byte, error) {
	if u.IsZero() {
		return []byte("null"), nil
	}
	return u.Raw(), nil
}

func (u *User) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*u = User{}
		return nil
	}
	user, err := NewUser(data)
	if err != nil {
		return err
	}
	*u = user
	return nil
}

func stringArray(result gjson.Result) []string {
	if !result.IsArray() {
		return nil
	}
	items := result.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}
