package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeField(t *testing.T) {
	body := []byte(`{"success":true,"users":[{"_id":"u1","name":"Ada"}],"empty":null}`)

	var users []map[string]interface{}
	require.NoError(t, DecodeField(body, "users", &users))
	require.Len(t, users, 1)
	assert.Equal(t, "Ada", users[0]["name"])

	var missing []string
	assert.Error(t, DecodeField(body, "requests", &missing))

	empty := []string{"kept"}
	require.NoError(t, DecodeField(body, "empty", &empty))
	assert.Equal(t, []string{"kept"}, empty)
}

func TestFirstString(t *testing.T) {
	body := []byte(`{"message":"","error":"Invalid email or password"}`)
	assert.Equal(t, "Invalid email or password", FirstString(body, "message", "error"))
	assert.Equal(t, "", FirstString(body, "detail"))
}

func TestParseAPITime(t *testing.T) {
	want := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	testCases := []struct {
		name  string
		input string
	}{
		{"flask http date", "Fri, 14 Mar 2025 09:30:00 GMT"},
		{"rfc3339", "2025-03-14T09:30:00Z"},
		{"rfc3339 offset", "2025-03-14T10:30:00+01:00"},
		{"naive iso", "2025-03-14T09:30:00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAPITime(tc.input)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %v", got)
		})
	}

	_, err := ParseAPITime("next tuesday")
	assert.Error(t, err)
}

func TestFormatAPITime(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	assert.Equal(t, "2025-03-14T07:30:00Z", FormatAPITime(time.Date(2025, 3, 14, 9, 30, 0, 0, loc)))
}

func TestBearerHelpers(t *testing.T) {
	assert.Equal(t, "Bearer abc", BearerHeader("abc"))
	assert.Equal(t, "abc", TokenFromHeader("Bearer abc"))
	assert.Equal(t, "abc", TokenFromHeader("bearer abc"))
	assert.Equal(t, "", TokenFromHeader("Basic abc"))
	assert.Equal(t, "", TokenFromHeader(""))
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	got, ok := TokenExpiry(token)
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = TokenExpiry("not-a-jwt")
	assert.False(t, ok)
	_, ok = TokenExpiry("")
	assert.False(t, ok)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "***", MaskToken("short"))
	assert.Equal(t, "eyJh***wxyz", MaskToken("eyJhbGciOiJIUzI1NiJ9.payload.wxyz"))
}
