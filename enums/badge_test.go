package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBadgeLevelNext(t *testing.T) {
	next, ok := BadgeBronze.Next()
	assert.True(t, ok)
	assert.Equal(t, BadgeSilver, next)

	_, ok = BadgePlatinum.Next()
	assert.False(t, ok)

	_, ok = BadgeLevel("Diamond").Next()
	assert.False(t, ok)
}

func TestBadgeForSessions(t *testing.T) {
	testCases := []struct {
		taught int
		want   BadgeLevel
	}{
		{0, BadgeBronze},
		{9, BadgeBronze},
		{10, BadgeSilver},
		{24, BadgeSilver},
		{25, BadgeGold},
		{50, BadgePlatinum},
		{120, BadgePlatinum},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, BadgeForSessions(tc.taught), "taught=%d", tc.taught)
	}
}
