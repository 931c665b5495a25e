package enums

type BadgeLevel string

const (
	BadgeBronze   BadgeLevel = "Bronze"
	BadgeSilver   BadgeLevel = "Silver"
	BadgeGold     BadgeLevel = "Gold"
	BadgePlatinum BadgeLevel = "Platinum"
)

// BadgeLevels in ascending order.
var BadgeLevels = []BadgeLevel{BadgeBronze, BadgeSilver, BadgeGold, BadgePlatinum}

// BadgeThresholds is the number of sessions taught needed to reach a level.
var BadgeThresholds = map[BadgeLevel]int{
	BadgeBronze:   0,
	BadgeSilver:   10,
	BadgeGold:     25,
	BadgePlatinum: 50,
}

// Next returns the level after b, or false when b is the top level or unknown.
func (b BadgeLevel) Next() (BadgeLevel, bool) {
	for i, level := range BadgeLevels {
		if level == b && i+1 < len(BadgeLevels) {
			return BadgeLevels[i+1], true
		}
	}
	return "", false
}

// BadgeForSessions returns the highest level reached with taught sessions.
func BadgeForSessions(taught int) BadgeLevel {
	level := BadgeBronze
	for _, candidate := range BadgeLevels {
		if taught >= BadgeThresholds[candidate] {
			level = candidate
		}
	}
	return level
}
