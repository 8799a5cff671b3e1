package leaderboard

// Tier is a named band of overall scores. A score belongs to the first tier,
// scanning from the top, whose threshold it reaches.
type Tier struct {
	Name      string
	Threshold float64
	Emoji     string
}

var (
	tiers = []Tier{
		{Name: "HT1", Threshold: 97, Emoji: "🏆"},
		{Name: "MT1", Threshold: 93, Emoji: "🏆"},
		{Name: "LT1", Threshold: 89, Emoji: "🏆"},
		{Name: "HT2", Threshold: 84, Emoji: "💎"},
		{Name: "MT2", Threshold: 80, Emoji: "💎"},
		{Name: "LT2", Threshold: 76, Emoji: "💎"},
		{Name: "HT3", Threshold: 71, Emoji: "🥇"},
		{Name: "MT3", Threshold: 67, Emoji: "🥇"},
		{Name: "LT3", Threshold: 63, Emoji: "🥇"},
		{Name: "HT4", Threshold: 58, Emoji: "🥈"},
		{Name: "MT4", Threshold: 54, Emoji: "🥈"},
		{Name: "LT4", Threshold: 50, Emoji: "🥈"},
	}

	Unranked = Tier{Name: "No Rank", Emoji: "❔"}
)

func TierFor(overall float64) Tier {
	for _, t := range tiers {
		if overall >= t.Threshold {
			return t
		}
	}
	return Unranked
}

// TierByName finds a tier from its stored name, falling back to Unranked.
func TierByName(name string) Tier {
	for _, t := range tiers {
		if t.Name == name {
			return t
		}
	}
	return Unranked
}
