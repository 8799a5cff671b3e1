package leaderboard

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Scores are the five equally weighted components of a ranking, each 1-100.
type Scores struct {
	Playstyle   int `gorm:"not null"`
	Movement    int `gorm:"not null"`
	PvP         int `gorm:"column:pvp;not null"`
	Building    int `gorm:"not null"`
	Projectiles int `gorm:"not null"`
}

func (s Scores) Mean() float64 {
	return float64(s.Playstyle+s.Movement+s.PvP+s.Building+s.Projectiles) / 5
}

// Ranking is the stored record for one player. OverallScore and Tier are
// derived from Scores and only ever set by NewRanking.
type Ranking struct {
	Username     string `gorm:"primaryKey;size:100"`
	Scores       `gorm:"embedded"`
	OverallScore float64   `gorm:"not null"`
	Tier         string    `gorm:"size:16;not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (Ranking) TableName() string {
	return "player_rankings"
}

func NewRanking(username string, s Scores, now time.Time) *Ranking {
	overall := s.Mean()
	return &Ranking{
		Username:     username,
		Scores:       s,
		OverallScore: overall,
		Tier:         TierFor(overall).Name,
		UpdatedAt:    now,
	}
}

// Summary renders the ranking as a chat message.
func (r Ranking) Summary() string {
	p := message.NewPrinter(language.English)
	tier := TierByName(r.Tier)

	var b strings.Builder
	b.WriteString(p.Sprintf("📊 **Ranking recorded for %s**\n", r.Username))
	b.WriteString(p.Sprintf("%s Tier: **%s**\n", tier.Emoji, tier.Name))
	b.WriteString(p.Sprintf("⭐ Overall: **%.1f**\n", r.OverallScore))
	b.WriteString(p.Sprintf("Playstyle: %d | Movement: %d | PvP: %d | Building: %d | Projectiles: %d",
		r.Playstyle, r.Movement, r.PvP, r.Building, r.Projectiles))
	return b.String()
}
