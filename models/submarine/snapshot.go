package submarine

import (
	"time"

	"github.com/saeidalz13/submarine-duel/models/ocean"
)

// Observer receives the state of a match as it is played. Implementations
// run inside the turn loop and must not block it.
type Observer interface {
	ObserveStart(MatchStart)
	ObserveTurn(Snapshot)
	ObserveEnd(MatchEnd)
}

type MatchStart struct {
	MatchID       string            `json:"matchId"`
	Width         int               `json:"width"`
	Height        int               `json:"height"`
	MyID          int               `json:"myId"`
	Rows          []string          `json:"rows"`
	StartPosition ocean.Coordinates `json:"startPosition"`
	StartedAt     time.Time         `json:"startedAt"`
}

// Snapshot is what the bot knows after deciding one turn.
type Snapshot struct {
	MatchID     string             `json:"matchId"`
	Turn        int                `json:"turn"`
	Epoch       int                `json:"epoch"`
	Candidates  int                `json:"candidates"`
	Sector      int                `json:"sector"`
	SectorCount int                `json:"sectorCount"`
	Centroid    *ocean.Coordinates `json:"centroid,omitempty"`
	Collapsed   *ocean.Coordinates `json:"collapsed,omitempty"`
	Me          Status             `json:"me"`
	OpponentHP  int                `json:"opponentHp"`
	Marks       [][]int32          `json:"marks"`
	Command     string             `json:"command"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type MatchEnd struct {
	MatchID string    `json:"matchId"`
	Turns   int       `json:"turns"`
	MyLife  int       `json:"myLife"`
	OppLife int       `json:"oppLife"`
	Reason  string    `json:"reason"`
	EndedAt time.Time `json:"endedAt"`
}
