package submarine

import "github.com/saeidalz13/submarine-duel/models/ocean"

const MaxHistorySize = 5

type Status struct {
	Position ocean.Coordinates `json:"position"`
	HP       int               `json:"hp"`
}

type Player struct {
	ID      int
	Status  Status
	history []Status
}

func NewPlayer(id int) *Player {
	return &Player{
		ID:     id,
		Status: Status{Position: ocean.NewCoordinates(-1, -1), HP: -1},
	}
}

func (p *Player) PositionIsKnown() bool {
	return p.Status.Position.X >= 0 && p.Status.Position.Y >= 0
}

func (p *Player) HPIsKnown() bool {
	return p.Status.HP >= 0
}

// SaveStatus pushes the current status, keeping the last MaxHistorySize.
func (p *Player) SaveStatus() {
	if len(p.history) >= MaxHistorySize {
		p.history = append(p.history[:0], p.history[len(p.history)-MaxHistorySize+1:]...)
	}
	p.history = append(p.history, p.Status)
}

func (p *Player) PreviousStatus() (Status, bool) {
	if len(p.history) == 0 {
		return Status{}, false
	}
	return p.history[len(p.history)-1], true
}

func (p *Player) History() []Status {
	return append([]Status(nil), p.history...)
}
