package opponent

import (
	"fmt"

	"github.com/saeidalz13/submarine-duel/models/ocean"
)

type Kind uint8

const (
	KindMove Kind = iota
	KindSurface
	KindSilence
	// KindTorpedo is a torpedo fired by the opponent: it must have been in
	// range of the target, and its own damage tells whether it was caught in the blast.
	KindTorpedo
	// KindBlast is any explosion whose effect on the opponent we measured
	// (our torpedo, their mine trigger).
	KindBlast
	KindSonar
)

func (k Kind) String() string {
	switch k {
	case KindMove:
		return "MOVE"
	case KindSurface:
		return "SURFACE"
	case KindSilence:
		return "SILENCE"
	case KindTorpedo:
		return "TORPEDO"
	case KindBlast:
		return "BLAST"
	case KindSonar:
		return "SONAR"
	}
	return "UNKNOWN"
}

// Hit classifies the damage an explosion dealt to the opponent.
type Hit uint8

const (
	HitUnknown Hit = iota
	HitNone
	HitSplash
	HitDirect
)

func (h Hit) String() string {
	switch h {
	case HitNone:
		return "none"
	case HitSplash:
		return "splash"
	case HitDirect:
		return "direct"
	}
	return "unknown"
}

type SonarResult uint8

const (
	SonarNotAvailable SonarResult = iota
	SonarFound
	SonarNotFound
)

func (r SonarResult) String() string {
	switch r {
	case SonarFound:
		return "Y"
	case SonarNotFound:
		return "N"
	}
	return "NA"
}

// Observation is one decoded fact about the opponent. Which fields are
// meaningful depends on Kind.
type Observation struct {
	Kind      Kind              `json:"kind"`
	Direction ocean.Direction   `json:"direction,omitempty"`
	Sector    int               `json:"sector,omitempty"`
	Target    ocean.Coordinates `json:"target"`
	Hit       Hit               `json:"hit,omitempty"`
	Sonar     SonarResult       `json:"sonar,omitempty"`
}

func Move(dir ocean.Direction) Observation {
	return Observation{Kind: KindMove, Direction: dir}
}

func Surface(sector int) Observation {
	return Observation{Kind: KindSurface, Sector: sector}
}

func Silence() Observation {
	return Observation{Kind: KindSilence}
}

func Torpedo(target ocean.Coordinates, hit Hit) Observation {
	return Observation{Kind: KindTorpedo, Target: target, Hit: hit}
}

func Blast(target ocean.Coordinates, hit Hit) Observation {
	return Observation{Kind: KindBlast, Target: target, Hit: hit}
}

func Sonar(sector int, result SonarResult) Observation {
	return Observation{Kind: KindSonar, Sector: sector, Sonar: result}
}

func (o Observation) String() string {
	switch o.Kind {
	case KindMove:
		return fmt.Sprintf("MOVE %s", o.Direction)
	case KindSurface:
		return fmt.Sprintf("SURFACE %d", o.Sector)
	case KindTorpedo, KindBlast:
		return fmt.Sprintf("%s %s (%s)", o.Kind, o.Target, o.Hit)
	case KindSonar:
		return fmt.Sprintf("SONAR %d %s", o.Sector, o.Sonar)
	}
	return o.Kind.String()
}
