package opponent

import (
	"log"
	"math"

	cerr "github.com/saeidalz13/submarine-duel/internal/error"
	"github.com/saeidalz13/submarine-duel/models/ocean"
)

// Marks below zero record why a cell was eliminated. Any mark other than
// the current epoch means eliminated; the codes only help when reading a dump.
const (
	MarkSonar   int32 = -1
	MarkLand    int32 = -2
	MarkBlast   int32 = -3
	MarkRange   int32 = -4
	MarkSurface int32 = -5
)

type Settings struct {
	TorpedoRange  int
	SilenceRange  int
	BlastRadius   int
	CentroidLimit int
}

var DefaultSettings = Settings{
	TorpedoRange:  4,
	SilenceRange:  4,
	BlastRadius:   1,
	CentroidLimit: 9,
}

// Tracker is the elimination filter over the opponent's possible cells.
// A cell is a candidate iff its mark equals the current epoch. Every applied
// observation writes a fresh generation into the spare buffer, swaps, and
// bumps the epoch, so the epoch always equals len(History()).
type Tracker struct {
	m        *ocean.Map
	settings Settings

	marks ocean.SectorGrid[int32]
	spare ocean.SectorGrid[int32]
	epoch int32

	path    []ocean.Direction
	history []Observation
}

func NewTracker(m *ocean.Map, settings Settings) *Tracker {
	marks := ocean.NewSectorGrid(m.Width(), m.Height(), m.SectorWidth(), m.SectorHeight(), int32(0))
	m.Cells(func(c ocean.Coordinates, sq ocean.Square) bool {
		if !sq.IsOcean() {
			marks.Set(c, MarkLand)
		}
		return true
	})

	return &Tracker{
		m:        m,
		settings: settings,
		marks:    marks,
		spare:    marks.Clone(),
	}
}

// transition decides, for one current candidate, which cells it leads to
// at the next epoch. The returned code is stamped on the origin when no
// candidate re-derives it; zero leaves the stale epoch in place.
type transition func(origin ocean.Coordinates, emit func(ocean.Coordinates)) int32

// Apply folds one observation into the candidate set. Invalid observations
// are rejected with the set untouched. When the update empties the set it is
// still committed and cerr.ErrNoCandidates is returned for the caller to log.
func (t *Tracker) Apply(o Observation) error {
	step, err := t.transitionFor(o)
	if err != nil {
		return err
	}
	if step == nil {
		return nil
	}

	t.advance(step)
	t.history = append(t.history, o)
	switch o.Kind {
	case KindMove:
		t.path = append(t.path, o.Direction)
	case KindSilence:
		t.path = append(t.path, ocean.Unknown)
	case KindSurface:
		t.path = t.path[:0]
	}

	if t.PossibleCount() == 0 {
		err := cerr.ErrContradiction(int(t.epoch))
		log.Printf("localization contradiction after %s: %v", o, err)
		return err
	}
	return nil
}

// ApplyAll applies the observations in order and reports the first error.
// Rejected observations do not stop the later ones.
func (t *Tracker) ApplyAll(observations []Observation) error {
	var first error
	for _, o := range observations {
		if err := t.Apply(o); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t *Tracker) transitionFor(o Observation) (transition, error) {
	switch o.Kind {
	case KindMove:
		if !o.Direction.IsValid() {
			return nil, cerr.ErrOrderArgument(o.String())
		}
		return func(origin ocean.Coordinates, emit func(ocean.Coordinates)) int32 {
			for _, c := range moveDestinations(t.m, origin, o.Direction) {
				emit(c)
			}
			return 0
		}, nil

	case KindSilence:
		last := ocean.Unknown
		if len(t.path) > 0 {
			last = t.path[len(t.path)-1]
		}
		tr := newTrail(t.path)
		return func(origin ocean.Coordinates, emit func(ocean.Coordinates)) int32 {
			for _, c := range silenceDestinations(t.m, origin, last, tr, t.settings.SilenceRange) {
				emit(c)
			}
			return 0
		}, nil

	case KindSurface:
		if !t.m.ValidSector(o.Sector) {
			return nil, cerr.ErrSectorOutOfRange(o.Sector, t.m.SectorCount())
		}
		return t.keep(func(c ocean.Coordinates) int32 {
			if t.m.InSector(c, o.Sector) {
				return 0
			}
			return MarkSurface
		}), nil

	case KindSonar:
		if o.Sonar == SonarNotAvailable {
			return nil, nil
		}
		if !t.m.ValidSector(o.Sector) {
			return nil, cerr.ErrSectorOutOfRange(o.Sector, t.m.SectorCount())
		}
		found := o.Sonar == SonarFound
		return t.keep(func(c ocean.Coordinates) int32 {
			if t.m.InSector(c, o.Sector) == found {
				return 0
			}
			return MarkSonar
		}), nil

	case KindBlast:
		if !t.m.Contains(o.Target) {
			return nil, cerr.ErrOrderArgument(o.String())
		}
		if o.Hit == HitUnknown {
			return nil, nil
		}
		footprint := blastFootprint(t.m, o.Target, t.settings.BlastRadius)
		return t.keep(func(c ocean.Coordinates) int32 {
			if blastSurvives(c, o.Target, footprint, o.Hit) {
				return 0
			}
			return MarkBlast
		}), nil

	case KindTorpedo:
		if !t.m.Contains(o.Target) {
			return nil, cerr.ErrOrderArgument(o.String())
		}
		inRange := ocean.NewGrid(t.m.Width(), t.m.Height(), false)
		for _, c := range t.m.ReachableWithinRadius(o.Target, t.settings.TorpedoRange) {
			inRange.Set(c, true)
		}
		footprint := blastFootprint(t.m, o.Target, t.settings.BlastRadius)
		return t.keep(func(c ocean.Coordinates) int32 {
			if !inRange.Get(c) {
				return MarkRange
			}
			if !blastSurvives(c, o.Target, footprint, o.Hit) {
				return MarkBlast
			}
			return 0
		}), nil
	}
	return nil, cerr.ErrUnknownOrder(o.String())
}

// keep turns a per-cell verdict into a transition where candidates either
// stay where they are or are eliminated with the returned code.
func (t *Tracker) keep(verdict func(ocean.Coordinates) int32) transition {
	return func(origin ocean.Coordinates, emit func(ocean.Coordinates)) int32 {
		code := verdict(origin)
		if code == 0 {
			emit(origin)
		}
		return code
	}
}

func (t *Tracker) advance(step transition) {
	next := t.epoch + 1
	t.spare.CopyFrom(&t.marks.Grid)

	var eliminated []ocean.Coordinates
	var codes []int32
	t.marks.Cells(func(origin ocean.Coordinates, mark int32) bool {
		if mark != t.epoch {
			return true
		}
		code := step(origin, func(c ocean.Coordinates) {
			t.spare.Set(c, next)
		})
		if code != 0 {
			eliminated = append(eliminated, origin)
			codes = append(codes, code)
		}
		return true
	})
	for i, c := range eliminated {
		if t.spare.Get(c) != next {
			t.spare.Set(c, codes[i])
		}
	}

	t.marks, t.spare = t.spare, t.marks
	t.epoch = next
}

func (t *Tracker) Epoch() int {
	return int(t.epoch)
}

func (t *Tracker) IsCandidate(c ocean.Coordinates) bool {
	return t.marks.Contains(c) && t.marks.Get(c) == t.epoch
}

func (t *Tracker) PossibleCount() int {
	return t.marks.Count(t.epoch)
}

// Consistent is false once the observations contradicted each other.
func (t *Tracker) Consistent() bool {
	return t.PossibleCount() > 0
}

// Candidates lists the candidate cells in row-major order.
func (t *Tracker) Candidates() []ocean.Coordinates {
	var cells []ocean.Coordinates
	t.marks.Cells(func(c ocean.Coordinates, mark int32) bool {
		if mark == t.epoch {
			cells = append(cells, c)
		}
		return true
	})
	return cells
}

// MostPopulatedSector returns the sector holding the most candidates,
// the lowest index on ties, together with that count.
func (t *Tracker) MostPopulatedSector() (int, int) {
	best, bestCount := 1, t.marks.CountInSector(1, t.epoch)
	for sector := 2; sector <= t.marks.SectorCount(); sector++ {
		if n := t.marks.CountInSector(sector, t.epoch); n > bestCount {
			best, bestCount = sector, n
		}
	}
	return best, bestCount
}

// Centroid is the rounded mean of the candidates. A wide spread is no aim
// point, so it is only defined up to CentroidLimit candidates.
func (t *Tracker) Centroid() (ocean.Coordinates, bool) {
	cells := t.Candidates()
	if len(cells) == 0 || len(cells) > t.settings.CentroidLimit {
		return ocean.Coordinates{}, false
	}
	var sx, sy int
	for _, c := range cells {
		sx += c.X
		sy += c.Y
	}
	n := float64(len(cells))
	return ocean.NewCoordinates(
		int(math.Round(float64(sx)/n)),
		int(math.Round(float64(sy)/n)),
	), true
}

func (t *Tracker) CollapsedPosition() (ocean.Coordinates, bool) {
	var found ocean.Coordinates
	n := 0
	t.marks.Cells(func(c ocean.Coordinates, mark int32) bool {
		if mark == t.epoch {
			found = c
			n++
		}
		return n <= 1
	})
	if n != 1 {
		return ocean.Coordinates{}, false
	}
	return found, true
}

// Marks returns a copy of the raw mark grid for diagnostics.
func (t *Tracker) Marks() ocean.Grid[int32] {
	return t.marks.Grid.Clone()
}

// RelativePath is the opponent's heading sequence since its last surface;
// ocean.Unknown stands for a silence.
func (t *Tracker) RelativePath() []ocean.Direction {
	return append([]ocean.Direction(nil), t.path...)
}

func (t *Tracker) History() []Observation {
	return append([]Observation(nil), t.history...)
}

// Replay rebuilds a tracker from scratch by applying the full history again.
func (t *Tracker) Replay() *Tracker {
	replayed := NewTracker(t.m, t.settings)
	for _, o := range t.history {
		// contradictions were already reported the first time round
		_ = replayed.Apply(o)
	}
	return replayed
}

// SameCandidates reports whether both trackers hold the same candidate set.
func (t *Tracker) SameCandidates(other *Tracker) bool {
	a, b := t.Candidates(), other.Candidates()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
