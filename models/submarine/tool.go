package submarine

import "github.com/saeidalz13/submarine-duel/models/ocean"

// Tool is one charged device of the submarine. A negative cooldown means
// the referee does not offer the tool in this league.
type Tool struct {
	cooldown int
}

func NewTool() Tool {
	return Tool{cooldown: -1}
}

func (t *Tool) SetCooldown(cooldown int) {
	t.cooldown = cooldown
}

func (t Tool) Cooldown() int {
	return t.cooldown
}

func (t Tool) IsAvailable() bool {
	return t.cooldown >= 0
}

func (t Tool) IsReady() bool {
	return t.cooldown == 0
}

// Sonar remembers the sector asked about so that next turn's answer can
// be matched to it.
type Sonar struct {
	Tool
	requestedSector int
}

func (s *Sonar) Request(sector int) {
	s.requestedSector = sector
}

func (s *Sonar) RequestedSector() (int, bool) {
	return s.requestedSector, s.requestedSector > 0
}

func (s *Sonar) ResetRequest() {
	s.requestedSector = 0
}

type Torpedo struct {
	Tool
	target ocean.Coordinates
	fired  bool
}

func (t *Torpedo) FireAt(target ocean.Coordinates) {
	t.target = target
	t.fired = true
}

func (t *Torpedo) Target() (ocean.Coordinates, bool) {
	return t.target, t.fired
}

func (t *Torpedo) ResetTarget() {
	t.target = ocean.Coordinates{}
	t.fired = false
}

type Toolkit struct {
	Torpedo Torpedo
	Sonar   Sonar
	Silence Tool
	Mine    Tool
}

func NewToolkit() Toolkit {
	return Toolkit{
		Torpedo: Torpedo{Tool: NewTool()},
		Sonar:   Sonar{Tool: NewTool()},
		Silence: NewTool(),
		Mine:    NewTool(),
	}
}

// Charge picks the tool a MOVE should load: the first one offered and not
// yet ready, in the order SILENCE, SONAR, TORPEDO, MINE.
func (tk *Toolkit) Charge() string {
	switch {
	case tk.Silence.IsAvailable() && !tk.Silence.IsReady():
		return "SILENCE"
	case tk.Sonar.IsAvailable() && !tk.Sonar.IsReady():
		return "SONAR"
	case tk.Torpedo.IsAvailable() && !tk.Torpedo.IsReady():
		return "TORPEDO"
	case tk.Mine.IsAvailable() && !tk.Mine.IsReady():
		return "MINE"
	}
	return ""
}
