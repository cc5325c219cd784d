package submarine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"
	"time"

	cerr "github.com/saeidalz13/submarine-duel/internal/error"
	"github.com/saeidalz13/submarine-duel/models/ocean"
	"github.com/saeidalz13/submarine-duel/models/opponent"
)

type Settings struct {
	SectorWidth     int
	SectorHeight    int
	Tracker         opponent.Settings
	Damage          opponent.DamageModel
	SilenceInterval int
}

var DefaultSettings = Settings{
	SectorWidth:     ocean.DefaultSectorWidth,
	SectorHeight:    ocean.DefaultSectorHeight,
	Tracker:         opponent.DefaultSettings,
	Damage:          opponent.DefaultDamageModel,
	SilenceInterval: 24,
}

// Game owns the map, the opponent tracker and our own submarine for one
// match, and turns referee input into one command line per turn.
type Game struct {
	matchID   string
	settings  Settings
	rng       *rand.Rand
	observers []Observer

	info    GameInfo
	m       *ocean.Map
	tracker *opponent.Tracker
	me      *Player
	opp     *Player
	tools   Toolkit
	turn    int
	// skipped is set while the last turn went unread; health deltas then span two turns
	skipped bool
}

type Option func(*Game) error

func NewGame(optFuncs ...Option) *Game {
	game := Game{
		settings: DefaultSettings,
		tools:    NewToolkit(),
	}
	for _, opt := range optFuncs {
		if err := opt(&game); err != nil {
			panic(err)
		}
	}
	if game.rng == nil {
		game.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &game
}

func WithMatchID(matchID string) Option {
	return func(g *Game) error {
		g.matchID = matchID
		return nil
	}
}

func WithSettings(settings Settings) Option {
	return func(g *Game) error {
		if settings.Tracker.TorpedoRange < 0 || settings.Tracker.SilenceRange < 0 || settings.Tracker.BlastRadius < 0 {
			return fmt.Errorf("weapon ranges must not be negative: %+v", settings.Tracker)
		}
		if settings.SilenceInterval < 0 {
			return fmt.Errorf("invalid silence interval: %d", settings.SilenceInterval)
		}
		g.settings = settings
		return nil
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(g *Game) error {
		g.rng = rng
		return nil
	}
}

func WithObserver(observer Observer) Option {
	return func(g *Game) error {
		if observer == nil {
			return errors.New("observer must not be nil")
		}
		g.observers = append(g.observers, observer)
		return nil
	}
}

// Init reads the header line and the map block. Any error is fatal: there
// is no game to play without a map.
func (g *Game) Init(r *bufio.Reader) error {
	line, err := readLine(r)
	if err != nil {
		return cerr.ErrGameInfoField("width", err)
	}
	info, err := ParseGameInfo(line)
	if err != nil {
		return err
	}
	m, err := ocean.ParseMap(r, info.Width, info.Height, g.settings.SectorWidth, g.settings.SectorHeight)
	if err != nil {
		return err
	}

	g.info = info
	g.m = m
	g.tracker = opponent.NewTracker(m, g.settings.Tracker)
	g.me = NewPlayer(info.MyID)
	g.opp = NewPlayer(info.OpponentID())
	return nil
}

// ChooseStartPosition keeps the ocean cells lying in the largest free region
// and, among them, picks one with the fewest free neighbours. Ties are
// broken by the game's random source.
func (g *Game) ChooseStartPosition() (ocean.Coordinates, error) {
	var best []ocean.Coordinates
	bestSize := 0
	for _, c := range g.m.OceanCells() {
		size := g.m.FreeRegionSize(c, g.me.ID)
		switch {
		case size > bestSize:
			best, bestSize = append(best[:0], c), size
		case size == bestSize:
			best = append(best, c)
		}
	}
	if len(best) == 0 {
		return ocean.Coordinates{}, cerr.ErrNoOcean
	}

	g.rng.Shuffle(len(best), func(i, j int) { best[i], best[j] = best[j], best[i] })
	pick := best[0]
	for _, c := range best[1:] {
		if g.m.Accessibility(c, g.me.ID) < g.m.Accessibility(pick, g.me.ID) {
			pick = c
		}
	}
	return pick, nil
}

// Start places our submarine and returns the cell to announce.
func (g *Game) Start() (ocean.Coordinates, error) {
	pos, err := g.ChooseStartPosition()
	if err != nil {
		return pos, err
	}
	g.me.Status.Position = pos
	g.m.MarkVisited(pos, g.me.ID)

	log.Printf("map %dx%d, playing as %d, starting at %s", g.info.Width, g.info.Height, g.info.MyID, pos)
	start := MatchStart{
		MatchID:       g.matchID,
		Width:         g.info.Width,
		Height:        g.info.Height,
		MyID:          g.info.MyID,
		Rows:          g.m.Lines(),
		StartPosition: pos,
		StartedAt:     time.Now(),
	}
	for _, o := range g.observers {
		o.ObserveStart(start)
	}
	return pos, nil
}

// Update folds one turn of referee input into our state and the tracker.
// Our sonar answer and torpedo feedback describe the opponent before it
// moved, so they are applied ahead of its orders.
func (g *Game) Update(ti TurnInfo) {
	g.me.SaveStatus()
	g.opp.SaveStatus()

	pos := ocean.NewCoordinates(ti.X, ti.Y)
	defer func() { g.skipped = false }()

	if g.m.IsOcean(pos) {
		g.me.Status.Position = pos
		g.m.MarkVisited(pos, g.me.ID)
	} else {
		log.Println(cerr.ErrXorYOutOfGridBound(ti.X, ti.Y))
	}
	g.me.Status.HP = ti.MyLife
	g.tools.Torpedo.SetCooldown(ti.TorpedoCooldown)
	g.tools.Sonar.SetCooldown(ti.SonarCooldown)
	g.tools.Silence.SetCooldown(ti.SilenceCooldown)
	g.tools.Mine.SetCooldown(ti.MineCooldown)
	g.opp.Status.HP = ti.OppLife

	orders, err := opponent.ParseOrders(ti.OpponentOrders)
	if err != nil {
		log.Printf("ignoring opponent orders: %v", err)
	}

	observations := make([]opponent.Observation, 0, len(orders)+2)
	if sector, ok := g.tools.Sonar.RequestedSector(); ok {
		result, err := opponent.ParseSonarResult(ti.SonarResult)
		if err != nil {
			log.Println(err)
		} else {
			observations = append(observations, opponent.Sonar(sector, result))
		}
		g.tools.Sonar.ResetRequest()
	}

	target, fired := g.tools.Torpedo.Target()
	g.tools.Torpedo.ResetTarget()
	hit := g.attributeDamage(fired, orders)
	if fired {
		observations = append(observations, opponent.Blast(target, hit))
	}
	observations = append(observations, orders...)

	for _, o := range observations {
		if err := g.tracker.Apply(o); err != nil {
			log.Printf("tracker: %v", err)
		}
	}

	if c, ok := g.tracker.CollapsedPosition(); ok {
		g.opp.Status.Position = c
	} else {
		g.opp.Status.Position = ocean.NewCoordinates(-1, -1)
	}
}

// attributeDamage reads the opponent's health loss since the previous turn.
// A surface costs one point; what is left can only be classified when a
// single explosion could have caused it. The opponent's own explosions get
// the class written into orders, ours is returned.
func (g *Game) attributeDamage(ourShot bool, orders []opponent.Observation) opponent.Hit {
	prev, ok := g.opp.PreviousStatus()
	if !ok || g.skipped || prev.HP < 0 || !g.opp.HPIsKnown() {
		return opponent.HitUnknown
	}

	delta := prev.HP - g.opp.Status.HP
	var blasts []int
	for i, o := range orders {
		switch o.Kind {
		case opponent.KindSurface:
			delta--
		case opponent.KindTorpedo, opponent.KindBlast:
			blasts = append(blasts, i)
		}
	}
	explosions := len(blasts)
	if ourShot {
		explosions++
	}

	var hit opponent.Hit
	switch {
	case explosions == 0:
		return opponent.HitUnknown
	case delta <= 0:
		hit = opponent.HitNone
	case explosions == 1:
		hit = g.settings.Damage.Classify(delta)
	default:
		return opponent.HitUnknown
	}
	for _, i := range blasts {
		orders[i].Hit = hit
	}
	return hit
}

// Decide builds this turn's command line.
func (g *Game) Decide() string {
	var actions []string
	count := g.tracker.PossibleCount()

	if g.tools.Sonar.IsReady() {
		if sector, n := g.tracker.MostPopulatedSector(); n > 0 && n < count {
			g.tools.Sonar.Request(sector)
			actions = append(actions, fmt.Sprintf("SONAR %d", sector))
		}
	}

	target, known := g.aimPoint()
	if known && g.tools.Torpedo.IsReady() && g.canFireAt(target) {
		g.tools.Torpedo.FireAt(target)
		actions = append(actions, fmt.Sprintf("TORPEDO %s", target))
	}

	actions = append(actions, g.movement(target, known))
	actions = append(actions, fmt.Sprintf("MSG %d", count))
	return strings.Join(actions, "|")
}

func (g *Game) aimPoint() (ocean.Coordinates, bool) {
	if c, ok := g.tracker.CollapsedPosition(); ok {
		return c, true
	}
	return g.tracker.Centroid()
}

// canFireAt requires the target within torpedo travel, and out of our own
// blast unless we can afford the trade.
func (g *Game) canFireAt(target ocean.Coordinates) bool {
	pos := g.me.Status.Position
	// the path can never be shorter than the Manhattan distance
	if pos.ManhattanDistance(target) > g.settings.Tracker.TorpedoRange {
		return false
	}
	d, ok := g.m.Distance(pos, target)
	if !ok || d > g.settings.Tracker.TorpedoRange {
		return false
	}
	if pos.ChebyshevDistance(target) > g.settings.Tracker.BlastRadius {
		return true
	}
	return g.me.HPIsKnown() && g.opp.HPIsKnown() && g.opp.Status.HP < g.me.Status.HP
}

func (g *Game) movement(target ocean.Coordinates, known bool) string {
	pos := g.me.Status.Position
	dir := ocean.NoDirection
	if known {
		if d, ok := g.m.Distance(pos, target); ok && d > g.settings.Tracker.TorpedoRange {
			dir = g.m.RouteDirection(g.me.ID, pos, target)
		}
	}
	if !dir.IsValid() {
		dir = g.m.ExplorationDirection(pos, g.me.ID)
	}

	if g.tools.Silence.IsReady() && g.settings.SilenceInterval > 0 && g.turn%g.settings.SilenceInterval == 0 {
		distance := g.rng.Intn(2)
		if !dir.IsValid() {
			dir, distance = ocean.North, 0
		}
		next := pos
		for i := 0; i < distance; i++ {
			next = next.Neighbor(dir)
			g.m.MarkVisited(next, g.me.ID)
		}
		return fmt.Sprintf("SILENCE %s %d", dir, distance)
	}

	if dir.IsValid() {
		if charge := g.tools.Charge(); charge != "" {
			return fmt.Sprintf("MOVE %s %s", dir, charge)
		}
		return fmt.Sprintf("MOVE %s", dir)
	}

	g.m.ClearAllVisited(g.me.ID)
	return "SURFACE"
}

// PlayTurn runs update and decision for one turn and notifies observers.
func (g *Game) PlayTurn(ti TurnInfo) string {
	log.Printf("turn %d: %s", g.turn, ti)
	g.Update(ti)
	return g.finishTurn()
}

// skipTurn answers a turn whose input could not be read.
func (g *Game) skipTurn() string {
	g.skipped = true
	return g.finishTurn()
}

func (g *Game) finishTurn() string {
	command := g.Decide()
	log.Printf("turn %d: %d candidates -> %s", g.turn, g.tracker.PossibleCount(), command)
	if len(g.observers) > 0 {
		snapshot := g.Snapshot(command)
		for _, o := range g.observers {
			o.ObserveTurn(snapshot)
		}
	}
	g.turn++
	return command
}

func (g *Game) Snapshot(command string) Snapshot {
	sector, _ := g.tracker.MostPopulatedSector()
	marks := g.tracker.Marks()
	snapshot := Snapshot{
		MatchID:     g.matchID,
		Turn:        g.turn,
		Epoch:       g.tracker.Epoch(),
		Candidates:  g.tracker.PossibleCount(),
		Sector:      sector,
		SectorCount: g.m.SectorCount(),
		Me:          g.me.Status,
		OpponentHP:  g.opp.Status.HP,
		Marks:       marks.Rows(),
		Command:     command,
		CreatedAt:   time.Now(),
	}
	if c, ok := g.tracker.Centroid(); ok {
		snapshot.Centroid = &c
	}
	if c, ok := g.tracker.CollapsedPosition(); ok {
		snapshot.Collapsed = &c
	}
	return snapshot
}

// Run plays a whole match over the referee streams. It returns nil when the
// referee closes the input. A malformed turn is logged and answered from the
// state we already have.
func (g *Game) Run(ctx context.Context, in io.Reader, out io.Writer) (err error) {
	r := bufio.NewReader(in)
	if err := g.Init(r); err != nil {
		return err
	}
	start, err := g.Start()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, start); err != nil {
		return err
	}

	defer func() {
		reason := "input closed"
		if err != nil {
			reason = err.Error()
		}
		g.notifyEnd(reason)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		ti, err := ReadTurnInfo(r)
		if errors.Is(err, io.EOF) {
			return nil
		}

		var command string
		switch {
		case err == nil:
			command = g.PlayTurn(ti)
		case errors.Is(err, cerr.ErrMalformedTurn):
			log.Printf("turn %d: %v", g.turn, err)
			command = g.skipTurn()
		default:
			return err
		}

		if _, err := fmt.Fprintln(out, command); err != nil {
			return err
		}
	}
}

func (g *Game) notifyEnd(reason string) {
	end := MatchEnd{
		MatchID: g.matchID,
		Turns:   g.turn,
		MyLife:  g.me.Status.HP,
		OppLife: g.opp.Status.HP,
		Reason:  reason,
		EndedAt: time.Now(),
	}
	for _, o := range g.observers {
		o.ObserveEnd(end)
	}
}

func (g *Game) MatchID() string {
	return g.matchID
}

func (g *Game) Info() GameInfo {
	return g.info
}

func (g *Game) Map() *ocean.Map {
	return g.m
}

func (g *Game) Tracker() *opponent.Tracker {
	return g.tracker
}

func (g *Game) Me() *Player {
	return g.me
}

func (g *Game) Opponent() *Player {
	return g.opp
}

func (g *Game) Tools() *Toolkit {
	return &g.tools
}

func (g *Game) Turn() int {
	return g.turn
}
