package submarine

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/saeidalz13/submarine-duel/models/ocean"
	"github.com/saeidalz13/submarine-duel/models/opponent"
)

type recordingObserver struct {
	starts []MatchStart
	turns  []Snapshot
	ends   []MatchEnd
}

func (r *recordingObserver) ObserveStart(s MatchStart) { r.starts = append(r.starts, s) }
func (r *recordingObserver) ObserveTurn(s Snapshot)    { r.turns = append(r.turns, s) }
func (r *recordingObserver) ObserveEnd(e MatchEnd)     { r.ends = append(r.ends, e) }

func openRows(width, height int) []string {
	rows := make([]string, height)
	for i := range rows {
		rows[i] = strings.Repeat(".", width)
	}
	return rows
}

func newTestGame(t *testing.T, myID int, rows []string, opts ...Option) *Game {
	t.Helper()
	header := fmt.Sprintf("%d %d %d", len(rows[0]), len(rows), myID)
	input := header + "\n" + strings.Join(rows, "\n") + "\n"

	opts = append([]Option{WithRand(rand.New(rand.NewSource(1))), WithMatchID("test")}, opts...)
	g := NewGame(opts...)
	if err := g.Init(bufio.NewReader(strings.NewReader(input))); err != nil {
		t.Fatal(err)
	}
	return g
}

func turnAt(x, y int) TurnInfo {
	return TurnInfo{
		X: x, Y: y, MyLife: 6, OppLife: 6,
		TorpedoCooldown: -1, SonarCooldown: -1, SilenceCooldown: -1, MineCooldown: -1,
		SonarResult: "NA", OpponentOrders: "NA",
	}
}

func TestInit(t *testing.T) {
	g := newTestGame(t, 1, openRows(10, 5))
	if g.Map().Width() != 10 || g.Map().Height() != 5 {
		t.Fatalf("expected map: 10x5\t got: %dx%d", g.Map().Width(), g.Map().Height())
	}
	if g.Me().ID != 1 || g.Opponent().ID != 0 {
		t.Fatalf("expected ids 1 and 0, got %d and %d", g.Me().ID, g.Opponent().ID)
	}
	if g.Tracker().PossibleCount() != 50 {
		t.Fatalf("expected candidates: %d\t got: %d", 50, g.Tracker().PossibleCount())
	}
}

func TestInitRejectsBadMaps(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "no header", input: ""},
		{name: "row missing", input: "5 5 0\n.....\n.....\n"},
		{name: "row too short", input: "5 5 0\n.....\n...\n.....\n.....\n.....\n"},
		{name: "sectors do not tile", input: "7 5 0\n.......\n.......\n.......\n.......\n.......\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := NewGame()
			if err := g.Init(bufio.NewReader(strings.NewReader(test.input))); err == nil {
				t.Fatal("expected init to fail")
			}
		})
	}
}

func TestChooseStartPosition(t *testing.T) {
	rows := []string{
		"..x..",
		"..x..",
		"xxx..",
		".....",
		".....",
	}

	for seed := int64(0); seed < 5; seed++ {
		g := newTestGame(t, 0, rows, WithRand(rand.New(rand.NewSource(seed))))
		pos, err := g.ChooseStartPosition()
		if err != nil {
			t.Fatal(err)
		}
		if g.Map().FreeRegionSize(pos, 0) != 16 {
			t.Fatalf("expected %v to lie in the 16 cell region", pos)
		}
		if acc := g.Map().Accessibility(pos, 0); acc != 2 {
			t.Fatalf("expected accessibility: %d\t got: %d", 2, acc)
		}
	}
}

func TestChooseStartPositionWithoutOcean(t *testing.T) {
	g := newTestGame(t, 0, []string{"xxxxx", "xxxxx", "xxxxx", "xxxxx", "xxxxx"})
	if _, err := g.ChooseStartPosition(); err == nil {
		t.Fatal("expected an error on a map without ocean")
	}
}

func TestRun(t *testing.T) {
	rows := openRows(10, 10)
	input := "10 10 0\n" + strings.Join(rows, "\n") + "\n" +
		"5 5 6 6 -1 -1 -1 -1\nNA\nNA\n"
	observer := &recordingObserver{}
	g := NewGame(WithRand(rand.New(rand.NewSource(7))), WithMatchID("match"), WithObserver(observer))

	var out bytes.Buffer
	if err := g.Run(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %q", lines)
	}
	corners := map[string]bool{"0 0": true, "9 0": true, "0 9": true, "9 9": true}
	if !corners[lines[0]] {
		t.Fatalf("expected a corner start, got %q", lines[0])
	}
	if lines[1] != "MOVE N|MSG 100" {
		t.Fatalf("expected: %q\t got: %q", "MOVE N|MSG 100", lines[1])
	}

	if len(observer.starts) != 1 || len(observer.turns) != 1 || len(observer.ends) != 1 {
		t.Fatalf("expected 1 start, 1 turn, 1 end, got %d %d %d", len(observer.starts), len(observer.turns), len(observer.ends))
	}
	if observer.starts[0].MatchID != "match" || len(observer.starts[0].Rows) != 10 {
		t.Fatalf("unexpected start: %+v", observer.starts[0])
	}
	snapshot := observer.turns[0]
	if snapshot.Command != lines[1] || snapshot.Candidates != 100 || len(snapshot.Marks) != 10 {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}
	if observer.ends[0].Turns != 1 || observer.ends[0].Reason != "input closed" {
		t.Fatalf("unexpected end: %+v", observer.ends[0])
	}
}

func TestRunAnswersMalformedTurns(t *testing.T) {
	input := "5 5 0\n" + strings.Join(openRows(5, 5), "\n") + "\n" +
		"5 five 6 6 -1 -1 -1 -1\nNA\nNA\n"
	g := NewGame(WithRand(rand.New(rand.NewSource(3))))

	var out bytes.Buffer
	if err := g.Run(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[1], "MSG 25") {
		t.Fatalf("expected an answer to the malformed turn, got %q", lines)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	input := "5 5 0\n" + strings.Join(openRows(5, 5), "\n") + "\n" +
		"0 0 6 6 -1 -1 -1 -1\nNA\nNA\n"
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if err := NewGame().Run(ctx, strings.NewReader(input), &out); err != context.Canceled {
		t.Fatalf("expected: %v\t got: %v", context.Canceled, err)
	}
}

func TestUpdateAppliesOpponentOrders(t *testing.T) {
	g := newTestGame(t, 0, openRows(10, 10))
	ti := turnAt(0, 0)
	ti.OpponentOrders = "SURFACE 4|MOVE N"
	g.Update(ti)

	// the 25 cells of sector 4 shift one row north
	if g.Tracker().PossibleCount() != 25 {
		t.Fatalf("expected candidates: %d\t got: %d", 25, g.Tracker().PossibleCount())
	}
	if !g.Tracker().IsCandidate(ocean.NewCoordinates(7, 4)) || g.Tracker().IsCandidate(ocean.NewCoordinates(7, 9)) {
		t.Fatal("expected the surfaced sector to shift north by one row")
	}
	if !g.Map().IsVisited(ocean.NewCoordinates(0, 0), 0) {
		t.Fatal("expected our position to be marked visited")
	}
}

func TestUpdateIgnoresMalformedOrders(t *testing.T) {
	g := newTestGame(t, 0, openRows(10, 10))
	ti := turnAt(0, 0)
	ti.OpponentOrders = "MOVE N|SURFACE"
	g.Update(ti)

	if g.Tracker().PossibleCount() != 100 || g.Tracker().Epoch() != 0 {
		t.Fatalf("expected untouched tracker, got %d candidates at epoch %d", g.Tracker().PossibleCount(), g.Tracker().Epoch())
	}
}

func TestSonarRoundTrip(t *testing.T) {
	g := newTestGame(t, 0, openRows(10, 10))
	ti := turnAt(0, 0)
	ti.SonarCooldown = 0
	g.Update(ti)

	command := g.Decide()
	if !strings.HasPrefix(command, "SONAR 1|") {
		t.Fatalf("expected a sonar on sector 1, got %q", command)
	}

	ti = turnAt(0, 1)
	ti.SonarCooldown = 4
	ti.SonarResult = "N"
	g.Update(ti)

	if g.Tracker().PossibleCount() != 75 {
		t.Fatalf("expected candidates: %d\t got: %d", 75, g.Tracker().PossibleCount())
	}
	if _, ok := g.Tools().Sonar.RequestedSector(); ok {
		t.Fatal("expected the sonar request to be consumed")
	}
}

func TestNoSonarWhenOneSectorHoldsEveryCandidate(t *testing.T) {
	g := newTestGame(t, 0, openRows(10, 10))
	ti := turnAt(0, 0)
	ti.SonarCooldown = 0
	ti.OpponentOrders = "SURFACE 2"
	g.Update(ti)

	if command := g.Decide(); strings.Contains(command, "SONAR") {
		t.Fatalf("expected no sonar, got %q", command)
	}
}

func TestTorpedoOnCollapsedOpponent(t *testing.T) {
	g := newTestGame(t, 0, openRows(15, 15))
	ti := turnAt(7, 7)
	ti.TorpedoCooldown = 0
	g.Update(ti)
	if err := g.Tracker().Apply(opponent.Blast(ocean.NewCoordinates(9, 7), opponent.HitDirect)); err != nil {
		t.Fatal(err)
	}

	command := g.Decide()
	if command != "TORPEDO 9 7|MOVE N|MSG 1" {
		t.Fatalf("expected: %q\t got: %q", "TORPEDO 9 7|MOVE N|MSG 1", command)
	}

	tests := []struct {
		name      string
		oppLife   int
		collapsed bool
	}{
		{name: "direct hit confirms", oppLife: 4, collapsed: true},
		{name: "splash keeps the center", oppLife: 5, collapsed: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			game := *g
			game.tracker = g.Tracker().Replay()
			game.opp = NewPlayer(1)
			game.opp.Status.HP = 6
			game.tools.Torpedo.FireAt(ocean.NewCoordinates(9, 7))

			next := turnAt(7, 6)
			next.OppLife = test.oppLife
			next.OpponentOrders = "MOVE E"
			game.Update(next)

			pos, ok := game.Tracker().CollapsedPosition()
			if ok != test.collapsed || pos != ocean.NewCoordinates(10, 7) {
				t.Fatalf("expected collapse on %v, got %v (ok=%t)", ocean.NewCoordinates(10, 7), pos, ok)
			}
			if game.Opponent().Status.Position != pos {
				t.Fatalf("expected opponent position: %v\t got: %v", pos, game.Opponent().Status.Position)
			}
		})
	}
}

func TestCanFireAt(t *testing.T) {
	tests := []struct {
		name     string
		target   ocean.Coordinates
		myLife   int
		oppLife  int
		expected bool
	}{
		{name: "in range", target: ocean.NewCoordinates(7, 11), myLife: 6, oppLife: 6, expected: true},
		{name: "out of range", target: ocean.NewCoordinates(7, 12), myLife: 6, oppLife: 6, expected: false},
		{name: "inside own blast", target: ocean.NewCoordinates(8, 8), myLife: 6, oppLife: 6, expected: false},
		{name: "inside own blast but ahead", target: ocean.NewCoordinates(8, 8), myLife: 6, oppLife: 3, expected: true},
		{name: "behind the island", target: ocean.NewCoordinates(3, 7), myLife: 6, oppLife: 6, expected: false},
		{name: "diagonal beyond travel", target: ocean.NewCoordinates(10, 10), myLife: 6, oppLife: 6, expected: false},
		{name: "diagonal within travel", target: ocean.NewCoordinates(9, 9), myLife: 6, oppLife: 6, expected: true},
	}

	rows := openRows(15, 15)
	rows[7] = "....x.........."
	rows[6] = "....x.........."
	rows[8] = "....x.........."
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := newTestGame(t, 0, rows)
			g.me.Status = Status{Position: ocean.NewCoordinates(7, 7), HP: test.myLife}
			g.opp.Status.HP = test.oppLife
			if got := g.canFireAt(test.target); got != test.expected {
				t.Fatalf("expected: %t\t got: %t", test.expected, got)
			}
		})
	}
}

func TestAttributeDamage(t *testing.T) {
	torpedo := opponent.Torpedo(ocean.NewCoordinates(1, 1), opponent.HitUnknown)
	tests := []struct {
		name        string
		prevHP      int
		hp          int
		ourShot     bool
		skipped     bool
		orders      []opponent.Observation
		expected    opponent.Hit
		expectedOpp opponent.Hit
	}{
		{name: "health unknown", prevHP: -1, hp: 6, ourShot: true, expected: opponent.HitUnknown},
		{name: "our direct hit", prevHP: 6, hp: 4, ourShot: true, expected: opponent.HitDirect},
		{name: "our splash", prevHP: 6, hp: 5, ourShot: true, expected: opponent.HitSplash},
		{name: "our miss", prevHP: 6, hp: 6, ourShot: true, expected: opponent.HitNone},
		{
			name: "two explosions no damage", prevHP: 6, hp: 6, ourShot: true,
			orders:   []opponent.Observation{torpedo},
			expected: opponent.HitNone, expectedOpp: opponent.HitNone,
		},
		{
			name: "two explosions with damage", prevHP: 6, hp: 4, ourShot: true,
			orders:   []opponent.Observation{torpedo},
			expected: opponent.HitUnknown, expectedOpp: opponent.HitUnknown,
		},
		{
			name: "surface then self splash", prevHP: 6, hp: 4,
			orders:   []opponent.Observation{opponent.Surface(1), torpedo},
			expected: opponent.HitSplash, expectedOpp: opponent.HitSplash,
		},
		{
			name: "surface only", prevHP: 6, hp: 5,
			orders:   []opponent.Observation{opponent.Surface(1)},
			expected: opponent.HitUnknown,
		},
		{name: "previous turn skipped", prevHP: 6, hp: 4, ourShot: true, skipped: true, expected: opponent.HitUnknown},
		{
			name: "previous turn skipped no damage", prevHP: 6, hp: 6, ourShot: true, skipped: true,
			orders:   []opponent.Observation{torpedo},
			expected: opponent.HitUnknown, expectedOpp: opponent.HitUnknown,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := NewGame()
			g.skipped = test.skipped
			g.opp = NewPlayer(1)
			g.opp.Status.HP = test.prevHP
			g.opp.SaveStatus()
			g.opp.Status.HP = test.hp

			orders := append([]opponent.Observation(nil), test.orders...)
			if got := g.attributeDamage(test.ourShot, orders); got != test.expected {
				t.Fatalf("expected: %s\t got: %s", test.expected, got)
			}
			for _, o := range orders {
				if o.Kind == opponent.KindTorpedo && o.Hit != test.expectedOpp {
					t.Fatalf("expected opponent torpedo: %s\t got: %s", test.expectedOpp, o.Hit)
				}
			}
		})
	}
}

func TestSurfaceWhenBoxedIn(t *testing.T) {
	rows := []string{
		".x...",
		"xx...",
		".....",
		".....",
		".....",
	}
	g := newTestGame(t, 0, rows)
	g.Update(turnAt(0, 0))

	command := g.Decide()
	if command != "SURFACE|MSG 22" {
		t.Fatalf("expected: %q\t got: %q", "SURFACE|MSG 22", command)
	}
	if g.Map().IsVisited(ocean.NewCoordinates(0, 0), 0) {
		t.Fatal("expected surface to clear our trail")
	}
}

func TestSilenceOnInterval(t *testing.T) {
	settings := DefaultSettings
	settings.SilenceInterval = 1
	g := newTestGame(t, 0, openRows(10, 10), WithSettings(settings))
	ti := turnAt(5, 5)
	ti.SilenceCooldown = 0
	g.Update(ti)

	command := g.Decide()
	if command != "SILENCE N 0|MSG 100" && command != "SILENCE N 1|MSG 100" {
		t.Fatalf("expected a silent jump north, got %q", command)
	}
	if strings.HasPrefix(command, "SILENCE N 1") && !g.Map().IsVisited(ocean.NewCoordinates(5, 4), 0) {
		t.Fatal("expected the jumped cell to be marked visited")
	}
}

func TestPursuitRoutesTowardDistantTarget(t *testing.T) {
	g := newTestGame(t, 0, openRows(15, 15))
	g.Update(turnAt(0, 7))
	if err := g.Tracker().Apply(opponent.Blast(ocean.NewCoordinates(12, 7), opponent.HitDirect)); err != nil {
		t.Fatal(err)
	}

	command := g.Decide()
	if command != "MOVE E|MSG 1" {
		t.Fatalf("expected: %q\t got: %q", "MOVE E|MSG 1", command)
	}
}

func TestSkippedTurnLeavesOurShotUnclassified(t *testing.T) {
	tests := []struct {
		name     string
		skip     bool
		oppLife  int
		expected int
	}{
		// a miss from (9,7) clears its 3x3 footprint
		{name: "read turn", skip: false, oppLife: 6, expected: 225 - 9},
		{name: "after a skipped turn", skip: true, oppLife: 6, expected: 225},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			g := newTestGame(t, 0, openRows(15, 15))
			g.Update(turnAt(7, 7))
			if test.skip {
				g.skipTurn()
			}
			g.tools.Torpedo.FireAt(ocean.NewCoordinates(9, 7))

			next := turnAt(7, 7)
			next.OppLife = test.oppLife
			g.Update(next)

			if g.Tracker().PossibleCount() != test.expected {
				t.Fatalf("expected candidates: %d\t got: %d", test.expected, g.Tracker().PossibleCount())
			}
			if g.skipped {
				t.Fatal("expected the skip to clear after a read turn")
			}
		})
	}
}
