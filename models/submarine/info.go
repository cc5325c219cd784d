package submarine

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/submarine-duel/internal/error"
)

// GameInfo is the first line of the referee input: "width height myId".
type GameInfo struct {
	Width  int
	Height int
	MyID   int
}

func ParseGameInfo(line string) (GameInfo, error) {
	fields := strings.Fields(line)
	names := []string{"width", "height", "myId"}
	values := make([]int, len(names))
	for i, name := range names {
		if i >= len(fields) {
			return GameInfo{}, cerr.ErrGameInfoField(name, io.ErrUnexpectedEOF)
		}
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return GameInfo{}, cerr.ErrGameInfoField(name, err)
		}
		values[i] = v
	}

	info := GameInfo{Width: values[0], Height: values[1], MyID: values[2]}
	if info.MyID < 0 || info.MyID > 63 {
		return GameInfo{}, cerr.ErrActorID(info.MyID)
	}
	return info, nil
}

// OpponentID mirrors the referee's two player ids.
func (gi GameInfo) OpponentID() int {
	if gi.MyID == 0 {
		return 1
	}
	return 0
}

// TurnInfo is the referee input of one turn: a line of integers, the sonar
// answer, then the opponent's orders.
type TurnInfo struct {
	X               int
	Y               int
	MyLife          int
	OppLife         int
	TorpedoCooldown int
	SonarCooldown   int
	SilenceCooldown int
	MineCooldown    int
	SonarResult     string
	OpponentOrders  string
}

// ReadTurnInfo consumes the three lines of a turn even when the first one
// is malformed. It returns io.EOF when the input closed between turns.
func ReadTurnInfo(r *bufio.Reader) (TurnInfo, error) {
	var line string
	var err error
	for strings.TrimSpace(line) == "" {
		if line, err = readLine(r); err != nil {
			return TurnInfo{}, err
		}
	}

	var ti TurnInfo
	if ti.SonarResult, err = readLine(r); err != nil {
		return TurnInfo{}, cerr.ErrTurnField("sonarResult", err)
	}
	if ti.OpponentOrders, err = readLine(r); err != nil {
		return TurnInfo{}, cerr.ErrTurnField("opponentOrders", err)
	}
	ti.SonarResult = strings.TrimSpace(ti.SonarResult)

	fields := strings.Fields(line)
	targets := []struct {
		name string
		dst  *int
	}{
		{"x", &ti.X},
		{"y", &ti.Y},
		{"myLife", &ti.MyLife},
		{"oppLife", &ti.OppLife},
		{"torpedoCooldown", &ti.TorpedoCooldown},
		{"sonarCooldown", &ti.SonarCooldown},
		{"silenceCooldown", &ti.SilenceCooldown},
		{"mineCooldown", &ti.MineCooldown},
	}
	for i, target := range targets {
		if i >= len(fields) {
			return TurnInfo{}, cerr.ErrTurnField(target.name, io.ErrUnexpectedEOF)
		}
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return TurnInfo{}, cerr.ErrTurnField(target.name, err)
		}
		*target.dst = v
	}
	return ti, nil
}

func (ti TurnInfo) String() string {
	return fmt.Sprintf("pos: (%d %d) hp: %d opp hp: %d cd: t%d s%d si%d m%d sonar: %s orders: %s",
		ti.X, ti.Y, ti.MyLife, ti.OppLife,
		ti.TorpedoCooldown, ti.SonarCooldown, ti.SilenceCooldown, ti.MineCooldown,
		ti.SonarResult, ti.OpponentOrders)
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
