package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/submarine-duel/internal/error"
	"github.com/saeidalz13/submarine-duel/models/ocean"
	"github.com/saeidalz13/submarine-duel/models/opponent"
)

// Step is the tracker state after one line of the log.
type Step struct {
	Line       int
	Text       string
	Epoch      int
	Candidates int
	Sector     int
	Err        error
}

// ReadMap reads a map given as bare rows; the size comes from the rows.
func ReadMap(r io.Reader, sectorWidth, sectorHeight int) (*ocean.Map, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if row := strings.TrimSpace(scanner.Text()); row != "" {
			rows = append(rows, row)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, cerr.ErrMapDimensions(0, 0)
	}
	return ocean.ParseMap(strings.NewReader(strings.Join(rows, "\n")), len(rows[0]), len(rows), sectorWidth, sectorHeight)
}

// ParseLogLine decodes one line of a recorded match. Lowercase lines are
// our own feedback:
//
//	sonar <sector> <Y|N>
//	blast <x> <y> <none|splash|direct|unknown>
//
// anything else is the opponent's order line for a turn.
func ParseLogLine(line string) ([]opponent.Observation, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}

	switch fields[0] {
	case "sonar":
		if len(fields) != 3 {
			return nil, cerr.ErrOrderArgument(line)
		}
		sector, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, cerr.ErrOrderArgument(line)
		}
		result, err := opponent.ParseSonarResult(fields[2])
		if err != nil {
			return nil, err
		}
		return []opponent.Observation{opponent.Sonar(sector, result)}, nil

	case "blast":
		if len(fields) != 4 {
			return nil, cerr.ErrOrderArgument(line)
		}
		x, errX := strconv.Atoi(fields[1])
		y, errY := strconv.Atoi(fields[2])
		if errX != nil || errY != nil {
			return nil, cerr.ErrOrderArgument(line)
		}
		hit, ok := parseHit(fields[3])
		if !ok {
			return nil, cerr.ErrOrderArgument(line)
		}
		return []opponent.Observation{opponent.Blast(ocean.NewCoordinates(x, y), hit)}, nil
	}
	return opponent.ParseOrders(line)
}

func parseHit(s string) (opponent.Hit, bool) {
	for _, hit := range []opponent.Hit{opponent.HitNone, opponent.HitSplash, opponent.HitDirect, opponent.HitUnknown} {
		if hit.String() == s {
			return hit, true
		}
	}
	return opponent.HitUnknown, false
}

// Replay feeds the log to the tracker line by line. Malformed lines and
// contradictions are recorded in their Step and do not stop the replay.
func Replay(tracker *opponent.Tracker, log io.Reader) ([]Step, error) {
	var steps []Step
	scanner := bufio.NewScanner(log)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		step := Step{Line: n, Text: text}
		observations, err := ParseLogLine(text)
		if err == nil {
			err = tracker.ApplyAll(observations)
		}
		step.Err = err
		step.Epoch = tracker.Epoch()
		step.Candidates = tracker.PossibleCount()
		step.Sector, _ = tracker.MostPopulatedSector()
		steps = append(steps, step)
	}
	return steps, scanner.Err()
}

// Verify rebuilds the tracker from its history and compares both.
func Verify(tracker *opponent.Tracker) error {
	replayed := tracker.Replay()
	if !tracker.SameCandidates(replayed) {
		return fmt.Errorf("incremental and replayed candidates differ: %d vs %d", tracker.PossibleCount(), replayed.PossibleCount())
	}
	if tracker.Epoch() != replayed.Epoch() {
		return fmt.Errorf("incremental and replayed epochs differ: %d vs %d", tracker.Epoch(), replayed.Epoch())
	}
	return nil
}

// Render draws the map with the candidates as 'o'.
func Render(m *ocean.Map, tracker *opponent.Tracker) string {
	lines := m.Lines()
	var sb strings.Builder
	for y, line := range lines {
		row := []byte(line)
		for x := range row {
			if tracker.IsCandidate(ocean.NewCoordinates(x, y)) {
				row[x] = 'o'
			}
		}
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func isContradiction(err error) bool {
	return errors.Is(err, cerr.ErrNoCandidates)
}
