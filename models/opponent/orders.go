package opponent

import (
	"strconv"
	"strings"

	cerr "github.com/saeidalz13/submarine-duel/internal/error"
	"github.com/saeidalz13/submarine-duel/models/ocean"
)

const orderSeparator = "|"

// ParseOrders decodes the opponent's orders of one turn, e.g.
// "MOVE N TORPEDO|TORPEDO 3 5". Orders that reveal nothing about position
// (SONAR, MINE, MSG, NA) yield no observation. Any malformed order fails the
// whole line so the caller can leave the filter untouched.
func ParseOrders(text string) ([]Observation, error) {
	var observations []Observation
	for _, order := range strings.Split(text, orderSeparator) {
		fields := strings.Fields(order)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "MOVE":
			if len(fields) < 2 {
				return nil, cerr.ErrOrderArgument(order)
			}
			dir, ok := ocean.ParseDirection(fields[1])
			if !ok {
				return nil, cerr.ErrOrderArgument(order)
			}
			observations = append(observations, Move(dir))

		case "SURFACE":
			if len(fields) < 2 {
				return nil, cerr.ErrOrderArgument(order)
			}
			sector, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, cerr.ErrOrderArgument(order)
			}
			observations = append(observations, Surface(sector))

		case "SILENCE":
			observations = append(observations, Silence())

		case "TORPEDO", "TRIGGER":
			if len(fields) < 3 {
				return nil, cerr.ErrOrderArgument(order)
			}
			x, errX := strconv.Atoi(fields[1])
			y, errY := strconv.Atoi(fields[2])
			if errX != nil || errY != nil {
				return nil, cerr.ErrOrderArgument(order)
			}
			target := ocean.NewCoordinates(x, y)
			if fields[0] == "TORPEDO" {
				observations = append(observations, Torpedo(target, HitUnknown))
			} else {
				observations = append(observations, Blast(target, HitUnknown))
			}

		case "SONAR", "MINE", "MSG", "NA":
			// nothing positional

		default:
			return nil, cerr.ErrUnknownOrder(order)
		}
	}
	return observations, nil
}

func ParseSonarResult(s string) (SonarResult, error) {
	switch strings.TrimSpace(s) {
	case "Y":
		return SonarFound, nil
	case "N":
		return SonarNotFound, nil
	case "NA", "":
		return SonarNotAvailable, nil
	}
	return SonarNotAvailable, cerr.ErrSonarResult(s)
}
