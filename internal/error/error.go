package error

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedMap   = errors.New("malformed map")
	ErrMalformedOrder = errors.New("malformed order")
	ErrMalformedTurn  = errors.New("malformed turn info")
	ErrNoCandidates   = errors.New("no candidate position left for the opponent")
	ErrInvalidSector  = errors.New("invalid sector")
	ErrMalformedInfo  = errors.New("malformed game info")
	ErrNoOcean        = errors.New("map has no ocean cell to start from")
)

func ErrMapDimensions(width, height int) error {
	return fmt.Errorf("%w: dimensions must be positive\twidth: %d\theight: %d", ErrMalformedMap, width, height)
}

func ErrSectorTiling(width, height, sectorWidth, sectorHeight int) error {
	return fmt.Errorf("%w: sectors of %dx%d do not tile a %dx%d map", ErrMalformedMap, sectorWidth, sectorHeight, width, height)
}

func ErrMapRowLength(row, expected, got int) error {
	return fmt.Errorf("%w: row %d is too short\texpected: %d\tgot: %d", ErrMalformedMap, row, expected, got)
}

func ErrMapRowMissing(row int) error {
	return fmt.Errorf("%w: row %d is missing", ErrMalformedMap, row)
}

func ErrUnknownOrder(order string) error {
	return fmt.Errorf("%w: unknown command: %q", ErrMalformedOrder, order)
}

func ErrOrderArgument(order string) error {
	return fmt.Errorf("%w: bad or missing argument: %q", ErrMalformedOrder, order)
}

func ErrSectorOutOfRange(sector, count int) error {
	return fmt.Errorf("%w: %d is not in [1, %d]", ErrInvalidSector, sector, count)
}

func ErrSonarResult(result string) error {
	return fmt.Errorf("%w: unknown sonar result: %q", ErrMalformedTurn, result)
}

func ErrTurnField(field string, err error) error {
	return fmt.Errorf("%w: field %s: %v", ErrMalformedTurn, field, err)
}

func ErrGameInfoField(field string, err error) error {
	return fmt.Errorf("%w: field %s: %v", ErrMalformedInfo, field, err)
}

func ErrActorID(id int) error {
	return fmt.Errorf("%w: actor id %d is not in [0, 63]", ErrMalformedInfo, id)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session not found: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session is nil: %s", sessionId)
}

func ErrContradiction(epoch int) error {
	return fmt.Errorf("%w at epoch %d", ErrNoCandidates, epoch)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return fmt.Errorf("incoming x or y is out of game grid bound\tx: %d\ty: %d", x, y)
}
