package sqlc

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/saeidalz13/submarine-duel/models/submarine"
	"github.com/sqlc-dev/pqtype"
)

// AnalyticsManager turns match events into journal rows.
type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) RecordMatch(ctx context.Context, start submarine.MatchStart) error {
	return a.queries.CreateMatch(ctx, CreateMatchParams{
		ID:        start.MatchID,
		Width:     int32(start.Width),
		Height:    int32(start.Height),
		MyID:      int32(start.MyID),
		StartX:    int32(start.StartPosition.X),
		StartY:    int32(start.StartPosition.Y),
		MapRows:   strings.Join(start.Rows, "\n"),
		StartedAt: start.StartedAt,
	})
}

func (a *AnalyticsManager) RecordTurn(ctx context.Context, snapshot submarine.Snapshot) error {
	marks, err := EncodeMarks(snapshot.Marks)
	if err != nil {
		return err
	}

	arg := CreateTurnParams{
		MatchID:    snapshot.MatchID,
		Turn:       int32(snapshot.Turn),
		Epoch:      int32(snapshot.Epoch),
		Candidates: int32(snapshot.Candidates),
		Sector:     int32(snapshot.Sector),
		MyX:        int32(snapshot.Me.Position.X),
		MyY:        int32(snapshot.Me.Position.Y),
		MyHp:       int32(snapshot.Me.HP),
		OppHp:      int32(snapshot.OpponentHP),
		Command:    snapshot.Command,
		Marks:      marks,
		CreatedAt:  snapshot.CreatedAt,
	}
	if snapshot.Collapsed != nil {
		arg.CollapsedX = sql.NullInt32{Int32: int32(snapshot.Collapsed.X), Valid: true}
		arg.CollapsedY = sql.NullInt32{Int32: int32(snapshot.Collapsed.Y), Valid: true}
	}
	return a.queries.CreateTurn(ctx, arg)
}

func (a *AnalyticsManager) FinishMatch(ctx context.Context, end submarine.MatchEnd) error {
	return a.queries.FinishMatch(ctx, FinishMatchParams{
		ID:      end.MatchID,
		EndedAt: end.EndedAt,
		Turns:   int32(end.Turns),
		MyLife:  int32(end.MyLife),
		OppLife: int32(end.OppLife),
		Reason:  end.Reason,
	})
}

func (a *AnalyticsManager) GetMatch(ctx context.Context, matchID string) (Match, error) {
	return a.queries.GetMatch(ctx, matchID)
}

func (a *AnalyticsManager) GetTurnCount(ctx context.Context, matchID string) (int64, error) {
	return a.queries.CountTurns(ctx, matchID)
}

func (a *AnalyticsManager) GetTurns(ctx context.Context, matchID string) ([]Turn, error) {
	return a.queries.ListTurns(ctx, matchID)
}

// EncodeMarks stores the mark grid as JSON rows; a missing grid is NULL.
func EncodeMarks(marks [][]int32) (pqtype.NullRawMessage, error) {
	if marks == nil {
		return pqtype.NullRawMessage{}, nil
	}
	raw, err := json.Marshal(marks)
	if err != nil {
		return pqtype.NullRawMessage{}, err
	}
	return pqtype.NullRawMessage{RawMessage: raw, Valid: true}, nil
}

func DecodeMarks(marks pqtype.NullRawMessage) ([][]int32, error) {
	if !marks.Valid {
		return nil, nil
	}
	var rows [][]int32
	if err := json.Unmarshal(marks.RawMessage, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
