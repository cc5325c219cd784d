package sqlc

import (
	"context"
	"database/sql"
	"time"

	"github.com/sqlc-dev/pqtype"
)

const createMatch = `INSERT INTO matches (id, width, height, my_id, start_x, start_y, map_rows, started_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type CreateMatchParams struct {
	ID        string
	Width     int32
	Height    int32
	MyID      int32
	StartX    int32
	StartY    int32
	MapRows   string
	StartedAt time.Time
}

func (q *Queries) CreateMatch(ctx context.Context, arg CreateMatchParams) error {
	_, err := q.db.ExecContext(ctx, createMatch,
		arg.ID,
		arg.Width,
		arg.Height,
		arg.MyID,
		arg.StartX,
		arg.StartY,
		arg.MapRows,
		arg.StartedAt,
	)
	return err
}

const createTurn = `INSERT INTO turns (match_id, turn, epoch, candidates, sector, collapsed_x, collapsed_y, my_x, my_y, my_hp, opp_hp, command, marks, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

type CreateTurnParams struct {
	MatchID    string
	Turn       int32
	Epoch      int32
	Candidates int32
	Sector     int32
	CollapsedX sql.NullInt32
	CollapsedY sql.NullInt32
	MyX        int32
	MyY        int32
	MyHp       int32
	OppHp      int32
	Command    string
	Marks      pqtype.NullRawMessage
	CreatedAt  time.Time
}

func (q *Queries) CreateTurn(ctx context.Context, arg CreateTurnParams) error {
	_, err := q.db.ExecContext(ctx, createTurn,
		arg.MatchID,
		arg.Turn,
		arg.Epoch,
		arg.Candidates,
		arg.Sector,
		arg.CollapsedX,
		arg.CollapsedY,
		arg.MyX,
		arg.MyY,
		arg.MyHp,
		arg.OppHp,
		arg.Command,
		arg.Marks,
		arg.CreatedAt,
	)
	return err
}

const finishMatch = `UPDATE matches SET ended_at = $2, turns = $3, my_life = $4, opp_life = $5, reason = $6
WHERE id = $1`

type FinishMatchParams struct {
	ID      string
	EndedAt time.Time
	Turns   int32
	MyLife  int32
	OppLife int32
	Reason  string
}

func (q *Queries) FinishMatch(ctx context.Context, arg FinishMatchParams) error {
	_, err := q.db.ExecContext(ctx, finishMatch,
		arg.ID,
		arg.EndedAt,
		arg.Turns,
		arg.MyLife,
		arg.OppLife,
		arg.Reason,
	)
	return err
}

const getMatch = `SELECT id, width, height, my_id, start_x, start_y, map_rows, started_at, ended_at, turns, my_life, opp_life, reason
FROM matches WHERE id = $1`

func (q *Queries) GetMatch(ctx context.Context, id string) (Match, error) {
	row := q.db.QueryRowContext(ctx, getMatch, id)
	var i Match
	err := row.Scan(
		&i.ID,
		&i.Width,
		&i.Height,
		&i.MyID,
		&i.StartX,
		&i.StartY,
		&i.MapRows,
		&i.StartedAt,
		&i.EndedAt,
		&i.Turns,
		&i.MyLife,
		&i.OppLife,
		&i.Reason,
	)
	return i, err
}

const countTurns = `SELECT COUNT(*) FROM turns WHERE match_id = $1`

func (q *Queries) CountTurns(ctx context.Context, matchID string) (int64, error) {
	row := q.db.QueryRowContext(ctx, countTurns, matchID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listTurns = `SELECT match_id, turn, epoch, candidates, sector, collapsed_x, collapsed_y, my_x, my_y, my_hp, opp_hp, command, marks, created_at
FROM turns WHERE match_id = $1 ORDER BY turn`

func (q *Queries) ListTurns(ctx context.Context, matchID string) ([]Turn, error) {
	rows, err := q.db.QueryContext(ctx, listTurns, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Turn
	for rows.Next() {
		var i Turn
		if err := rows.Scan(
			&i.MatchID,
			&i.Turn,
			&i.Epoch,
			&i.Candidates,
			&i.Sector,
			&i.CollapsedX,
			&i.CollapsedY,
			&i.MyX,
			&i.MyY,
			&i.MyHp,
			&i.OppHp,
			&i.Command,
			&i.Marks,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
