package sqlc

import (
	"database/sql"
	"time"

	"github.com/sqlc-dev/pqtype"
)

type Match struct {
	ID        string
	Width     int32
	Height    int32
	MyID      int32
	StartX    int32
	StartY    int32
	MapRows   string
	StartedAt time.Time
	EndedAt   sql.NullTime
	Turns     sql.NullInt32
	MyLife    sql.NullInt32
	OppLife   sql.NullInt32
	Reason    sql.NullString
}

type Turn struct {
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
