package sqlc

import "context"

type Querier interface {
	CreateMatch(ctx context.Context, arg CreateMatchParams) error
	CreateTurn(ctx context.Context, arg CreateTurnParams) error
	FinishMatch(ctx context.Context, arg FinishMatchParams) error
	GetMatch(ctx context.Context, id string) (Match, error)
	CountTurns(ctx context.Context, matchID string) (int64, error)
	ListTurns(ctx context.Context, matchID string) ([]Turn, error)
}

var _ Querier = (*Queries)(nil)
