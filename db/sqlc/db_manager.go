package sqlc

import (
	"context"
	"time"
)

// DefaultWriteTimeout bounds one journal statement.
const DefaultWriteTimeout = time.Second * 10

// DbManager bundles the managers sharing one Querier with the timeout
// their statements run under.
type DbManager struct {
	Analytics    *AnalyticsManager
	writeTimeout time.Duration
}

type DbManagerOption func(*DbManager)

func WithWriteTimeout(timeout time.Duration) DbManagerOption {
	return func(dm *DbManager) {
		if timeout > 0 {
			dm.writeTimeout = timeout
		}
	}
}

func NewDbManager(queries Querier, opts ...DbManagerOption) DbManager {
	dm := DbManager{
		Analytics:    NewAnalyticsManager(queries),
		writeTimeout: DefaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(&dm)
	}
	return dm
}

// Context returns parent bounded by the write timeout.
func (dm DbManager) Context(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, dm.writeTimeout)
}

func (dm DbManager) WriteTimeout() time.Duration {
	return dm.writeTimeout
}
