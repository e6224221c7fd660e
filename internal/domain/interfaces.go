package domain

import "context"

// SnapshotProvider loads a consistent read-only snapshot of trades, accounts,
// securities, risk groups and holidays for one pipeline run
type SnapshotProvider interface {
	Load(ctx context.Context) (Snapshot, error)
}
