package integration

import "context"

// SyncResult summarizes one data synchronization run.
type SyncResult struct {
	Success          bool
	RecordsProcessed int
	RecordsSuccess   int
	RecordsError     int
	Errors           []string
}

// Connector is the capability surface every external system integration
// provides. Implementations live in the infrastructure layer.
type Connector interface {
	// Name is the stable identifier the HTTP surface routes by.
	Name() string
	// TestConnection verifies the remote endpoint is reachable.
	TestConnection(ctx context.Context) error
	// Authenticate verifies the configured credentials.
	Authenticate(ctx context.Context) error
	// SyncData pushes or pulls records of the given entity type.
	// forceUpdate overwrites local records that already exist.
	SyncData(ctx context.Context, entityType string, forceUpdate bool) (*SyncResult, error)
}
