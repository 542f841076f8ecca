// Package blob provides the durable "persist blob under name" primitive the
// store serializes collections into. Drivers live in this package: SQLite for
// the default local file, Postgres for shared deployments, and an in-memory
// map for tests.
package blob

import "context"

// KV is a named-blob store. Get reports absence through its second return
// value rather than an error; absence is a normal state for every key.
type KV interface {
	Get(ctx context.Context, name string) ([]byte, bool, error)
	Put(ctx context.Context, name string, value []byte) error
	Delete(ctx context.Context, name string) error
	Close() error
}
