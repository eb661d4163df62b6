package interfaces

import "context"

// IOTPStore holds short-lived one-time codes keyed by mail address. Entries
// expire on their own; Delete makes a redeemed code single-use.

type IOTPStore interface {
	Put(ctx context.Context, mail, code string) error
	Get(ctx context.Context, mail string) (code string, found bool, err error)
	Delete(ctx context.Context, mail string) error
}
