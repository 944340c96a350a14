// Package delivery defines the contract shared by all transport servers.
package delivery

import "context"

// Delivery is a long-running transport server (HTTP today) started by main.
type Delivery interface {
	Serve(ctx context.Context) error
}
