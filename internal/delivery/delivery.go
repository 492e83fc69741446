// Package delivery defines the transport-agnostic entry points of the
// application. Each delivery (HTTP today) is started by the fx runtime.
package delivery

import "context"

// Delivery is a long-running transport serving the application.
type Delivery interface {
	Serve(ctx context.Context) error
}
