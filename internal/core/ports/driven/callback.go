package driven

import "context"

// CallbackReceiver receives the authorization redirect.
type CallbackReceiver interface {
	// Start begins listening for the redirect.
	Start() error

	// WaitForCode blocks until the authorization code arrives, the identity
	// provider reports an error, or ctx is done.
	WaitForCode(ctx context.Context) (string, error)

	// Stop shuts the listener down.
	Stop() error
}
