package ports

import "github.com/bft-labs/wallbridge/internal/domain"

// Renderer is the command interface of the renderer goroutine.
//
// Every call is synchronous from the caller's point of view: the
// implementation marshals it onto the renderer goroutine and returns once
// the goroutine has processed it. Calls are delivered in the order they
// were issued. Failures are reported by the renderer through its own
// channel, never to the caller.
type Renderer interface {
	// Connect acquires renderer goroutine resources.
	// Only issued on the transition from zero to one connection.
	Connect()

	// Disconnect releases renderer goroutine resources.
	// Only issued on the transition from one to zero connections.
	Disconnect()

	// Start binds rendering output to the surface. Only valid while connected.
	Start(surface domain.Surface)

	// Stop unbinds rendering output. Safe on an unbound renderer.
	Stop()

	// Resize updates the viewport dimensions.
	Resize(width, height int)

	// Pause suspends the graphics context without releasing the surface binding.
	Pause()

	// Resume restores the graphics context.
	Resume()

	// PreferencesChanged signals that scene preferences should be reloaded.
	PreferencesChanged()
}
