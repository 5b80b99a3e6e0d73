// Package ports defines the interfaces (ports) that connect the lifecycle
// bridge to the renderer and to infrastructure adapters.
//
// # Port Interfaces
//
//   - [Renderer]: commands issued to the renderer goroutine
//   - [AnomalyObserver]: receives protocol anomalies absorbed by the bridge
//   - [PreferencesSource]: loads the current scene preferences
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with the
// goroutine-backed renderer, zerolog, the TOML preferences file, etc.
package ports
