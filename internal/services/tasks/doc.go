// Package tasks is the task-management backend: account registration and
// login, bearer-token identity, and per-account task lists.
//
// Subpackages:
//   - account, task: domain models and input normalization
//   - password: credential hashing
//   - token: signed identity tokens
//   - storage: persistence interfaces and the SQL implementation
//   - service: registration, login, and owner-scoped task rules
//   - api/httpapi: HTTP routes, auth gate, CORS
//   - heartbeat, seed: startup and background jobs
//   - app: server wiring and lifecycle
package tasks
