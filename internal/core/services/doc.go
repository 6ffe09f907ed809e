// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The retrieval service is the centre of the application: it owns the
// load -> embed -> index build pipeline and the question -> search ->
// answer query pipeline. The session, settings, watcher and doctor
// services are thin orchestration around it.
package services
