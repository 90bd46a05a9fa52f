// Package broadcast implements the overlay WebSocket hub using the actor pattern.
//
// The Hub is the session core's Display: every render command (particle
// append/fade/remove, translation slot update, transcript, mood, status) is
// marshaled to a typed JSON message and fanned out to connected overlay
// clients. Uses single goroutine + command channel (no mutexes). Per-connection
// write goroutines handle slow clients gracefully.
package broadcast
