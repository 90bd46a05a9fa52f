// Package server wires the HTTP surface: health and metrics endpoints, the
// overlay page and its websocket, and the small JSON API for feeding speech
// results, switching languages, and resetting the session.
package server
