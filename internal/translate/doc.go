// Package translate implements the debounced translation dispatcher and the
// translation provider clients.
//
// The Dispatcher is an actor: text updates restart a fixed debounce window,
// and when the window elapses one batch of concurrent requests goes out, one
// per target language. Results carry a batch generation so late responses for
// a stale batch never overwrite a newer one. Per-target failures leave the
// display slot untouched (stale translation beats a blank slot).
package translate
