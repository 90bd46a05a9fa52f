// Package ingest connects to the external speech recognizer bridge and feeds
// its events into the session engine.
//
// The recognizer speaks a small JSON protocol over websocket: {"text", "final"}
// result events and {"error"} condition events. The client owns continuous
// listening: a dropped stream reconnects with backoff, mirroring a recognizer
// that restarts itself after transient end-of-input.
package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jhemmerl/lingopulse/internal/domain"
	"github.com/jhemmerl/lingopulse/internal/metrics"
	"github.com/jhemmerl/lingopulse/internal/platform/retry"
)

// SessionEngine is the subset of the session engine the client needs.
type SessionEngine interface {
	HandleSpeech(res domain.SpeechResult)
	HandleRecognitionError(kind domain.RecognitionErrorKind)
}

// event is one message from the recognizer bridge.
type event struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
	Error string `json:"error,omitempty"`
}

// Recognizer error conditions, matching the Web Speech API error names the
// bridge forwards.
const (
	errNotAllowed        = "not-allowed"
	errServiceNotAllowed = "service-not-allowed"
	errNoSpeech          = "no-speech"
	errAudioCapture      = "audio-capture"
)

var connectPolicy = retry.Policy{
	MaxAttempts:      5,
	InitialBackoff:   500 * time.Millisecond,
	RateLimitBackoff: 5 * time.Second,
}

type Client struct {
	url    string
	engine SessionEngine
	dialer *websocket.Dialer
}

func NewClient(url string, engine SessionEngine) *Client {
	return &Client{
		url:    url,
		engine: engine,
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

// Run consumes recognizer events until ctx is cancelled, listening stops for
// good, or the recognizer proves unreachable. Blocking; run in a goroutine.
func (c *Client) Run(ctx context.Context) {
	for {
		conn, err := c.connect(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			// No speech capability reachable: fatal to the listening
			// feature, surfaced once by the engine.
			slog.Error("Recognizer unreachable, disabling listening", "url", c.url, "error", err)
			c.engine.HandleRecognitionError(domain.RecognitionUnsupported)
			return
		}

		stop := c.readLoop(ctx, conn)
		conn.Close()
		if stop || ctx.Err() != nil {
			return
		}

		metrics.RecognizerReconnectsTotal.Inc()
		slog.Info("Recognizer stream ended, reconnecting")
	}
}

func (c *Client) connect(ctx context.Context) (*websocket.Conn, error) {
	classify := func(err error) retry.Action {
		if ctx.Err() != nil {
			return retry.Stop
		}
		return retry.Retry
	}

	policy := connectPolicy
	policy.OnRetry = func(attempt int, err error, backoff time.Duration) {
		slog.Warn("Recognizer dial failed, retrying", "attempt", attempt, "backoff", backoff, "error", err)
	}

	return retry.Do(ctx, policy, classify, func() (*websocket.Conn, error) {
		conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
		return conn, err
	})
}

// readLoop consumes events until the stream breaks. Returns true when
// listening must not be restarted.
func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) bool {
	for {
		var ev event
		if err := conn.ReadJSON(&ev); err != nil {
			return false
		}

		if ev.Error != "" {
			switch ev.Error {
			case errNotAllowed, errServiceNotAllowed:
				c.engine.HandleRecognitionError(domain.RecognitionDenied)
				return true
			case errNoSpeech:
				// Transient no-input, listening continues.
				c.engine.HandleRecognitionError(domain.RecognitionNoSpeech)
			case errAudioCapture:
				c.engine.HandleRecognitionError(domain.RecognitionUnsupported)
				return true
			default:
				slog.Warn("Recognizer reported unknown error", "error", ev.Error)
			}
			continue
		}

		c.engine.HandleSpeech(domain.SpeechResult{Text: ev.Text, Final: ev.Final})
	}
}
