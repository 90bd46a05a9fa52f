// Package session implements the session coordinator using the actor pattern.
//
// The Engine owns the utterance buffer, the mood counters, and the active
// source language. Recognizer events, resets, and language switches arrive as
// commands on a single goroutine; the engine fans work out to the scanner,
// the particle pool, and the translation dispatcher. No mutexes.
package session

import (
	"log/slog"
	"strings"

	"github.com/jhemmerl/lingopulse/internal/domain"
	"github.com/jhemmerl/lingopulse/internal/metrics"
	"github.com/jhemmerl/lingopulse/internal/scanner"
)

// ParticleSink is the subset of the particle pool the engine needs.
type ParticleSink interface {
	Spawn(content string, kind domain.ParticleKind)
	ClearAll()
}

// TranslationDispatcher is the subset of the translate dispatcher the engine needs.
type TranslationDispatcher interface {
	TextUpdated(text string)
	SetLanguage(source string)
	Reset()
}

// Snapshot is the session state returned by the API.
type Snapshot struct {
	Finalized string              `json:"finalized"`
	Interim   string              `json:"interim"`
	Source    string              `json:"source"`
	Mood      domain.Mood         `json:"mood"`
	Positive  int                 `json:"positive"`
	Negative  int                 `json:"negative"`
	Status    domain.ListenStatus `json:"status"`
}

// --- Command types ---

type engineCmd interface{ engineCmd() }

type cmdSpeechResult struct {
	result domain.SpeechResult
}

func (cmdSpeechResult) engineCmd() {}

type cmdRecognitionError struct {
	kind domain.RecognitionErrorKind
}

func (cmdRecognitionError) engineCmd() {}

type cmdSetLanguage struct {
	source string
}

func (cmdSetLanguage) engineCmd() {}

type cmdReset struct{}

func (cmdReset) engineCmd() {}

type cmdSnapshot struct {
	replyCh chan Snapshot
}

func (cmdSnapshot) engineCmd() {}

type cmdStop struct {
	doneCh chan struct{}
}

func (cmdStop) engineCmd() {}

// --- Engine ---

type Engine struct {
	cmdCh      chan engineCmd
	scan       *scanner.Scanner
	pool       ParticleSink
	dispatcher TranslationDispatcher
	display    domain.Display

	finalized strings.Builder
	interim   string
	positive  int
	negative  int
	mood      domain.Mood
	source    string
	status    domain.ListenStatus
	disabled  bool
}

// NewEngine creates the session coordinator and starts its actor goroutine.
func NewEngine(scan *scanner.Scanner, pool ParticleSink, dispatcher TranslationDispatcher, display domain.Display, source string) *Engine {
	e := &Engine{
		cmdCh:      make(chan engineCmd, 512),
		scan:       scan,
		pool:       pool,
		dispatcher: dispatcher,
		display:    display,
		mood:       domain.MoodNeutral,
		source:     source,
		status:     domain.StatusListening,
	}
	go e.run()
	return e
}

func (e *Engine) run() {
	for cmd := range e.cmdCh {
		switch c := cmd.(type) {
		case cmdSpeechResult:
			e.handleSpeechResult(c.result)
		case cmdRecognitionError:
			e.handleRecognitionError(c.kind)
		case cmdSetLanguage:
			e.handleSetLanguage(c.source)
		case cmdReset:
			e.clearSession()
			e.dispatcher.Reset()
			slog.Info("Session reset")
		case cmdSnapshot:
			c.replyCh <- Snapshot{
				Finalized: e.finalized.String(),
				Interim:   e.interim,
				Source:    e.source,
				Mood:      e.mood,
				Positive:  e.positive,
				Negative:  e.negative,
				Status:    e.status,
			}
		case cmdStop:
			close(c.doneCh)
			return
		}
	}
}

func (e *Engine) handleSpeechResult(res domain.SpeechResult) {
	if e.disabled {
		return
	}

	if !res.Final {
		metrics.SpeechEventsTotal.WithLabelValues("interim").Inc()
		e.interim = res.Text
		e.display.SetTranscript(e.finalized.String(), e.interim)
		return
	}

	metrics.SpeechEventsTotal.WithLabelValues("final").Inc()
	if res.Text == "" {
		return
	}
	if e.finalized.Len() > 0 {
		e.finalized.WriteByte(' ')
	}
	e.finalized.WriteString(res.Text)
	e.interim = ""
	e.display.SetTranscript(e.finalized.String(), "")

	result := e.scan.Scan(res.Text)
	for _, hit := range result.Hits {
		e.pool.Spawn(hit.Content, hit.Kind)
	}
	e.positive += result.Positive
	e.negative += result.Negative
	e.updateMood()

	e.dispatcher.TextUpdated(e.finalized.String())
}

func (e *Engine) handleRecognitionError(kind domain.RecognitionErrorKind) {
	switch kind {
	case domain.RecognitionUnsupported:
		if e.disabled {
			// Surfaced once only.
			return
		}
		e.disabled = true
		e.status = domain.StatusUnsupported
		e.display.SetStatus(e.status)
		slog.Error("Speech recognition unavailable, listening disabled")
	case domain.RecognitionDenied:
		e.status = domain.StatusDenied
		e.display.SetStatus(e.status)
		slog.Warn("Microphone permission denied, listening stopped")
	case domain.RecognitionNoSpeech:
		// Transient no-input condition, listening continues.
	}
}

func (e *Engine) handleSetLanguage(source string) {
	e.source = source
	e.clearSession()
	e.dispatcher.SetLanguage(source)
	slog.Info("Source language changed", "source", source)
}

// clearSession wipes the utterance buffer, mood, and particles. The
// dispatcher is reset by the caller since language switches need more than a
// plain reset.
func (e *Engine) clearSession() {
	e.finalized.Reset()
	e.interim = ""
	e.positive = 0
	e.negative = 0
	e.pool.ClearAll()
	e.display.SetTranscript("", "")
	if e.mood != domain.MoodNeutral {
		e.mood = domain.MoodNeutral
		e.display.SetMood(e.mood)
	}
}

// updateMood recomputes the three-state mood and pushes it only on change.
func (e *Engine) updateMood() {
	mood := domain.MoodFromNet(e.positive - e.negative)
	if mood != e.mood {
		e.mood = mood
		e.display.SetMood(mood)
	}
}

// --- Public API ---

// HandleSpeech feeds one recognizer event into the session. Fire-and-forget.
func (e *Engine) HandleSpeech(res domain.SpeechResult) {
	e.cmdCh <- cmdSpeechResult{result: res}
}

// HandleRecognitionError feeds a recognizer failure into the session.
func (e *Engine) HandleRecognitionError(kind domain.RecognitionErrorKind) {
	e.cmdCh <- cmdRecognitionError{kind: kind}
}

// SetLanguage switches the source language and clears the session.
func (e *Engine) SetLanguage(source string) {
	e.cmdCh <- cmdSetLanguage{source: source}
}

// Reset clears the session without changing languages.
func (e *Engine) Reset() {
	e.cmdCh <- cmdReset{}
}

// Snapshot returns the current session state. Also serves as a barrier: all
// previously sent commands have been processed when it returns.
func (e *Engine) Snapshot() Snapshot {
	replyCh := make(chan Snapshot, 1)
	e.cmdCh <- cmdSnapshot{replyCh: replyCh}
	return <-replyCh
}

// Stop terminates the actor goroutine.
func (e *Engine) Stop() {
	doneCh := make(chan struct{})
	e.cmdCh <- cmdStop{doneCh: doneCh}
	<-doneCh
}
