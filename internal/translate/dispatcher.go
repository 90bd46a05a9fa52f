package translate

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jhemmerl/lingopulse/internal/domain"
	"github.com/jhemmerl/lingopulse/internal/metrics"
)

const (
	// debounceDelay is how long the transcript must stay unchanged before a
	// translation batch is dispatched.
	debounceDelay = 800 * time.Millisecond

	// maxPayloadRunes bounds outbound payload size; only the transcript tail
	// is translated.
	maxPayloadRunes = 200

	requestTimeout = 10 * time.Second
)

// --- Command types ---

type dispatcherCmd interface{ dispatcherCmd() }

type cmdTextUpdated struct {
	text string
}

func (cmdTextUpdated) dispatcherCmd() {}

type cmdDebounceFired struct{}

func (cmdDebounceFired) dispatcherCmd() {}

type cmdResult struct {
	batch      uint64
	target     string
	translated string
	err        error
}

func (cmdResult) dispatcherCmd() {}

type cmdSetLanguage struct {
	source string
}

func (cmdSetLanguage) dispatcherCmd() {}

type cmdReset struct{}

func (cmdReset) dispatcherCmd() {}

type cmdState struct {
	replyCh chan State
}

func (cmdState) dispatcherCmd() {}

type cmdStop struct {
	doneCh chan struct{}
}

func (cmdStop) dispatcherCmd() {}

// State is a snapshot of the dispatcher's bookkeeping, used by tests and the
// state endpoint.
type State struct {
	Source         string
	Targets        []string
	LastDispatched string
	Pending        bool
}

// --- Dispatcher ---

type Dispatcher struct {
	cmdCh      chan dispatcherCmd
	clock      clockwork.Clock
	translator domain.Translator
	display    domain.Display
	languages  []string

	source         string
	targets        []string
	currentText    string
	lastDispatched string
	armed          bool
	timer          clockwork.Timer
	batchSeq       uint64
}

// NewDispatcher creates a dispatcher for the given language set and starts
// its actor goroutine. Targets are all configured languages minus the source.
func NewDispatcher(clock clockwork.Clock, translator domain.Translator, display domain.Display, languages []string, source string) *Dispatcher {
	d := &Dispatcher{
		cmdCh:      make(chan dispatcherCmd, 256),
		clock:      clock,
		translator: translator,
		display:    display,
		languages:  languages,
		source:     source,
		targets:    targetsFor(languages, source),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	for cmd := range d.cmdCh {
		switch c := cmd.(type) {
		case cmdTextUpdated:
			d.handleTextUpdated(c.text)
		case cmdDebounceFired:
			d.handleDebounceFired()
		case cmdResult:
			d.handleResult(c)
		case cmdSetLanguage:
			d.handleSetLanguage(c.source)
		case cmdReset:
			d.invalidate()
		case cmdState:
			c.replyCh <- State{
				Source:         d.source,
				Targets:        append([]string(nil), d.targets...),
				LastDispatched: d.lastDispatched,
				Pending:        d.armed,
			}
		case cmdStop:
			d.invalidate()
			close(c.doneCh)
			return
		}
	}
}

func (d *Dispatcher) handleTextUpdated(text string) {
	d.currentText = text

	if d.armed {
		d.timer.Reset(debounceDelay)
		metrics.DebounceRestartsTotal.Inc()
		return
	}

	d.armed = true
	if d.timer == nil {
		d.timer = d.clock.AfterFunc(debounceDelay, func() {
			d.cmdCh <- cmdDebounceFired{}
		})
	} else {
		d.timer.Reset(debounceDelay)
	}
}

func (d *Dispatcher) handleDebounceFired() {
	if !d.armed {
		// Window was cancelled by a reset or language switch.
		return
	}
	d.armed = false

	if d.currentText == d.lastDispatched {
		return
	}
	d.lastDispatched = d.currentText

	text := tailRunes(d.currentText, maxPayloadRunes)
	d.batchSeq++
	batch := d.batchSeq
	source := d.source

	metrics.TranslationBatchesTotal.Inc()
	for _, target := range d.targets {
		go d.request(batch, text, source, target)
	}
}

// request runs one translation call and posts the outcome back to the actor.
// Requests within a batch are independent: one failing never delays or blocks
// the others.
func (d *Dispatcher) request(batch uint64, text, source, target string) {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	start := time.Now()
	translated, err := d.translator.Translate(ctx, text, source, target)
	metrics.TranslationRequestDuration.WithLabelValues(target).Observe(time.Since(start).Seconds())

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.TranslationRequestsTotal.WithLabelValues(target, status).Inc()

	d.cmdCh <- cmdResult{batch: batch, target: target, translated: translated, err: err}
}

func (d *Dispatcher) handleResult(c cmdResult) {
	if c.batch != d.batchSeq {
		// Late response for a stale batch; a newer dispatch or a reset
		// has superseded it.
		return
	}
	if c.err != nil {
		// Leave the slot untouched: stale translation beats blanking.
		slog.Debug("Translation request failed", "target", c.target, "error", c.err)
		return
	}
	d.display.SetTranslation(c.target, c.translated)
}

func (d *Dispatcher) handleSetLanguage(source string) {
	d.source = source
	d.targets = targetsFor(d.languages, source)
	d.invalidate()
	d.display.SetTranslationSlots(append([]string(nil), d.targets...))
}

// invalidate cancels any live debounce window and orphans in-flight batches.
func (d *Dispatcher) invalidate() {
	d.currentText = ""
	d.lastDispatched = ""
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
	}
	d.batchSeq++
}

func targetsFor(languages []string, source string) []string {
	targets := make([]string, 0, len(languages))
	for _, lang := range languages {
		if lang != source {
			targets = append(targets, lang)
		}
	}
	return targets
}

// tailRunes returns the last max runes of s.
func tailRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[len(runes)-max:])
}

// --- Public API ---

// TextUpdated restarts the debounce window with the full transcript text.
func (d *Dispatcher) TextUpdated(text string) {
	d.cmdCh <- cmdTextUpdated{text: text}
}

// SetLanguage switches the source language: dispatcher state resets and the
// target slot list is rebuilt to exclude the new source.
func (d *Dispatcher) SetLanguage(source string) {
	d.cmdCh <- cmdSetLanguage{source: source}
}

// Reset clears dispatcher state without changing languages.
func (d *Dispatcher) Reset() {
	d.cmdCh <- cmdReset{}
}

// State returns a snapshot of the dispatcher. Also serves as a barrier: all
// previously sent commands have been processed when it returns.
func (d *Dispatcher) State() State {
	replyCh := make(chan State, 1)
	d.cmdCh <- cmdState{replyCh: replyCh}
	return <-replyCh
}

// Stop terminates the actor goroutine.
func (d *Dispatcher) Stop() {
	doneCh := make(chan struct{})
	d.cmdCh <- cmdStop{doneCh: doneCh}
	<-doneCh
}
