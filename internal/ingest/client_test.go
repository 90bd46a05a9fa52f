package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhemmerl/lingopulse/internal/domain"
)

// --- Mocks ---

type mockEngine struct {
	mu     sync.Mutex
	speech []domain.SpeechResult
	errs   []domain.RecognitionErrorKind
}

func (m *mockEngine) HandleSpeech(res domain.SpeechResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.speech = append(m.speech, res)
}

func (m *mockEngine) HandleRecognitionError(kind domain.RecognitionErrorKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = append(m.errs, kind)
}

func (m *mockEngine) getSpeech() []domain.SpeechResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]domain.SpeechResult, len(m.speech))
	copy(cp, m.speech)
	return cp
}

func (m *mockEngine) getErrs() []domain.RecognitionErrorKind {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]domain.RecognitionErrorKind, len(m.errs))
	copy(cp, m.errs)
	return cp
}

// --- Helpers ---

// recognizerServer serves one websocket session per connection, pushing the
// given events and then closing.
func recognizerServer(t *testing.T, events []event) string {
	t.Helper()

	var first atomic.Bool
	first.Store(true)
	upgrader := ws.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Only the first connection gets the scripted events; reconnects
		// just hold the stream open so tests see events exactly once.
		if !first.CompareAndSwap(true, false) {
			<-r.Context().Done()
			return
		}
		for _, ev := range events {
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
		// Give the client a moment to drain before the close handshake.
		time.Sleep(50 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func runClient(t *testing.T, url string, engine *mockEngine) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan struct{})
	go func() {
		NewClient(url, engine).Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("ingest client did not stop")
		}
	})
	return cancel
}

// --- Tests ---

func TestClient_ForwardsSpeechEvents(t *testing.T) {
	engine := &mockEngine{}
	url := recognizerServer(t, []event{
		{Text: "hal", Final: false},
		{Text: "hallo welt", Final: true},
	})
	cancel := runClient(t, url, engine)

	require.Eventually(t, func() bool {
		return len(engine.getSpeech()) == 2
	}, 2*time.Second, 5*time.Millisecond)
	cancel()

	speech := engine.getSpeech()
	assert.Equal(t, domain.SpeechResult{Text: "hal", Final: false}, speech[0])
	assert.Equal(t, domain.SpeechResult{Text: "hallo welt", Final: true}, speech[1])
}

func TestClient_NotAllowedStopsListening(t *testing.T) {
	engine := &mockEngine{}
	url := recognizerServer(t, []event{
		{Error: "not-allowed"},
		{Text: "should never arrive", Final: true},
	})
	runClient(t, url, engine)

	require.Eventually(t, func() bool {
		return len(engine.getErrs()) == 1
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, domain.RecognitionDenied, engine.getErrs()[0])
	assert.Empty(t, engine.getSpeech())
}

func TestClient_NoSpeechIgnoredAndContinues(t *testing.T) {
	engine := &mockEngine{}
	url := recognizerServer(t, []event{
		{Error: "no-speech"},
		{Text: "weiter gehts", Final: true},
	})
	cancel := runClient(t, url, engine)

	require.Eventually(t, func() bool {
		return len(engine.getSpeech()) == 1
	}, 2*time.Second, 5*time.Millisecond)
	cancel()

	assert.Equal(t, []domain.RecognitionErrorKind{domain.RecognitionNoSpeech}, engine.getErrs())
	assert.Equal(t, "weiter gehts", engine.getSpeech()[0].Text)
}

func TestClient_UnreachableRecognizerDisablesFeature(t *testing.T) {
	engine := &mockEngine{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := NewClient("ws://127.0.0.1:1/nope", engine)
	done := make(chan struct{})
	go func() {
		client.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("client did not give up")
	}

	errs := engine.getErrs()
	require.Len(t, errs, 1)
	assert.Equal(t, domain.RecognitionUnsupported, errs[0])
}
