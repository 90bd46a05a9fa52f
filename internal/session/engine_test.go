package session

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhemmerl/lingopulse/internal/domain"
	"github.com/jhemmerl/lingopulse/internal/lexicon"
	"github.com/jhemmerl/lingopulse/internal/scanner"
)

// --- Mocks ---

type spawnCall struct {
	Content string
	Kind    domain.ParticleKind
}

type mockPool struct {
	mu     sync.Mutex
	spawns []spawnCall
	clears int
}

func (m *mockPool) Spawn(content string, kind domain.ParticleKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spawns = append(m.spawns, spawnCall{Content: content, Kind: kind})
}

func (m *mockPool) ClearAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
}

func (m *mockPool) getSpawns() []spawnCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]spawnCall, len(m.spawns))
	copy(cp, m.spawns)
	return cp
}

func (m *mockPool) getClears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}

type mockDispatcher struct {
	mu        sync.Mutex
	updates   []string
	languages []string
	resets    int
}

func (m *mockDispatcher) TextUpdated(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, text)
}

func (m *mockDispatcher) SetLanguage(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.languages = append(m.languages, source)
}

func (m *mockDispatcher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets++
}

func (m *mockDispatcher) getUpdates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]string, len(m.updates))
	copy(cp, m.updates)
	return cp
}

func (m *mockDispatcher) getLanguages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]string, len(m.languages))
	copy(cp, m.languages)
	return cp
}

func (m *mockDispatcher) getResets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}

type mockDisplay struct {
	mu       sync.Mutex
	moods    []domain.Mood
	statuses []domain.ListenStatus
}

func (m *mockDisplay) SetMood(mood domain.Mood) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moods = append(m.moods, mood)
}

func (m *mockDisplay) SetStatus(s domain.ListenStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statuses = append(m.statuses, s)
}

func (m *mockDisplay) AppendParticle(domain.Particle) {}
func (m *mockDisplay) FadeParticle(uuid.UUID)         {}
func (m *mockDisplay) RemoveParticle(uuid.UUID)       {}
func (m *mockDisplay) ClearParticles()                {}
func (m *mockDisplay) SetTranslation(string, string)  {}
func (m *mockDisplay) SetTranslationSlots([]string)   {}
func (m *mockDisplay) SetTranscript(string, string)   {}

func (m *mockDisplay) getMoods() []domain.Mood {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]domain.Mood, len(m.moods))
	copy(cp, m.moods)
	return cp
}

func (m *mockDisplay) getStatuses() []domain.ListenStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]domain.ListenStatus, len(m.statuses))
	copy(cp, m.statuses)
	return cp
}

// --- Helpers ---

func testLexicon() *lexicon.Lexicon {
	return lexicon.New(
		map[string]string{"guten morgen": "🌅"},
		map[string]string{"liebe": "❤️"},
		[]string{"liebe", "toll", "super"},
		[]string{"hass", "schlecht", "furchtbar"},
	)
}

type testEngine struct {
	engine     *Engine
	pool       *mockPool
	dispatcher *mockDispatcher
	display    *mockDisplay
}

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()
	pool := &mockPool{}
	dispatcher := &mockDispatcher{}
	display := &mockDisplay{}
	engine := NewEngine(scanner.New(testLexicon()), pool, dispatcher, display, "de")
	t.Cleanup(engine.Stop)
	return &testEngine{engine: engine, pool: pool, dispatcher: dispatcher, display: display}
}

func (te *testEngine) final(text string) {
	te.engine.HandleSpeech(domain.SpeechResult{Text: text, Final: true})
}

// --- Tests ---

func TestEngine_FinalTextAccumulates(t *testing.T) {
	te := newTestEngine(t)

	te.final("hallo welt")
	te.final("wie geht es")

	snap := te.engine.Snapshot()
	assert.Equal(t, "hallo welt wie geht es", snap.Finalized)
	assert.Equal(t, "", snap.Interim)
	assert.Equal(t, []string{"hallo welt", "hallo welt wie geht es"}, te.dispatcher.getUpdates())
}

func TestEngine_InterimReplacedNotAccumulated(t *testing.T) {
	te := newTestEngine(t)

	te.engine.HandleSpeech(domain.SpeechResult{Text: "hal", Final: false})
	te.engine.HandleSpeech(domain.SpeechResult{Text: "hallo", Final: false})

	snap := te.engine.Snapshot()
	assert.Equal(t, "", snap.Finalized)
	assert.Equal(t, "hallo", snap.Interim)
	// Interim text never reaches the dispatcher.
	assert.Empty(t, te.dispatcher.getUpdates())
	assert.Empty(t, te.pool.getSpawns())
}

func TestEngine_ScanSpawnsParticlesAndCounts(t *testing.T) {
	te := newTestEngine(t)

	te.final("ich liebe das")

	snap := te.engine.Snapshot()
	assert.Equal(t, 1, snap.Positive)
	assert.Equal(t, 0, snap.Negative)
	assert.Equal(t, domain.MoodNeutral, snap.Mood)

	spawns := te.pool.getSpawns()
	require.Len(t, spawns, 1)
	assert.Equal(t, "❤️", spawns[0].Content)
	assert.Equal(t, domain.ParticleEmoji, spawns[0].Kind)
}

func TestEngine_MoodTurnsPositiveAboveThreshold(t *testing.T) {
	te := newTestEngine(t)

	te.final("liebe toll super")
	snap := te.engine.Snapshot()
	assert.Equal(t, 3, snap.Positive)
	assert.Equal(t, domain.MoodPositive, snap.Mood)
	assert.Equal(t, []domain.Mood{domain.MoodPositive}, te.display.getMoods())
}

func TestEngine_MoodTurnsNegativeBelowThreshold(t *testing.T) {
	te := newTestEngine(t)

	te.final("hass schlecht furchtbar")
	assert.Equal(t, domain.MoodNegative, te.engine.Snapshot().Mood)
}

func TestEngine_MoodReturnsToNeutral(t *testing.T) {
	te := newTestEngine(t)

	te.final("liebe toll super")
	require.Equal(t, domain.MoodPositive, te.engine.Snapshot().Mood)

	te.final("hass")
	snap := te.engine.Snapshot()
	assert.Equal(t, 3, snap.Positive)
	assert.Equal(t, 1, snap.Negative)
	assert.Equal(t, domain.MoodNeutral, snap.Mood)
	assert.Equal(t, []domain.Mood{domain.MoodPositive, domain.MoodNeutral}, te.display.getMoods())
}

func TestEngine_MoodPushedOnlyOnChange(t *testing.T) {
	te := newTestEngine(t)

	te.final("liebe toll super")
	te.final("liebe")
	te.engine.Snapshot()

	// Still positive, no second push.
	assert.Equal(t, []domain.Mood{domain.MoodPositive}, te.display.getMoods())
}

func TestEngine_ResetClearsEverything(t *testing.T) {
	te := newTestEngine(t)

	te.final("liebe toll super hallo")
	te.engine.Reset()

	snap := te.engine.Snapshot()
	assert.Equal(t, "", snap.Finalized)
	assert.Equal(t, 0, snap.Positive)
	assert.Equal(t, 0, snap.Negative)
	assert.Equal(t, domain.MoodNeutral, snap.Mood)
	assert.Equal(t, 1, te.pool.getClears())
	assert.Equal(t, 1, te.dispatcher.getResets())
}

func TestEngine_SetLanguageClearsAndRebuilds(t *testing.T) {
	te := newTestEngine(t)

	te.final("hallo welt")
	te.engine.SetLanguage("en")

	snap := te.engine.Snapshot()
	assert.Equal(t, "en", snap.Source)
	assert.Equal(t, "", snap.Finalized)
	assert.Equal(t, 1, te.pool.getClears())
	assert.Equal(t, []string{"en"}, te.dispatcher.getLanguages())
	// Language switch goes through SetLanguage, not a plain reset.
	assert.Equal(t, 0, te.dispatcher.getResets())
}

func TestEngine_UnsupportedDisablesAndSurfacesOnce(t *testing.T) {
	te := newTestEngine(t)

	te.engine.HandleRecognitionError(domain.RecognitionUnsupported)
	te.engine.HandleRecognitionError(domain.RecognitionUnsupported)
	te.final("hallo welt")

	snap := te.engine.Snapshot()
	assert.Equal(t, domain.StatusUnsupported, snap.Status)
	// Speech after the fatal error is ignored.
	assert.Equal(t, "", snap.Finalized)
	assert.Equal(t, []domain.ListenStatus{domain.StatusUnsupported}, te.display.getStatuses())
}

func TestEngine_DeniedStopsListeningButSessionSurvives(t *testing.T) {
	te := newTestEngine(t)

	te.engine.HandleRecognitionError(domain.RecognitionDenied)
	snap := te.engine.Snapshot()
	assert.Equal(t, domain.StatusDenied, snap.Status)
}

func TestEngine_NoSpeechIgnored(t *testing.T) {
	te := newTestEngine(t)

	te.engine.HandleRecognitionError(domain.RecognitionNoSpeech)
	snap := te.engine.Snapshot()
	assert.Equal(t, domain.StatusListening, snap.Status)
	assert.Empty(t, te.display.getStatuses())
}
