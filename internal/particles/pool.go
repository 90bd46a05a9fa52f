// Package particles implements the bounded particle lifecycle pool using the
// actor pattern.
//
// The Pool owns every live overlay particle. Spawns beyond the cap evict the
// oldest particle first (insertion order). Each particle goes through
// active -> fading -> removed, driven by clock timers whose callbacks post
// commands back into the actor; a timer firing for a particle that was
// already evicted or cleared is a no-op. Single goroutine + command channel,
// no mutexes.
package particles

import (
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/jhemmerl/lingopulse/internal/domain"
	"github.com/jhemmerl/lingopulse/internal/metrics"
)

const (
	// MaxParticles caps the pool; the oldest particle is evicted beyond it.
	MaxParticles = 40

	emojiFadeDelay = 30 * time.Second
	textFadeDelay  = 10 * time.Second
	fadeDuration   = 1 * time.Second
)

type stage int

const (
	stageActive stage = iota
	stageFading
)

// --- Command types ---

type poolCmd interface{ poolCmd() }

type cmdSpawn struct {
	content string
	kind    domain.ParticleKind
}

func (cmdSpawn) poolCmd() {}

type cmdFade struct {
	id uuid.UUID
}

func (cmdFade) poolCmd() {}

type cmdRemove struct {
	id uuid.UUID
}

func (cmdRemove) poolCmd() {}

type cmdClearAll struct{}

func (cmdClearAll) poolCmd() {}

type cmdCount struct {
	replyCh chan int
}

func (cmdCount) poolCmd() {}

type cmdStop struct {
	doneCh chan struct{}
}

func (cmdStop) poolCmd() {}

// --- Pool ---

type entry struct {
	particle domain.Particle
	stage    stage
	timer    clockwork.Timer
}

type Pool struct {
	cmdCh   chan poolCmd
	clock   clockwork.Clock
	display domain.Display
	entries map[uuid.UUID]*entry
	order   []uuid.UUID
}

// NewPool creates a particle pool and starts its actor goroutine.
func NewPool(clock clockwork.Clock, display domain.Display) *Pool {
	p := &Pool{
		cmdCh:   make(chan poolCmd, 256),
		clock:   clock,
		display: display,
		entries: make(map[uuid.UUID]*entry),
	}
	go p.run()
	return p
}

func (p *Pool) run() {
	for cmd := range p.cmdCh {
		switch c := cmd.(type) {
		case cmdSpawn:
			p.handleSpawn(c)
		case cmdFade:
			p.handleFade(c.id)
		case cmdRemove:
			p.handleRemove(c.id)
		case cmdClearAll:
			p.handleClearAll()
		case cmdCount:
			c.replyCh <- len(p.entries)
		case cmdStop:
			p.handleClearAll()
			close(c.doneCh)
			return
		}
	}
}

func (p *Pool) handleSpawn(c cmdSpawn) {
	if len(p.entries) >= MaxParticles {
		p.evictOldest()
	}

	particle := domain.Particle{
		ID:        uuid.New(),
		Content:   c.content,
		Kind:      c.kind,
		CreatedAt: p.clock.Now(),
	}

	delay := emojiFadeDelay
	if c.kind == domain.ParticleText {
		delay = textFadeDelay
	}

	e := &entry{particle: particle, stage: stageActive}
	id := particle.ID
	e.timer = p.clock.AfterFunc(delay, func() {
		p.cmdCh <- cmdFade{id: id}
	})

	p.entries[id] = e
	p.order = append(p.order, id)
	p.display.AppendParticle(particle)

	metrics.ParticlesSpawnedTotal.WithLabelValues(string(c.kind)).Inc()
	metrics.ParticlesActive.Set(float64(len(p.entries)))
}

func (p *Pool) handleFade(id uuid.UUID) {
	e, ok := p.entries[id]
	if !ok || e.stage != stageActive {
		// Timer fired for a particle already evicted, cleared, or fading.
		return
	}

	e.stage = stageFading
	e.timer = p.clock.AfterFunc(fadeDuration, func() {
		p.cmdCh <- cmdRemove{id: id}
	})
	p.display.FadeParticle(id)
}

func (p *Pool) handleRemove(id uuid.UUID) {
	if _, ok := p.entries[id]; !ok {
		return
	}

	p.drop(id)
	p.display.RemoveParticle(id)
	metrics.ParticlesActive.Set(float64(len(p.entries)))
}

func (p *Pool) evictOldest() {
	if len(p.order) == 0 {
		return
	}

	id := p.order[0]
	if e, ok := p.entries[id]; ok {
		e.timer.Stop()
	}
	p.drop(id)
	p.display.RemoveParticle(id)
	metrics.ParticlesEvictedTotal.Inc()
}

func (p *Pool) handleClearAll() {
	for _, e := range p.entries {
		e.timer.Stop()
	}
	p.entries = make(map[uuid.UUID]*entry)
	p.order = nil
	p.display.ClearParticles()
	metrics.ParticlesActive.Set(0)
}

// drop removes id from both the map and the insertion-order slice.
func (p *Pool) drop(id uuid.UUID) {
	delete(p.entries, id)
	for i, other := range p.order {
		if other == id {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// --- Public API ---

// Spawn adds a particle to the pool, evicting the oldest one if the pool is
// at capacity. Fire-and-forget.
func (p *Pool) Spawn(content string, kind domain.ParticleKind) {
	p.cmdCh <- cmdSpawn{content: content, kind: kind}
}

// ClearAll removes every particle immediately. Pending fade timers for
// cleared particles become no-ops.
func (p *Pool) ClearAll() {
	p.cmdCh <- cmdClearAll{}
}

// Count returns the number of live particles. Also serves as a barrier: all
// previously sent commands have been processed when it returns.
func (p *Pool) Count() int {
	replyCh := make(chan int, 1)
	p.cmdCh <- cmdCount{replyCh: replyCh}
	return <-replyCh
}

// Stop clears the pool and terminates the actor goroutine.
func (p *Pool) Stop() {
	doneCh := make(chan struct{})
	p.cmdCh <- cmdStop{doneCh: doneCh}
	<-doneCh
}
