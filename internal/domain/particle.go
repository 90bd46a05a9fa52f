package domain

import (
	"time"

	"github.com/google/uuid"
)

// ParticleKind distinguishes emoji particles from faint filler-word particles.
type ParticleKind string

const (
	ParticleEmoji ParticleKind = "emoji"
	ParticleText  ParticleKind = "text"
)

// Particle is a transient visual element shown on the overlay. Insertion
// order is display order; the pool evicts oldest-first when full.
type Particle struct {
	ID        uuid.UUID    `json:"id"`
	Content   string       `json:"content"`
	Kind      ParticleKind `json:"kind"`
	CreatedAt time.Time    `json:"createdAt"`
}
