package domain

import "github.com/google/uuid"

// Display is the render-command sink for the overlay. The session core pushes
// state changes through it and never reads back; layout belongs to the client.
// Implementations must be safe for calls from multiple goroutines.
type Display interface {
	AppendParticle(p Particle)
	FadeParticle(id uuid.UUID)
	RemoveParticle(id uuid.UUID)
	ClearParticles()
	SetTranslation(targetLang, text string)
	SetTranslationSlots(targetLangs []string)
	SetTranscript(finalized, interim string)
	SetMood(m Mood)
	SetStatus(s ListenStatus)
}
