package broadcast

import (
	"github.com/google/uuid"

	"github.com/jhemmerl/lingopulse/internal/domain"
)

// Render-command message types pushed to the overlay.
const (
	TypeParticleAppend   = "particle.append"
	TypeParticleFade     = "particle.fade"
	TypeParticleRemove   = "particle.remove"
	TypeParticleClear    = "particle.clear"
	TypeTranslationSet   = "translation.set"
	TypeTranslationSlots = "translation.slots"
	TypeTranscript       = "transcript"
	TypeMood             = "mood"
	TypeStatus           = "status"
)

type particleAppendMsg struct {
	Type     string          `json:"type"`
	Particle domain.Particle `json:"particle"`
}

type particleIDMsg struct {
	Type string    `json:"type"`
	ID   uuid.UUID `json:"id"`
}

type particleClearMsg struct {
	Type string `json:"type"`
}

type translationSetMsg struct {
	Type   string `json:"type"`
	Target string `json:"target"`
	Text   string `json:"text"`
}

type translationSlotsMsg struct {
	Type    string   `json:"type"`
	Targets []string `json:"targets"`
}

type transcriptMsg struct {
	Type      string `json:"type"`
	Finalized string `json:"finalized"`
	Interim   string `json:"interim"`
}

type moodMsg struct {
	Type string      `json:"type"`
	Mood domain.Mood `json:"mood"`
}

type statusMsg struct {
	Type   string              `json:"type"`
	Status domain.ListenStatus `json:"status"`
}
