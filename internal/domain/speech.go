package domain

// SpeechResult is a single recognizer event. Interim results replace each
// other until the recognizer finalizes the fragment.
type SpeechResult struct {
	Text  string `json:"text"`
	Final bool   `json:"final"`
}

// RecognitionErrorKind classifies recognizer failures per the session's
// error taxonomy.
type RecognitionErrorKind int

const (
	// RecognitionUnsupported means no speech capability is available.
	// Fatal to the listening feature; surfaced once.
	RecognitionUnsupported RecognitionErrorKind = iota
	// RecognitionDenied means the user refused microphone access.
	// Listening stops but the session keeps running.
	RecognitionDenied
	// RecognitionNoSpeech is a transient no-input condition, silently ignored.
	RecognitionNoSpeech
)

// ListenStatus is the session's listening state as shown on the overlay.
type ListenStatus string

const (
	StatusListening   ListenStatus = "listening"
	StatusStopped     ListenStatus = "stopped"
	StatusUnsupported ListenStatus = "unsupported"
	StatusDenied      ListenStatus = "denied"
)
