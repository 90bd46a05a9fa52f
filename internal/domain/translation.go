package domain

import "context"

// Translator converts text between languages. Implementations live in
// internal/translate; any malformed or missing response is an error.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}
