package tts

import "context"

// Audio is raw synthesized voice.
type Audio struct {
	Data   []byte
	Format string // e.g. "mp3"
}

// Synthesizer converts text plus a voice identifier to Audio.
// Concrete implementation wraps OpenAI, Google, Azure, etc.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) (*Audio, error)
}
