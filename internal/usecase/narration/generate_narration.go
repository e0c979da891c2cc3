package narration

import (
	"context"
	"encoding/base64"
	"log"
	"strings"

	"narrator-app/internal/domain/script"
	"narrator-app/internal/domain/source"
	"narrator-app/internal/domain/tts"
	"narrator-app/internal/usecase"
)

var _ usecase.UseCase[GenerateNarrationInput, GenerateNarrationOutput] = (*GenerateNarration)(nil)

// GenerateNarrationInput is input DTO. The request is assumed to have
// passed shape validation in the handler layer.
type GenerateNarrationInput struct {
	Request *source.Request
}

// GenerateNarrationOutput is output DTO.
type GenerateNarrationOutput struct {
	Script      string `json:"script"`
	AudioBase64 string `json:"audioBase64"`
}

// GenerateNarration drives the pipeline: normalize → generate script →
// synthesize audio. All-or-nothing per request; the first failure
// short-circuits and nothing is retried.
type GenerateNarration struct {
	normalizer  *source.Normalizer
	generator   script.Generator
	synthesizer tts.Synthesizer
}

func NewGenerateNarration(n *source.Normalizer, g script.Generator, s tts.Synthesizer) *GenerateNarration {
	return &GenerateNarration{normalizer: n, generator: g, synthesizer: s}
}

// Execute runs the three stages in strict sequence and returns the script
// together with base64-encoded audio.
func (uc *GenerateNarration) Execute(ctx context.Context, in *GenerateNarrationInput) (*GenerateNarrationOutput, error) {
	req := in.Request

	// 1. Normalize source
	doc, err := uc.normalizer.Normalize(ctx, req)
	if err != nil {
		return nil, err
	}
	log.Printf("[narration] source normalized mode=%s chars=%d", req.Mode, len(doc.Text))

	// 2. Generate script
	text, err := uc.generator.Generate(ctx, doc.Text, req.Mode, doc.Origin)
	if err != nil {
		return nil, &script.GenerationError{Stage: "script", Cause: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &script.GenerationError{Stage: "script"}
	}
	log.Printf("[narration] script generated chars=%d", len(text))

	// 3. Synthesize
	audio, err := uc.synthesizer.Synthesize(ctx, text, req.Voice)
	if err != nil {
		return nil, &script.GenerationError{Stage: "audio", Cause: err}
	}
	if len(audio.Data) == 0 {
		return nil, &script.GenerationError{Stage: "audio"}
	}
	log.Printf("[narration] audio synthesized bytes=%d voice=%s", len(audio.Data), req.Voice)

	return &GenerateNarrationOutput{
		Script:      text,
		AudioBase64: base64.StdEncoding.EncodeToString(audio.Data),
	}, nil
}
