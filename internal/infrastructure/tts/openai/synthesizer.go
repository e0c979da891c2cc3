package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"narrator-app/internal/domain/tts"
)

const speechURL = "https://api.openai.com/v1/audio/speech"

// Synthesizer implements tts.Synthesizer using the OpenAI TTS endpoint.
type Synthesizer struct {
	apiKey string
	model  string
}

func NewSynthesizer(apiKey, model string) *Synthesizer {
	return &Synthesizer{apiKey: apiKey, model: model}
}

// Synthesize converts text to audio bytes (mp3) using the given voice.
func (s *Synthesizer) Synthesize(ctx context.Context, text, voice string) (*tts.Audio, error) {
	payload := map[string]interface{}{
		"model":           s.model,
		"input":           text,
		"voice":           voice,
		"response_format": "mp3",
	}
	body, _ := json.Marshal(payload)

	// adopt timeout from ctx or fallback to 90s
	reqCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, 90*time.Second)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, speechURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openai error %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	audioBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	log.Printf("[tts] synthesized %d bytes voice=%s in %.2fs", len(audioBytes), voice, time.Since(start).Seconds())
	return &tts.Audio{Data: audioBytes, Format: "mp3"}, nil
}
