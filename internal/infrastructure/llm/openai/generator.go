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

	"narrator-app/internal/domain/source"
)

const chatCompletionsURL = "https://api.openai.com/v1/chat/completions"

const systemPrompt = "You are a narration writer. Rewrite the supplied source material " +
	"as a clear, engaging spoken-word script suitable for audio narration. " +
	"Plain prose only: no headings, no markdown, no stage directions."

// Generator implements script.Generator using the OpenAI chat completions endpoint.
type Generator struct {
	apiKey string
	model  string
}

func NewGenerator(apiKey, model string) *Generator {
	return &Generator{apiKey: apiKey, model: model}
}

// Generate produces a narration script from the normalized source text.
func (g *Generator) Generate(ctx context.Context, text string, mode source.Mode, origin string) (string, error) {
	user := fmt.Sprintf("Source kind: %s", mode)
	if origin != "" {
		user += fmt.Sprintf(" (%s)", origin)
	}
	user += "\n\nSource material:\n" + text

	payload := map[string]interface{}{
		"model":       g.model,
		"temperature": 0.7,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt},
			{"role": "user", "content": user},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}

	// adopt timeout from ctx or fallback to 120s
	reqCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, 120*time.Second)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, chatCompletionsURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	start := time.Now()
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai error %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	log.Printf("[llm] script generated model=%s in %.2fs", g.model, time.Since(start).Seconds())
	return stripFences(result.Choices[0].Message.Content), nil
}

// stripFences removes markdown code fences the model sometimes wraps
// output in despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```text")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
