package narration

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"narrator-app/internal/domain/script"
	"narrator-app/internal/domain/source"
	"narrator-app/internal/domain/tts"
)

const sampleContent = "A reasonably long block of source text, easily past the fifty character minimum the pipeline enforces."

type fakeExtractor struct {
	doc *source.Document
	err error
}

func (f *fakeExtractor) Extract(context.Context, string) (*source.Document, error) {
	return f.doc, f.err
}

type fakeGenerator struct {
	out    string
	err    error
	gotOrg string
}

func (f *fakeGenerator) Generate(_ context.Context, _ string, _ source.Mode, origin string) (string, error) {
	f.gotOrg = origin
	return f.out, f.err
}

type fakeSynthesizer struct {
	data     []byte
	err      error
	gotVoice string
	calls    int
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, _, voice string) (*tts.Audio, error) {
	f.calls++
	f.gotVoice = voice
	if f.err != nil {
		return nil, f.err
	}
	return &tts.Audio{Data: f.data, Format: "mp3"}, nil
}

func newUC(gen *fakeGenerator, synth *fakeSynthesizer) *GenerateNarration {
	n := source.NewNormalizer(&fakeExtractor{}, &fakeExtractor{})
	return NewGenerateNarration(n, gen, synth)
}

func textRequest() *source.Request {
	return &source.Request{Mode: source.ModeText, Voice: "alloy", Content: sampleContent}
}

func TestExecuteHappyPath(t *testing.T) {
	gen := &fakeGenerator{out: "A narrated take on the source material."}
	synth := &fakeSynthesizer{data: []byte{0xFF, 0xFB, 0x90, 0x00, 0x01}}
	uc := newUC(gen, synth)

	out, err := uc.Execute(context.Background(), &GenerateNarrationInput{Request: textRequest()})
	require.NoError(t, err)
	assert.Equal(t, "A narrated take on the source material.", out.Script)
	assert.Equal(t, "alloy", synth.gotVoice)

	decoded, err := base64.StdEncoding.DecodeString(out.AudioBase64)
	require.NoError(t, err)
	assert.Equal(t, synth.data, decoded, "audioBase64 must round-trip to the synthesized bytes")
}

func TestExecuteTrimsScript(t *testing.T) {
	gen := &fakeGenerator{out: "\n  trimmed script body  \n"}
	uc := newUC(gen, &fakeSynthesizer{data: []byte{1}})

	out, err := uc.Execute(context.Background(), &GenerateNarrationInput{Request: textRequest()})
	require.NoError(t, err)
	assert.Equal(t, "trimmed script body", out.Script)
}

func TestExecuteEmptyScriptFails(t *testing.T) {
	synth := &fakeSynthesizer{data: []byte{1}}
	uc := newUC(&fakeGenerator{out: "   \n  "}, synth)

	_, err := uc.Execute(context.Background(), &GenerateNarrationInput{Request: textRequest()})
	require.Error(t, err)

	var ge *script.GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "script", ge.Stage)
	assert.Zero(t, synth.calls, "synthesis must not run after a failed generation")
}

func TestExecuteGeneratorErrorFails(t *testing.T) {
	uc := newUC(&fakeGenerator{err: errors.New("rate limited")}, &fakeSynthesizer{})

	_, err := uc.Execute(context.Background(), &GenerateNarrationInput{Request: textRequest()})
	var ge *script.GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "script", ge.Stage)
}

func TestExecuteSynthesisErrorFails(t *testing.T) {
	uc := newUC(&fakeGenerator{out: "fine script"}, &fakeSynthesizer{err: errors.New("voice unsupported")})

	_, err := uc.Execute(context.Background(), &GenerateNarrationInput{Request: textRequest()})
	var ge *script.GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "audio", ge.Stage)
}

func TestExecuteEmptyAudioFails(t *testing.T) {
	uc := newUC(&fakeGenerator{out: "fine script"}, &fakeSynthesizer{data: nil})

	_, err := uc.Execute(context.Background(), &GenerateNarrationInput{Request: textRequest()})
	var ge *script.GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "audio", ge.Stage)
}

func TestExecutePropagatesOriginToGenerator(t *testing.T) {
	gen := &fakeGenerator{out: "script"}
	web := &fakeExtractor{doc: &source.Document{Text: sampleContent}}
	n := source.NewNormalizer(web, &fakeExtractor{})
	uc := NewGenerateNarration(n, gen, &fakeSynthesizer{data: []byte{1}})

	req := &source.Request{Mode: source.ModeURL, Voice: "alloy", URL: "https://example.com/a"}
	_, err := uc.Execute(context.Background(), &GenerateNarrationInput{Request: req})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", gen.gotOrg)
}

func TestExecuteNormalizeFailurePropagates(t *testing.T) {
	gen := &fakeGenerator{out: "script"}
	uc := newUC(gen, &fakeSynthesizer{data: []byte{1}})

	req := &source.Request{Mode: source.ModeText, Voice: "alloy", Content: "short"}
	_, err := uc.Execute(context.Background(), &GenerateNarrationInput{Request: req})
	require.Error(t, err)
	assert.True(t, source.IsValidation(err))
}
