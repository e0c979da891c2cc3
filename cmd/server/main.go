package main

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"narrator-app/internal/config"
	"narrator-app/internal/domain/source"
	htmlextract "narrator-app/internal/infrastructure/extract/html"
	"narrator-app/internal/infrastructure/extract/youtube"
	llmopenai "narrator-app/internal/infrastructure/llm/openai"
	ttsopenai "narrator-app/internal/infrastructure/tts/openai"
	"narrator-app/internal/interface/http/handler"
	"narrator-app/internal/usecase/narration"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[config] %v", err)
	}

	normalizer := source.NewNormalizer(
		htmlextract.NewExtractor(cfg.FetchTimeout, cfg.MaxContentChars),
		youtube.NewExtractor(cfg.FetchTimeout),
	)
	generator := llmopenai.NewGenerator(cfg.OpenAIAPIKey, cfg.ChatModel)
	synthesizer := ttsopenai.NewSynthesizer(cfg.OpenAIAPIKey, cfg.TTSModel)
	uc := narration.NewGenerateNarration(normalizer, generator, synthesizer)

	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
		ReadTimeout:  cfg.GenerateTimeout,
		WriteTimeout: cfg.GenerateTimeout,
	})
	app.Use(recover.New())

	handler.NewNarrationHandler(uc, cfg.DefaultVoice).Register(app)

	log.Printf("[server] narration service listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("[server] %v", err)
	}
}

// errorHandler renders every failure as a JSON error object. Unexpected
// faults are logged for operability and surfaced without internal detail.
func errorHandler(c *fiber.Ctx, err error) error {
	code := http.StatusInternalServerError
	message := "internal error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		log.Printf("[server] unexpected error: %v", err)
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}
