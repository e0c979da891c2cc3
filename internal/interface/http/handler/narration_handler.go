package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"narrator-app/internal/domain/script"
	"narrator-app/internal/domain/source"
	ucnarr "narrator-app/internal/usecase/narration"
)

// generateRequest is the inbound JSON payload for POST /generate.
type generateRequest struct {
	Mode     string `json:"mode"`
	Voice    string `json:"voice,omitempty"`
	Content  string `json:"content,omitempty"`
	URL      string `json:"url,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
}

// NarrationHandler bundles dependencies for narration HTTP routes.
type NarrationHandler struct {
	uc           *ucnarr.GenerateNarration
	defaultVoice string
}

func NewNarrationHandler(uc *ucnarr.GenerateNarration, defaultVoice string) *NarrationHandler {
	return &NarrationHandler{uc: uc, defaultVoice: defaultVoice}
}

// Register registers routes to app.
func (h *NarrationHandler) Register(app *fiber.App) {
	app.Post("/generate", h.generate)
	app.Get("/healthz", h.health)
}

func (h *NarrationHandler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

func (h *NarrationHandler) generate(c *fiber.Ctx) error {
	var body generateRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid json")
	}

	req, err := validate(&body, h.defaultVoice)
	if err != nil {
		return statusError(err)
	}
	log.Printf("[handler] generate mode=%s voice=%s", req.Mode, req.Voice)

	out, err := h.uc.Execute(c.Context(), &ucnarr.GenerateNarrationInput{Request: req})
	if err != nil {
		return statusError(err)
	}
	return c.JSON(out)
}

// statusError maps a pipeline failure to exactly one HTTP status:
// validation → 400, extraction → 422, upstream generation → 502.
// Anything else unclassified is treated as the caller's fault (400).
func statusError(err error) error {
	switch {
	case source.IsValidation(err):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case source.IsExtraction(err):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	default:
		var ge *script.GenerationError
		if errors.As(err, &ge) {
			log.Printf("[handler] upstream failure: %v", err)
			return fiber.NewError(http.StatusBadGateway, err.Error())
		}
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
}
