package handler

import (
	"fmt"
	"net/http"

	"relay/backend"
	"relay/metrics"
)

const (
	// DefaultPrompt is used when the request has no prompt parameter.
	DefaultPrompt = "Explain how AI works"

	generateErrorMessage = "Error generating content. Please try again."
	healthyMessage       = "Server is healthy"
)

// PromptHandler serves GET / by relaying the prompt query parameter to the generator.
type PromptHandler struct {
	Generator Generator
	Metrics   *metrics.Recorder
}

// NewPromptHandler creates a PromptHandler. rec may be nil.
func NewPromptHandler(gen Generator, rec *metrics.Recorder) *PromptHandler {
	return &PromptHandler{
		Generator: gen,
		Metrics:   rec,
	}
}

// ServeHTTP implements the http.Handler interface for PromptHandler.
func (h *PromptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	prompt := r.URL.Query().Get("prompt")
	if prompt == "" {
		prompt = DefaultPrompt
	}

	done := h.track()
	text, err := h.Generator.Generate(r.Context(), prompt)
	if err != nil {
		done(metrics.OutcomeError)
		logAndReturnError(w, generateErrorMessage, http.StatusInternalServerError,
			fmt.Sprintf("Error generating content for prompt %q: %v", prompt, err))
		return
	}

	outcome := metrics.OutcomeSuccess
	if text == "" || text == backend.NoTextPlaceholder {
		text = backend.NoTextPlaceholder
		outcome = metrics.OutcomeEmpty
	}
	done(outcome)

	log.Infof("Prompt: %s", prompt)
	log.Infof("Response: %s", text)
	writeJSON(w, http.StatusOK, PromptResponse{Text: text})
}

func (h *PromptHandler) track() func(metrics.Outcome) {
	if h.Metrics == nil {
		return func(metrics.Outcome) {}
	}
	return h.Metrics.Start()
}

// Health always reports the server as healthy. It does no other work.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(healthyMessage))
}
