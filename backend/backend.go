package backend

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms"
	"google.golang.org/api/option"

	"relay/logging"
)

// NoTextPlaceholder is returned when the model answers without any text.
const NoTextPlaceholder = "No response text available"

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

// Client represents a client to communicate with the generative model.
type Client struct {
	model     llms.Model
	modelName string
	timeout   time.Duration
}

// NewBackendClient wraps an existing model. A zero timeout leaves calls unbounded.
func NewBackendClient(model llms.Model, modelName string, timeout time.Duration) *Client {
	return &Client{
		model:     model,
		modelName: modelName,
		timeout:   timeout,
	}
}

// NewGoogleAIClient creates a Client backed by the Gemini API. Extra options are
// passed to the underlying API client after the key.
func NewGoogleAIClient(ctx context.Context, apiKey, modelName string, timeout time.Duration, opts ...option.ClientOption) (*Client, error) {
	model, err := newGeminiModel(ctx, modelName, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return NewBackendClient(model, modelName, timeout), nil
}

// ModelName returns the model identifier sent with every call.
func (c *Client) ModelName() string {
	return c.modelName
}

// Close releases the model's connections when it holds any.
func (c *Client) Close() error {
	if closer, ok := c.model.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Generate sends the prompt as a single user message and returns the generated text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	})
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}
	log.Debugf("Model: %s | generated in %s", c.modelName, time.Since(start))

	return ExtractText(resp), nil
}

// ExtractText returns the content of the first choice, or NoTextPlaceholder when
// the response carries no text. Whitespace-only text is returned as is.
func ExtractText(resp *llms.ContentResponse) string {
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return NoTextPlaceholder
	}
	if resp.Choices[0].Content == "" {
		return NoTextPlaceholder
	}
	return resp.Choices[0].Content
}
