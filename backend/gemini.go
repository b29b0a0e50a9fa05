package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/tmc/langchaingo/llms"
	"google.golang.org/api/option"
)

// geminiModel is an llms.Model over the Gemini API that sends the prompt with no
// generation config or safety settings, so the service defaults apply.
type geminiModel struct {
	client *genai.Client
	name   string
}

var _ llms.Model = (*geminiModel)(nil)

func newGeminiModel(ctx context.Context, name string, opts ...option.ClientOption) (*geminiModel, error) {
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &geminiModel{client: client, name: name}, nil
}

// GenerateContent implements the llms.Model interface. Only text parts are supported.
func (m *geminiModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	var parts []genai.Part
	for _, msg := range messages {
		for _, p := range msg.Parts {
			text, ok := p.(llms.TextContent)
			if !ok {
				return nil, fmt.Errorf("unsupported content part %T", p)
			}
			parts = append(parts, genai.Text(text.Text))
		}
	}

	resp, err := m.client.GenerativeModel(m.name).GenerateContent(ctx, parts...)
	if err != nil {
		return nil, err
	}
	return convertCandidates(resp), nil
}

// Call implements the llms.Model interface.
func (m *geminiModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

// Close releases the underlying API client.
func (m *geminiModel) Close() error {
	return m.client.Close()
}

// convertCandidates joins the text parts of each candidate into one choice.
func convertCandidates(resp *genai.GenerateContentResponse) *llms.ContentResponse {
	out := &llms.ContentResponse{}
	if resp == nil {
		return out
	}
	for _, c := range resp.Candidates {
		if c == nil {
			continue
		}
		var sb strings.Builder
		if c.Content != nil {
			for _, p := range c.Content.Parts {
				if t, ok := p.(genai.Text); ok {
					sb.WriteString(string(t))
				}
			}
		}
		out.Choices = append(out.Choices, &llms.ContentChoice{
			Content:    sb.String(),
			StopReason: c.FinishReason.String(),
		})
	}
	return out
}
