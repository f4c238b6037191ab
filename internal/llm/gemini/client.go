package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net"
	"path"
	"strings"

	"google.golang.org/genai"

	"wastesort-backend/internal/llm"
)

const defaultModel = "gemini-2.5-flash"

// Client implements the vision and narrative capabilities using Google's
// Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient constructs a Gemini client using the given API key.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// AnalyzeImage sends the image reference with the analysis prompt and returns
// the raw model output.
func (c *Client) AnalyzeImage(ctx context.Context, input llm.AnalyzeInput) (json.RawMessage, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(llm.AnalyzeSystemPrompt + "\n\n" + llm.BuildAnalyzeUserPrompt(input)),
		genai.NewPartFromURI(input.ImageURL, guessImageMIME(input.ImageURL)),
	}
	return c.generate(ctx, parts)
}

// ElaborateScore asks the model to explain a deterministic scoring baseline.
func (c *Client) ElaborateScore(ctx context.Context, input llm.ElaborateInput) (json.RawMessage, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(llm.ElaborateSystemPrompt + "\n\n" + llm.BuildElaborateUserPrompt(input)),
	}
	return c.generate(ctx, parts)
}

func (c *Client) generate(ctx context.Context, parts []*genai.Part) (json.RawMessage, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		if isTransportError(err) {
			return nil, fmt.Errorf("gemini request: %w", errors.Join(llm.ErrUnavailable, err))
		}
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	if len(result.Candidates) == 0 {
		return nil, fmt.Errorf("gemini response missing candidates")
	}
	text := strings.TrimSpace(result.Text())
	if text == "" {
		return nil, fmt.Errorf("gemini response empty content")
	}
	return json.RawMessage(text), nil
}

func guessImageMIME(imageURL string) string {
	ext := strings.ToLower(path.Ext(strings.SplitN(imageURL, "?", 2)[0]))
	if mt := mime.TypeByExtension(ext); strings.HasPrefix(mt, "image/") {
		return mt
	}
	return "image/jpeg"
}

func isTransportError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
