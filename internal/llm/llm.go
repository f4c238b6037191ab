package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// AnalyzeInput captures the inputs for one vision analysis call.
type AnalyzeInput struct {
	ImageURL     string
	LocationHint string
}

// ElaborateInput carries the deterministic scoring baseline that the
// narrative collaborator enriches with prose. The baseline numbers are
// authoritative; the collaborator only adds explanation.
type ElaborateInput struct {
	DetectedCategory     string
	ExpectedCategory     string
	Confidence           float64
	Description          string
	Characteristics      []string
	MaterialType         string
	DisposalInstructions string
	BaselineScore        int
	BaselineMatch        bool
	BaselineReasoning    string
}

// VisionClient abstracts the vision analysis capability. The returned raw
// message is whatever the provider produced; callers decide whether it
// parses as structured data.
type VisionClient interface {
	AnalyzeImage(ctx context.Context, input AnalyzeInput) (json.RawMessage, error)
}

// NarrativeClient abstracts the scoring-narrative capability.
type NarrativeClient interface {
	ElaborateScore(ctx context.Context, input ElaborateInput) (json.RawMessage, error)
}

// ErrUnavailable marks transport-level failures: the provider could not be
// reached at all. Providers wrap it so callers can distinguish unreachable
// from merely garbled.
var ErrUnavailable = errors.New("model service unavailable")

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("model service not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// AnalyzeImage returns ErrNotConfigured wrapped in ErrUnavailable.
func (PlaceholderClient) AnalyzeImage(ctx context.Context, input AnalyzeInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, notConfigured()
}

// ElaborateScore returns ErrNotConfigured wrapped in ErrUnavailable.
func (PlaceholderClient) ElaborateScore(ctx context.Context, input ElaborateInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, notConfigured()
}

func notConfigured() error {
	return errors.Join(ErrUnavailable, ErrNotConfigured)
}
