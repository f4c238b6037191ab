package classify

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Collaborator replies arrive as free text that usually contains JSON, often
// wrapped in markdown fences or surrounding prose. The decoders here extract
// and sanitize that JSON; a decode failure is an ordinary return value the
// orchestrator branches on, never a panic.

const noFeatureSentinel = "no features reported"

// DecodeAnalysis interprets a vision reply as an AnalysisResult. The result
// is sanitized on ingestion: confidence clamped into [0,1], characteristics
// never empty and capped at five entries.
func DecodeAnalysis(raw json.RawMessage) (AnalysisResult, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return AnalysisResult{}, err
	}

	result := AnalysisResult{
		DetectedCategory:     pickString(fields, "detectedCategory", "detected_category"),
		Confidence:           clampFloat(pickFloat(fields, "confidence"), 0, 1),
		Description:          pickString(fields, "description"),
		Characteristics:      pickStringList(fields, "characteristics"),
		MaterialType:         pickString(fields, "materialType", "material_type"),
		DisposalInstructions: pickString(fields, "disposalInstructions", "disposal_instructions"),
	}
	if result.DetectedCategory == "" {
		return AnalysisResult{}, fmt.Errorf("%w: missing detectedCategory", ErrNotStructured)
	}
	if len(result.Characteristics) == 0 {
		result.Characteristics = []string{noFeatureSentinel}
	}
	if len(result.Characteristics) > 5 {
		result.Characteristics = result.Characteristics[:5]
	}
	return result, nil
}

// DecodeScore interprets a narrative reply as a ScoreResult. Match is not
// taken from the reply; the caller derives it from the category verdict.
func DecodeScore(raw json.RawMessage) (ScoreResult, error) {
	fields, err := decodeObject(raw)
	if err != nil {
		return ScoreResult{}, err
	}

	result := ScoreResult{
		Score:            clampScoreValue(pickFloat(fields, "score")),
		Reasoning:        pickString(fields, "reasoning"),
		Suggestions:      pickStringList(fields, "suggestions"),
		ImprovementTips:  pickStringList(fields, "improvementTips", "improvement_tips"),
		DetailedAnalysis: pickString(fields, "detailedAnalysis", "detailed_analysis"),
		LearningPoints:   pickStringList(fields, "learningPoints", "learning_points"),
	}
	if result.DetailedAnalysis == "" && len(result.Suggestions) == 0 && len(result.LearningPoints) == 0 {
		return ScoreResult{}, fmt.Errorf("%w: no narrative fields present", ErrNotStructured)
	}
	return result, nil
}

func decodeObject(raw json.RawMessage) (map[string]any, error) {
	text, err := extractJSONObject(string(raw))
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotStructured, err)
	}
	return fields, nil
}

// extractJSONObject pulls a JSON object out of text that may contain markdown
// code fences or other prose around it.
func extractJSONObject(text string) (string, error) {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("%w: no JSON object found", ErrNotStructured)
	}
	return text[start : end+1], nil
}

func pickString(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		if value, ok := fields[key]; ok {
			if s, ok := value.(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func pickFloat(fields map[string]any, keys ...string) float64 {
	for _, key := range keys {
		value, ok := fields[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case float64:
			return v
		case string:
			var parsed float64
			if _, err := fmt.Sscanf(strings.TrimSpace(v), "%g", &parsed); err == nil {
				return parsed
			}
		}
	}
	return 0
}

func pickStringList(fields map[string]any, keys ...string) []string {
	for _, key := range keys {
		value, ok := fields[key]
		if !ok {
			continue
		}
		items, ok := value.([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
		return out
	}
	return nil
}

func clampScoreValue(value float64) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return int(value + 0.5)
}
