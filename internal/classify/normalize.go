package classify

import (
	"time"
)

// NormalizeRecord coerces a loosely shaped result map into the canonical
// seven-field Record. It is total: whatever shape the input has, the output
// is a complete record with every field in range. Running it on an already
// normalized record changes nothing.
//
// Snake_case keys win over camelCase when both are present.
func NormalizeRecord(raw map[string]any, elapsed time.Duration) Record {
	rec := Record{
		AIDetectedCategory: pickString(raw, "ai_detected_category", "aiDetectedCategory", "detected_category", "detectedCategory"),
		AIConfidence:       clampFloat(pickFloat(raw, "ai_confidence", "aiConfidence", "confidence"), 0, 1),
		IsCorrect:          pickBool(raw, "is_correct", "isCorrect"),
		Score:              clampScoreValue(pickFloat(raw, "score")),
		AIAnalysis:         pickString(raw, "ai_analysis", "aiAnalysis", "analysis"),
		ProcessingTimeMS:   pickInt(raw, "processing_time_ms", "processingTimeMs"),
	}

	if rec.AIDetectedCategory == "" {
		rec.AIDetectedCategory = "unknown"
	}
	if rec.AIAnalysis == "" {
		rec.AIAnalysis = "no analysis available"
	}
	if rec.ProcessingTimeMS <= 0 {
		rec.ProcessingTimeMS = elapsed.Milliseconds()
		if rec.ProcessingTimeMS < 0 {
			rec.ProcessingTimeMS = 0
		}
	}

	rec.AIResponse = pickMap(raw, "ai_response", "aiResponse")
	if rec.AIResponse == nil {
		rec.AIResponse = map[string]any{
			"normalized_at": time.Now().UTC().Format(time.RFC3339),
		}
	}
	return rec
}

// recordToMap round-trips a Record through the loose map shape so callers can
// re-normalize or merge before emitting.
func recordToMap(rec Record) map[string]any {
	return map[string]any{
		"ai_detected_category": rec.AIDetectedCategory,
		"ai_confidence":        rec.AIConfidence,
		"is_correct":           rec.IsCorrect,
		"score":                float64(rec.Score),
		"ai_analysis":          rec.AIAnalysis,
		"ai_response":          rec.AIResponse,
		"processing_time_ms":   float64(rec.ProcessingTimeMS),
	}
}

func pickBool(fields map[string]any, keys ...string) bool {
	for _, key := range keys {
		if value, ok := fields[key]; ok {
			if b, ok := value.(bool); ok {
				return b
			}
		}
	}
	return false
}

func pickInt(fields map[string]any, keys ...string) int64 {
	for _, key := range keys {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if f, ok := value.(float64); ok {
			return int64(f)
		}
	}
	return 0
}

func pickMap(fields map[string]any, keys ...string) map[string]any {
	for _, key := range keys {
		if value, ok := fields[key]; ok {
			if m, ok := value.(map[string]any); ok {
				return m
			}
		}
	}
	return nil
}
