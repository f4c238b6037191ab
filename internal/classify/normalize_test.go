package classify

import (
	"reflect"
	"testing"
	"time"
)

func TestNormalizeRecordComplete(t *testing.T) {
	raw := map[string]any{
		"ai_detected_category": "可回收垃圾",
		"ai_confidence":        0.9,
		"is_correct":           true,
		"score":                95.0,
		"ai_analysis":          "分类正确",
		"ai_response":          map[string]any{"note": "ok"},
		"processing_time_ms":   1200.0,
	}
	rec := NormalizeRecord(raw, 0)
	if rec.AIDetectedCategory != "可回收垃圾" || !rec.IsCorrect || rec.Score != 95 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.ProcessingTimeMS != 1200 {
		t.Fatalf("processing_time_ms = %d, want 1200", rec.ProcessingTimeMS)
	}
}

func TestNormalizeRecordNeverFails(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
	}{
		{"empty map", map[string]any{}},
		{"nil map", nil},
		{"wrong types", map[string]any{
			"ai_detected_category": 42,
			"ai_confidence":        "very confident",
			"is_correct":           "yes",
			"score":                []any{1, 2},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := NormalizeRecord(tc.raw, 300*time.Millisecond)
			if rec.AIDetectedCategory == "" {
				t.Fatalf("detected category left empty")
			}
			if rec.AIAnalysis == "" {
				t.Fatalf("analysis left empty")
			}
			if rec.AIResponse == nil {
				t.Fatalf("ai_response left nil")
			}
			if rec.ProcessingTimeMS != 300 {
				t.Fatalf("processing_time_ms = %d, want elapsed fallback 300", rec.ProcessingTimeMS)
			}
		})
	}
}

func TestNormalizeRecordClampsAbsurdValues(t *testing.T) {
	rec := NormalizeRecord(map[string]any{
		"ai_detected_category": "干垃圾",
		"ai_confidence":        5.0,
		"score":                -10.0,
	}, time.Second)
	if rec.AIConfidence != 1 {
		t.Fatalf("confidence = %v, want clamped to 1", rec.AIConfidence)
	}
	if rec.Score != 0 {
		t.Fatalf("score = %d, want clamped to 0", rec.Score)
	}
}

func TestNormalizeRecordPrefersSnakeCase(t *testing.T) {
	rec := NormalizeRecord(map[string]any{
		"ai_detected_category": "湿垃圾",
		"aiDetectedCategory":   "干垃圾",
	}, time.Second)
	if rec.AIDetectedCategory != "湿垃圾" {
		t.Fatalf("detected category = %q, want the snake_case value", rec.AIDetectedCategory)
	}
}

func TestNormalizeRecordIdempotent(t *testing.T) {
	first := NormalizeRecord(map[string]any{
		"aiDetectedCategory": "可回收垃圾",
		"confidence":         0.75,
		"isCorrect":          true,
		"score":              80.0,
		"aiAnalysis":         "基本正确",
	}, 500*time.Millisecond)

	second := NormalizeRecord(recordToMap(first), 999*time.Millisecond)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("normalization not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
