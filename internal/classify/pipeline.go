package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wastesort-backend/internal/llm"
	"wastesort-backend/internal/shared/metrics"
	"wastesort-backend/internal/shared/telemetry"
)

// Stage names the pipeline phases for telemetry.
type Stage string

const (
	StageIdle        Stage = "idle"
	StageAnalyzing   Stage = "analyzing"
	StageScoring     Stage = "scoring"
	StageSummarizing Stage = "summarizing"
	StageDone        Stage = "done"
	StageFailed      Stage = "failed"
)

const recognitionFailedCategory = "recognition failed"

// Fallback scores used when the narrative collaborator returned a reply that
// could not be interpreted. In that degraded path the grade collapses to a
// binary verdict.
const (
	fallbackScoreMatch    = 90
	fallbackScoreMismatch = 30
)

// Recommendation thresholds applied to the final score.
const (
	excellentThreshold  = 85
	goodThreshold       = 70
	improvableThreshold = 50
)

// Service runs the three-stage classification pipeline: Analyze the image,
// Score the detected category against the expected one, Summarize the
// result. The deterministic engine owns the numeric score; the narrative
// collaborator only enriches the prose around it.
type Service struct {
	Vision          llm.VisionClient
	Narrative       llm.NarrativeClient
	Engine          Engine
	DefaultLocation string
	Now             func() time.Time
}

// NewService builds a Service with the given collaborators.
func NewService(vision llm.VisionClient, narrative llm.NarrativeClient, defaultLocation string) *Service {
	return &Service{
		Vision:          vision,
		Narrative:       narrative,
		DefaultLocation: defaultLocation,
		Now:             time.Now,
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Classify runs one classification from input to canonical record. It always
// returns a complete Outcome: validation errors, garbled collaborator replies
// and unreachable providers all surface as records, never as panics or
// partial data.
func (s *Service) Classify(ctx context.Context, input Input) Outcome {
	started := s.now()
	metrics.IncClassificationStarted()

	if err := validateInput(input); err != nil {
		telemetry.Warn("classification.rejected", map[string]any{
			"stage": string(StageIdle),
			"error": err.Error(),
		})
		metrics.IncClassificationFailed()
		return s.failureOutcome(input, started, err)
	}

	location := strings.TrimSpace(input.UserLocation)
	if location == "" {
		location = s.DefaultLocation
	}

	// Stage 1: Analyze.
	analysis, analysisDegraded, err := s.analyze(ctx, input.ImageURL, location)
	if err != nil {
		metrics.IncClassificationFailed()
		return s.failureOutcome(input, started, err)
	}

	// Stage 2: Score. The engine runs unconditionally; its numbers stand
	// unless the narrative reply arrived but could not be interpreted.
	scoring, scoringDegraded := s.score(ctx, analysis, input.ExpectedCategory)

	// Stage 3: Summarize.
	summary := s.summarize(scoring.Score)

	elapsed := s.now().Sub(started)
	degraded := analysisDegraded || scoringDegraded
	if degraded {
		metrics.IncClassificationDegraded()
	}
	metrics.IncClassificationCompleted()
	metrics.ObserveClassificationDurationMs(float64(elapsed.Milliseconds()))

	record := s.buildRecord(input, analysis, scoring, summary, elapsed)

	telemetry.Info("classification.complete", map[string]any{
		"stage":            string(StageDone),
		"detectedCategory": analysis.DetectedCategory,
		"expectedCategory": input.ExpectedCategory,
		"score":            scoring.Score,
		"isCorrect":        scoring.Match,
		"degraded":         degraded,
		"durationMs":       elapsed.Milliseconds(),
	})

	return Outcome{
		Record:   record,
		Analysis: analysis,
		Scoring:  scoring,
		Summary:  summary,
	}
}

func validateInput(input Input) error {
	url := strings.TrimSpace(input.ImageURL)
	if url == "" || !(strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://")) {
		return ErrMissingImageURL
	}
	if strings.TrimSpace(input.ExpectedCategory) == "" {
		return ErrMissingExpectedCategory
	}
	return nil
}

// analyze runs the vision stage. An unreachable provider is the only hard
// failure; a garbled or otherwise failed reply degrades to the sentinel
// analysis so the rest of the pipeline still produces a record.
func (s *Service) analyze(ctx context.Context, imageURL, location string) (AnalysisResult, bool, error) {
	stageStart := s.now()
	raw, err := s.Vision.AnalyzeImage(ctx, llm.AnalyzeInput{ImageURL: imageURL, LocationHint: location})
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) {
			telemetry.Error("analyze.unavailable", map[string]any{
				"stage": string(StageAnalyzing),
				"error": err.Error(),
			})
			return AnalysisResult{}, false, err
		}
		telemetry.Warn("analyze.degraded", map[string]any{
			"stage": string(StageAnalyzing),
			"error": err.Error(),
		})
		return fallbackAnalysis(err), true, nil
	}

	analysis, err := DecodeAnalysis(raw)
	if err != nil {
		telemetry.Warn("analyze.degraded", map[string]any{
			"stage": string(StageAnalyzing),
			"error": err.Error(),
		})
		return fallbackAnalysis(err), true, nil
	}

	telemetry.Info("analyze.complete", map[string]any{
		"stage":            string(StageAnalyzing),
		"detectedCategory": analysis.DetectedCategory,
		"confidence":       analysis.Confidence,
		"durationMs":       s.now().Sub(stageStart).Milliseconds(),
	})
	return analysis, false, nil
}

func fallbackAnalysis(cause error) AnalysisResult {
	return AnalysisResult{
		DetectedCategory:     recognitionFailedCategory,
		Confidence:           0,
		Description:          "the image could not be recognized automatically",
		Characteristics:      []string{fmt.Sprintf("analysis unavailable: %v", cause)},
		MaterialType:         "unknown",
		DisposalInstructions: "please sort manually according to the local standard",
	}
}

// score runs the deterministic engine and then asks the narrative
// collaborator to elaborate. A collaborator that cannot be reached changes
// nothing; a reply that arrived but does not parse collapses the grade to
// the binary fallback.
func (s *Service) score(ctx context.Context, analysis AnalysisResult, expected string) (ScoreResult, bool) {
	stageStart := s.now()
	result := s.Engine.Score(analysis.DetectedCategory, expected, analysis.Confidence, Evidence{
		Description:          analysis.Description,
		Characteristics:      analysis.Characteristics,
		MaterialType:         analysis.MaterialType,
		DisposalInstructions: analysis.DisposalInstructions,
	})

	if s.Narrative == nil {
		return result, false
	}

	raw, err := s.Narrative.ElaborateScore(ctx, llm.ElaborateInput{
		DetectedCategory:     analysis.DetectedCategory,
		ExpectedCategory:     expected,
		Confidence:           analysis.Confidence,
		Description:          analysis.Description,
		Characteristics:      analysis.Characteristics,
		MaterialType:         analysis.MaterialType,
		DisposalInstructions: analysis.DisposalInstructions,
		BaselineScore:        result.Score,
		BaselineMatch:        result.Match,
		BaselineReasoning:    result.Reasoning,
	})
	if err != nil {
		telemetry.Warn("score.narrative_skipped", map[string]any{
			"stage": string(StageScoring),
			"error": err.Error(),
		})
		return result, false
	}

	narrative, err := DecodeScore(raw)
	if err != nil {
		telemetry.Warn("score.degraded", map[string]any{
			"stage": string(StageScoring),
			"error": err.Error(),
		})
		return fallbackScore(analysis.DetectedCategory, expected), true
	}

	// Merge prose only. The engine keeps the score, the match verdict and
	// the reasoning it derived.
	if narrative.DetailedAnalysis != "" {
		result.DetailedAnalysis = narrative.DetailedAnalysis
	}
	if len(narrative.Suggestions) > 0 {
		result.Suggestions = capList(narrative.Suggestions, maxSuggestions)
	}
	if len(narrative.ImprovementTips) > 0 {
		result.ImprovementTips = capList(narrative.ImprovementTips, maxTips)
	}
	if len(narrative.LearningPoints) > 0 {
		result.LearningPoints = capList(narrative.LearningPoints, maxLearningPoints)
	}

	telemetry.Info("score.complete", map[string]any{
		"stage":      string(StageScoring),
		"score":      result.Score,
		"isCorrect":  result.Match,
		"durationMs": s.now().Sub(stageStart).Milliseconds(),
	})
	return result, false
}

// fallbackScore grades on case-insensitive string equality alone, without
// group credit. Used only when a narrative reply arrived but could not be
// interpreted.
func fallbackScore(detected, expected string) ScoreResult {
	equal := strings.EqualFold(strings.TrimSpace(detected), strings.TrimSpace(expected))
	score := fallbackScoreMismatch
	if equal {
		score = fallbackScoreMatch
	}
	return ScoreResult{
		Match:            equal,
		Score:            score,
		Reasoning:        "detailed grading was unavailable; graded on category match only",
		Suggestions:      []string{"keep practicing waste sorting"},
		ImprovementTips:  []string{"retry later for a detailed evaluation"},
		DetailedAnalysis: "detailed grading was unavailable; graded on category match only",
		LearningPoints:   []string{"sorting accuracy matters more than the numeric grade"},
	}
}

func (s *Service) summarize(score int) Summary {
	var recommendation string
	switch {
	case score >= excellentThreshold:
		recommendation = "Excellent! You have mastered waste sorting."
	case score >= goodThreshold:
		recommendation = "Good job. Review the details of this category to go further."
	case score >= improvableThreshold:
		recommendation = "Not bad, but there is room for improvement. Study the sorting standard."
	default:
		recommendation = "Keep learning. Revisit the basics of waste sorting and try again."
	}
	return Summary{
		FinalScore:     score,
		Recommendation: recommendation,
		Timestamp:      s.now().UTC().Format(time.RFC3339),
	}
}

func (s *Service) buildRecord(input Input, analysis AnalysisResult, scoring ScoreResult, summary Summary, elapsed time.Duration) Record {
	raw := map[string]any{
		"ai_detected_category": analysis.DetectedCategory,
		"ai_confidence":        analysis.Confidence,
		"is_correct":           scoring.Match,
		"score":                float64(scoring.Score),
		"ai_analysis":          scoring.DetailedAnalysis,
		"processing_time_ms":   float64(elapsed.Milliseconds()),
		"ai_response": map[string]any{
			"analysis": analysis,
			"scoring":  scoring,
			"input": map[string]any{
				"imageUrl":         input.ImageURL,
				"expectedCategory": input.ExpectedCategory,
				"userLocation":     input.UserLocation,
			},
			"timestamp": summary.Timestamp,
		},
	}
	return NormalizeRecord(raw, elapsed)
}

// failureOutcome produces the canonical zero-score record for runs that
// could not proceed past validation or a dead provider.
func (s *Service) failureOutcome(input Input, started time.Time, cause error) Outcome {
	elapsed := s.now().Sub(started)
	timestamp := s.now().UTC().Format(time.RFC3339)

	record := NormalizeRecord(map[string]any{
		"ai_detected_category": "unknown",
		"ai_confidence":        0.0,
		"is_correct":           false,
		"score":                0.0,
		"ai_analysis":          fmt.Sprintf("classification failed: %v", cause),
		"processing_time_ms":   float64(elapsed.Milliseconds()),
		"ai_response": map[string]any{
			"error": cause.Error(),
			"input": map[string]any{
				"imageUrl":         input.ImageURL,
				"expectedCategory": input.ExpectedCategory,
				"userLocation":     input.UserLocation,
			},
			"timestamp": timestamp,
		},
	}, elapsed)

	telemetry.Error("classification.failed", map[string]any{
		"stage":      string(StageFailed),
		"error":      cause.Error(),
		"durationMs": elapsed.Milliseconds(),
	})

	return Outcome{
		Record: record,
		Summary: Summary{
			FinalScore:     0,
			Recommendation: "Classification could not be completed. Please try again.",
			Timestamp:      timestamp,
		},
	}
}
