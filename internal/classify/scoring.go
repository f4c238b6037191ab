package classify

import (
	"fmt"
	"math"
	"strings"
)

// Scoring constants. The confidence pivot and evidence bonuses are fixed
// design constants; the score curve is defined by them, not tunable at
// runtime.
const (
	baseScoreExact     = 95
	baseScoreSameGroup = 75
	baseScoreMismatch  = 25

	confidencePivot = 0.6
	confidenceSlope = 15.0

	characteristicsBonus       = 2
	minCharacteristicsForBonus = 3
	descriptionBonus           = 3
	minDescriptionLenForBonus  = 50

	maxSuggestions    = 6
	maxTips           = 6
	maxLearningPoints = 8
)

// Score bands used by suggestion and tip rules, expressed as confidence
// percentages.
const (
	lowConfidencePct  = 60
	goodConfidencePct = 80
)

// Evidence is the auxiliary analysis data the engine scores against.
type Evidence struct {
	Description          string
	Characteristics      []string
	MaterialType         string
	DisposalInstructions string
}

// Engine computes deterministic classification scores. It is pure: identical
// input always produces identical output, and it never calls a model service.
type Engine struct{}

// Score grades a detected category against the expected one.
func (Engine) Score(detected, expected string, confidence float64, evidence Evidence) ScoreResult {
	confidence = clampFloat(confidence, 0, 1)
	verdict := Match(detected, expected)

	base := baseScoreMismatch
	switch {
	case verdict.Exact:
		base = baseScoreExact
	case verdict.SameGroup:
		base = baseScoreSameGroup
	}

	adjusted := float64(base) + (confidence-confidencePivot)*confidenceSlope
	score := int(math.Round(clampFloat(adjusted, 0, 100)))

	if len(evidence.Characteristics) >= minCharacteristicsForBonus {
		score += characteristicsBonus
	}
	if len([]rune(evidence.Description)) > minDescriptionLenForBonus {
		score += descriptionBonus
	}
	if score > 100 {
		score = 100
	}

	reasoning := buildReasoning(verdict, confidence, evidence.Characteristics)

	return ScoreResult{
		Match:            verdict.Exact || verdict.SameGroup,
		Score:            score,
		Reasoning:        reasoning,
		Suggestions:      capList(buildSuggestions(verdict, confidence, evidence), maxSuggestions),
		ImprovementTips:  capList(buildImprovementTips(verdict, confidence), maxTips),
		DetailedAnalysis: reasoning,
		LearningPoints:   capList(buildLearningPoints(detected, confidence, evidence), maxLearningPoints),
	}
}

func buildReasoning(verdict MatchResult, confidence float64, characteristics []string) string {
	var b strings.Builder
	switch {
	case verdict.Exact:
		b.WriteString("Exact match: the detected category is identical to the expected one.")
	case verdict.SameGroup:
		b.WriteString("Group match: the detected category belongs to the same waste group as the expected one.")
	default:
		b.WriteString("Mismatch: the detected category does not agree with the expected one.")
	}
	fmt.Fprintf(&b, "\nModel confidence: %.1f%%", confidence*100)
	fmt.Fprintf(&b, "\nObserved features: %s", strings.Join(characteristics, ", "))
	return b.String()
}

func buildSuggestions(verdict MatchResult, confidence float64, evidence Evidence) []string {
	var suggestions []string
	if !verdict.Exact && !verdict.SameGroup {
		suggestions = append(suggestions,
			"Re-check the photo quality and shooting angle",
			"Confirm your understanding of the waste sorting standard")
	}
	if confidence*100 < lowConfidencePct {
		suggestions = append(suggestions,
			"The photo may not be clear enough; consider retaking it",
			"Make sure the item is clearly visible in the frame")
	}
	if len(evidence.Characteristics) < 2 {
		suggestions = append(suggestions,
			"Few features were recognized; a clearer photo may help")
	}
	suggestions = append(suggestions,
		fmt.Sprintf("Reference disposal method: %s", evidence.DisposalInstructions))
	return suggestions
}

func buildImprovementTips(verdict MatchResult, confidence float64) []string {
	var tips []string
	if confidence*100 < goodConfidencePct {
		tips = append(tips,
			"Shoot with plenty of light",
			"Place the item against a plain background",
			"Let the item fill most of the frame")
	}
	if !verdict.Exact {
		tips = append(tips,
			"Study the waste sorting standard and learn each category's traits",
			"Practice recognizing different kinds of waste")
	}
	return tips
}

func buildLearningPoints(detected string, confidence float64, evidence Evidence) []string {
	lead := evidence.Characteristics
	if len(lead) > 2 {
		lead = lead[:2]
	}
	points := []string{
		fmt.Sprintf("Key traits of %s: %s", detected, strings.Join(lead, ", ")),
		fmt.Sprintf("Material type: %s", evidence.MaterialType),
		fmt.Sprintf("Correct disposal: %s", evidence.DisposalInstructions),
	}
	if confidence > 0.8 {
		points = append(points, "Recognition confidence is high; the result is trustworthy")
	} else {
		points = append(points, "Improve the photo quality for a more reliable recognition")
	}
	return points
}

func capList(items []string, limit int) []string {
	if items == nil {
		return []string{}
	}
	if len(items) > limit {
		return items[:limit]
	}
	return items
}

func clampFloat(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}
