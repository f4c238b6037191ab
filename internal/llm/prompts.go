package llm

import (
	"fmt"
	"strings"
)

// AnalyzeSystemPrompt instructs the model to return a structured analysis of
// a waste photo. Shared across providers.
const AnalyzeSystemPrompt = `You are a waste sorting expert. Analyze the item in the photo and classify it
under the waste sorting standard used in the given region. The four categories
are: 可回收垃圾 (recyclable), 有害垃圾 (hazardous), 湿垃圾 (wet/organic) and
干垃圾 (dry/residual).

Respond with a single JSON object containing exactly these fields:
- detectedCategory: the waste category label
- confidence: recognition confidence between 0 and 1
- description: a detailed description of the item
- characteristics: a list of 1 to 5 observed features
- materialType: the dominant material
- disposalInstructions: how to dispose of the item correctly

Respond ONLY with the JSON object, no markdown or other text.`

// ElaborateSystemPrompt instructs the model to explain a deterministic
// scoring baseline without altering it.
const ElaborateSystemPrompt = `You are a waste sorting grading assistant. You receive a classification
result together with a deterministic baseline score. Do not change the score
or the match verdict; only explain them.

Respond with a single JSON object containing exactly these fields:
- detailedAnalysis: a professional but accessible analysis of the result
- suggestions: a list of concrete suggestions for the user
- improvementTips: a list of tips for taking better photos and classifying better
- learningPoints: a list of waste sorting knowledge takeaways

Respond ONLY with the JSON object, no markdown or other text.`

// BuildAnalyzeUserPrompt renders the per-request part of the analysis prompt.
func BuildAnalyzeUserPrompt(input AnalyzeInput) string {
	location := strings.TrimSpace(input.LocationHint)
	if location == "" {
		location = "中国"
	}
	return fmt.Sprintf("Classify the item in the attached photo using the waste sorting standard of: %s", location)
}

// BuildElaborateUserPrompt renders the scoring evidence for the narrative
// collaborator.
func BuildElaborateUserPrompt(input ElaborateInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Detected category: %s\n", input.DetectedCategory)
	fmt.Fprintf(&b, "Expected category: %s\n", input.ExpectedCategory)
	fmt.Fprintf(&b, "Confidence: %.1f%%\n", input.Confidence*100)
	fmt.Fprintf(&b, "Material type: %s\n", input.MaterialType)
	fmt.Fprintf(&b, "Description: %s\n", input.Description)
	fmt.Fprintf(&b, "Characteristics: %s\n", strings.Join(input.Characteristics, ", "))
	fmt.Fprintf(&b, "Disposal instructions: %s\n", input.DisposalInstructions)
	fmt.Fprintf(&b, "Baseline score: %d\n", input.BaselineScore)
	fmt.Fprintf(&b, "Baseline verdict: %s\n", verdictLabel(input.BaselineMatch))
	fmt.Fprintf(&b, "Baseline reasoning: %s\n", input.BaselineReasoning)
	return b.String()
}

func verdictLabel(match bool) string {
	if match {
		return "match"
	}
	return "mismatch"
}
