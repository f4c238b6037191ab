package classify

// Input is the boundary request for one classification run.
type Input struct {
	ImageURL         string
	ExpectedCategory string
	UserLocation     string
}

// AnalysisResult is the structured outcome of the Analyze stage. Immutable
// once produced; consumed by the Score stage.
type AnalysisResult struct {
	DetectedCategory     string   `json:"detectedCategory"`
	Confidence           float64  `json:"confidence"`
	Description          string   `json:"description"`
	Characteristics      []string `json:"characteristics"`
	MaterialType         string   `json:"materialType"`
	DisposalInstructions string   `json:"disposalInstructions"`
}

// ScoreResult is the outcome of the Score stage. Score is always an integer
// in [0,100]; Match is derived from the category verdict, never set
// independently.
type ScoreResult struct {
	Match            bool     `json:"match"`
	Score            int      `json:"score"`
	Reasoning        string   `json:"reasoning"`
	Suggestions      []string `json:"suggestions"`
	ImprovementTips  []string `json:"improvementTips"`
	DetailedAnalysis string   `json:"detailedAnalysis"`
	LearningPoints   []string `json:"learningPoints"`
}

// Record is the canonical seven-field output every entry point returns.
type Record struct {
	AIDetectedCategory string         `json:"ai_detected_category"`
	AIConfidence       float64        `json:"ai_confidence"`
	IsCorrect          bool           `json:"is_correct"`
	Score              int            `json:"score"`
	AIAnalysis         string         `json:"ai_analysis"`
	AIResponse         map[string]any `json:"ai_response"`
	ProcessingTimeMS   int64          `json:"processing_time_ms"`
}

// Summary is produced by the Summarize stage.
type Summary struct {
	FinalScore     int    `json:"finalScore"`
	Recommendation string `json:"recommendation"`
	Timestamp      string `json:"timestamp"`
}

// Outcome bundles the canonical record with the full per-stage results for
// diagnostic consumers.
type Outcome struct {
	Record   Record         `json:"classificationRecord"`
	Analysis AnalysisResult `json:"analysisResult"`
	Scoring  ScoreResult    `json:"scoringResult"`
	Summary  Summary        `json:"summary"`
}
