package model

// FactorScore aggregates answered questions of one factor within the
// active mode. Factors with Count == 0 never appear in a result.
type FactorScore struct {
	Sum     int     `json:"sum"`
	Count   int     `json:"count"`
	Average float64 `json:"avg"`
}

// FactorInsight is one entry of the comprehensive analysis, looked up
// from the narrative table by (factor, severity bucket).
type FactorInsight struct {
	Factor     Factor  `json:"factor"`
	Score      float64 `json:"score"`
	Status     string  `json:"status"`
	Insight    string  `json:"insight"`
	Suggestion string  `json:"suggestion"`
}

// AssessmentResult is derived entirely from the answer map and mode;
// identical input always produces an identical result.
type AssessmentResult struct {
	Level                 string                 `json:"level"`
	WarmIntro             string                 `json:"warmIntro"`
	DetailedAnalysis      string                 `json:"detailedAnalysis"`
	FactorScores          map[Factor]FactorScore `json:"factorScores"`
	ComprehensiveAnalysis []FactorInsight        `json:"comprehensiveAnalysis"`
}
