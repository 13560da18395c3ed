package models

type AnalysisStatus string

const (
	StatusCompleted AnalysisStatus = "completed"
)

// AnalysisResult is the response of POST /api/analyze.
// MatchScore is nil when neither the model nor the similarity scorer produced a score.
type AnalysisResult struct {
	Summary          string         `json:"summary"`
	ExtractedSkills  []string       `json:"extracted_skills"`
	MatchScore       *float64       `json:"match_score"`
	ImprovementAreas []string       `json:"improvement_areas"`
	MissingKeywords  []string       `json:"missing_keywords"`
	Status           AnalysisStatus `json:"status"`
}

type RewriteRequest struct {
	ResumeText string `json:"resume_text"`
	TargetRole string `json:"target_role"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
