package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	TemplateImprove = "resume_improve"
	TemplateRewrite = "resume_rewrite"
)

// PromptContext carries the optional parts of a prompt. JobDescription and
// TargetRole are mutually exclusive.
type PromptContext struct {
	JobDescription string
	TargetRole     string
	Reference      string
}

type PromptBuilder struct {
	dir string
}

func NewPromptBuilder(dir string) *PromptBuilder {
	return &PromptBuilder{dir: dir}
}

// Build reads <dir>/<templateKey>.txt and appends the resume and context
// sections. Templates are read on every call so edits apply without a restart.
func (pb *PromptBuilder) Build(templateKey, resumeText string, pc PromptContext) (string, error) {
	jobDescription := strings.TrimSpace(pc.JobDescription)
	targetRole := strings.TrimSpace(pc.TargetRole)

	if jobDescription != "" && targetRole != "" {
		return "", fmt.Errorf("%w: job_description and target_role cannot be combined", ErrValidation)
	}

	template, err := os.ReadFile(filepath.Join(pb.dir, templateKey+".txt"))
	if err != nil {
		return "", fmt.Errorf("failed to load prompt template %s: %w", templateKey, err)
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(string(template)))
	sb.WriteString("\n\nResume:\n")
	sb.WriteString(resumeText)

	if jobDescription != "" {
		sb.WriteString("\n\nJob Description:\n")
		sb.WriteString(jobDescription)
	}

	if targetRole != "" {
		sb.WriteString("\n\nTarget Role:\n")
		sb.WriteString(targetRole)
	}

	if reference := strings.TrimSpace(pc.Reference); reference != "" {
		sb.WriteString("\n\nReference Material:\n")
		sb.WriteString(reference)
	}

	return sb.String(), nil
}

// BuildRetrievalQuery creates the query used to look up role references.
func (pb *PromptBuilder) BuildRetrievalQuery(targetRole string) string {
	return fmt.Sprintf("Responsibilities, skills and qualifications for a %s", strings.TrimSpace(targetRole))
}

// FormatReferenceContext renders retrieved role chunks for the prompt.
func FormatReferenceContext(results []SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		text := strings.TrimSpace(result.Text)
		if text == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("--- Reference %d (%s, score %.2f) ---\n%s",
			i+1, result.Source, result.Score, text))
	}

	return strings.Join(parts, "\n\n")
}
