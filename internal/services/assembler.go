package services

import (
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const NoSummary = "No summary available"

// AssembleAnalysis projects a normalized reply onto AnalysisResult. A non-nil
// similarity score takes precedence over the score reported by the model.
func AssembleAnalysis(n Normalized, similarityScore *float64) models.AnalysisResult {
	summary := n.String("summary")
	if summary == "" {
		summary = NoSummary
	}

	return models.AnalysisResult{
		Summary:          summary,
		ExtractedSkills:  analysisSkills(n),
		MatchScore:       matchScore(n, similarityScore),
		ImprovementAreas: n.Strings("improvement_areas"),
		MissingKeywords:  dedupe(n.Strings("missing_keywords")),
		Status:           models.StatusCompleted,
	}
}

// AssembleRewrite projects a normalized reply onto RewrittenResume, filling
// every field the model left out.
func AssembleRewrite(n Normalized) models.RewrittenResume {
	contact := n.Object("contact_info")

	result := models.RewrittenResume{
		ContactInfo: models.ContactInfo{
			Name:     contact.String("name"),
			Phone:    contact.String("phone"),
			Email:    contact.String("email"),
			Address:  contact.String("address"),
			LinkedIn: contact.String("linkedin"),
		},
		Summary:    n.String("summary"),
		Experience: make([]models.ExperienceItem, 0),
		Education:  make([]models.EducationItem, 0),
		Skills:     rewriteSkills(n),
		Projects:   make([]models.ProjectItem, 0),
		FullText:   n.String("full_text"),
	}

	// older prompt revisions returned the whole text as rewritten_resume
	if result.FullText == "" {
		result.FullText = n.String("rewritten_resume")
	}

	for _, item := range n.Objects("experience") {
		result.Experience = append(result.Experience, models.ExperienceItem{
			Title:   item.String("title"),
			Company: item.String("company"),
			Dates:   item.String("dates"),
			Details: textOrLines(item, "details"),
		})
	}

	for _, item := range n.Objects("education") {
		result.Education = append(result.Education, models.EducationItem{
			School:  item.String("school"),
			Degree:  item.String("degree"),
			Dates:   item.String("dates"),
			Details: textOrLines(item, "details"),
		})
	}

	for _, item := range n.Objects("projects") {
		result.Projects = append(result.Projects, models.ProjectItem{
			Name:        item.String("name"),
			Description: textOrLines(item, "description"),
			Link:        item.String("link"),
		})
	}

	return result
}

func matchScore(n Normalized, similarityScore *float64) *float64 {
	if similarityScore != nil {
		score := clampScore(*similarityScore)
		return &score
	}

	if score, ok := n.Number("match_score"); ok {
		score = clampScore(score)
		return &score
	}

	return nil
}

// analysisSkills accepts both a flat list and a categorized object.
func analysisSkills(n Normalized) []string {
	if _, ok := n["extracted_skills"].(map[string]any); ok {
		categories := n.Object("extracted_skills")
		var all []string
		all = append(all, categories.Strings("technical")...)
		all = append(all, categories.Strings("tools")...)
		all = append(all, categories.Strings("soft_skills")...)
		return dedupe(all)
	}

	return dedupe(n.Strings("extracted_skills"))
}

// rewriteSkills projects a flat skills list into the technical category.
func rewriteSkills(n Normalized) models.SkillCategory {
	if _, ok := n["skills"].(map[string]any); !ok {
		return models.SkillCategory{
			Technical:  dedupe(n.Strings("skills")),
			Tools:      make([]string, 0),
			SoftSkills: make([]string, 0),
		}
	}

	categories := n.Object("skills")
	return models.SkillCategory{
		Technical:  dedupe(categories.Strings("technical")),
		Tools:      dedupe(categories.Strings("tools")),
		SoftSkills: dedupe(categories.Strings("soft_skills")),
	}
}

func textOrLines(n Normalized, key string) string {
	if s := n.String(key); s != "" {
		return s
	}
	return strings.Join(n.Strings(key), "\n")
}

// dedupe drops case-insensitive repeats and keeps the first spelling.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))

	for _, item := range items {
		key := strings.ToLower(item)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
	}

	return out
}
