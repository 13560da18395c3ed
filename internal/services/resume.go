package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"alfredoptarigan/resume-analyzer/internal/models"
)

const referenceLimit = 3

// ResumeService runs the extraction, prompting and normalization pipeline
// behind every API endpoint.
type ResumeService interface {
	ExtractText(data []byte, filename string) (string, error)
	Analyze(ctx context.Context, resumeText, jobDescription string, useSimilarity bool) (models.AnalysisResult, error)
	Improve(ctx context.Context, resumeText, jobDescription string) (Normalized, error)
	Rewrite(ctx context.Context, resumeText, targetRole string) (models.RewrittenResume, error)
}

// ResumeServiceDeps wires the pipeline. Scorer and Index are optional; Index
// needs Embedder.
type ResumeServiceDeps struct {
	Extractor DocumentExtractor
	Prompts   *PromptBuilder
	Generator TextGenerator
	Cleaner   *Cleaner
	Scorer    SimilarityScorer
	Index     ReferenceIndex
	Embedder  Embedder
}

type resumeService struct {
	extractor DocumentExtractor
	prompts   *PromptBuilder
	generator TextGenerator
	cleaner   *Cleaner
	scorer    SimilarityScorer
	index     ReferenceIndex
	embedder  Embedder
}

func NewResumeService(deps ResumeServiceDeps) ResumeService {
	cleaner := deps.Cleaner
	if cleaner == nil {
		cleaner = NewCleaner()
	}

	return &resumeService{
		extractor: deps.Extractor,
		prompts:   deps.Prompts,
		generator: deps.Generator,
		cleaner:   cleaner,
		scorer:    deps.Scorer,
		index:     deps.Index,
		embedder:  deps.Embedder,
	}
}

func (s *resumeService) ExtractText(data []byte, filename string) (string, error) {
	text, err := s.extractor.Extract(data, filename)
	if err != nil {
		return "", err
	}

	log.Printf("📄 Extracted %d characters from %s", len(text), filename)
	return text, nil
}

// Analyze asks the model for a structured review. With useSimilarity and a job
// description, the embedding score replaces the model's own match_score.
func (s *resumeService) Analyze(ctx context.Context, resumeText, jobDescription string, useSimilarity bool) (models.AnalysisResult, error) {
	jobDescription = s.cleaner.CleanJobDescription(jobDescription)

	normalized, err := s.generate(ctx, TemplateImprove, resumeText, PromptContext{JobDescription: jobDescription})
	if err != nil {
		return models.AnalysisResult{}, err
	}

	var similarity *float64
	if useSimilarity && jobDescription != "" && s.scorer != nil {
		score, err := s.scorer.Score(ctx, resumeText, jobDescription)
		if err != nil {
			log.Printf("⚠️  Similarity scoring failed, using model score: %v", err)
		} else {
			similarity = &score
		}
	}

	return AssembleAnalysis(normalized, similarity), nil
}

// Improve returns the normalized reply as-is.
func (s *resumeService) Improve(ctx context.Context, resumeText, jobDescription string) (Normalized, error) {
	jobDescription = s.cleaner.CleanJobDescription(jobDescription)
	if jobDescription == "" {
		return nil, fmt.Errorf("%w: missing required field(s): job_description", ErrValidation)
	}

	return s.generate(ctx, TemplateImprove, resumeText, PromptContext{JobDescription: jobDescription})
}

func (s *resumeService) Rewrite(ctx context.Context, resumeText, targetRole string) (models.RewrittenResume, error) {
	targetRole = strings.TrimSpace(targetRole)
	if targetRole == "" {
		return models.RewrittenResume{}, fmt.Errorf("%w: missing required field(s): target_role", ErrValidation)
	}

	pc := PromptContext{
		TargetRole: targetRole,
		Reference:  s.lookupReferences(ctx, targetRole),
	}

	normalized, err := s.generate(ctx, TemplateRewrite, resumeText, pc)
	if err != nil {
		return models.RewrittenResume{}, err
	}

	return AssembleRewrite(normalized), nil
}

func (s *resumeService) generate(ctx context.Context, templateKey, resumeText string, pc PromptContext) (Normalized, error) {
	prompt, err := s.prompts.Build(templateKey, resumeText, pc)
	if err != nil {
		return nil, err
	}

	log.Printf("🤖 Sending %s prompt (%d characters)", templateKey, len(prompt))

	reply, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return Normalize(reply), nil
}

// lookupReferences returns formatted role chunks, or "" when the index is
// disabled or unreachable.
func (s *resumeService) lookupReferences(ctx context.Context, targetRole string) string {
	if s.index == nil || s.embedder == nil {
		return ""
	}

	embedding, err := s.embedder.Embed(ctx, s.prompts.BuildRetrievalQuery(targetRole))
	if err != nil {
		log.Printf("⚠️  Reference lookup skipped: %v", err)
		return ""
	}

	results, err := s.index.Search(ctx, embedding, referenceLimit)
	if err != nil {
		log.Printf("⚠️  Reference lookup skipped: %v", err)
		return ""
	}

	log.Printf("🔍 Found %d reference chunks for %q", len(results), targetRole)
	return FormatReferenceContext(results)
}
