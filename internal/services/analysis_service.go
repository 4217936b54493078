package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"time"
)

const (
	analysisSystemPrompt = "You are an expert job analyst. Extract detailed, structured information from job postings. Return ONLY valid JSON."

	analysisTemperature = 0.3
	analysisMaxTokens   = 2000

	analysisDescriptionLimit = 2000
	analysisContentLimit     = 3000
)

// JobAnalysis is the detailed breakdown of a job description used by the
// CV-tailoring feature. Every field is always a sequence, never nil: a
// missing or wrong-typed field in the model output becomes an empty list.
type JobAnalysis struct {
	RequiredSkills          []string `json:"required_skills"`
	PreferredSkills         []string `json:"preferred_skills"`
	RequiredQualifications  []string `json:"required_qualifications"`
	PreferredQualifications []string `json:"preferred_qualifications"`
	Responsibilities        []string `json:"responsibilities"`
	Keywords                []string `json:"keywords"`
}

var reAnalysisJSON = regexp.MustCompile(`(?s)\{.*\}`)

// AnalysisService runs the deeper job-description analysis. It shares
// the extraction provider; a nil provider or any failure yields an empty
// but shape-valid analysis.
type AnalysisService struct {
	Provider Provider
	Timeout  time.Duration
}

func NewAnalysisService(provider Provider, timeout time.Duration) *AnalysisService {
	return &AnalysisService{Provider: provider, Timeout: timeout}
}

func (s *AnalysisService) Analyze(ctx context.Context, description, content string) JobAnalysis {
	if s.Provider == nil {
		return emptyAnalysis()
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := s.Provider.Complete(ctx, analysisSystemPrompt, buildAnalysisPrompt(description, content), analysisTemperature, analysisMaxTokens)
	if err != nil {
		log.Printf("job analysis call failed: %v; returning empty analysis", err)
		return emptyAnalysis()
	}
	return parseAnalysis(raw)
}

func parseAnalysis(raw string) JobAnalysis {
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		match := reAnalysisJSON.FindString(raw)
		if match == "" || json.Unmarshal([]byte(match), &fields) != nil {
			return emptyAnalysis()
		}
	}
	return JobAnalysis{
		RequiredSkills:          stringList(fields["required_skills"]),
		PreferredSkills:         stringList(fields["preferred_skills"]),
		RequiredQualifications:  stringList(fields["required_qualifications"]),
		PreferredQualifications: stringList(fields["preferred_qualifications"]),
		Responsibilities:        stringList(fields["responsibilities"]),
		Keywords:                stringList(fields["keywords"]),
	}
}

// stringList coerces a decoded JSON value to a string slice. Anything
// that is not a list yields an empty slice, and non-string elements are
// dropped.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func emptyAnalysis() JobAnalysis {
	return JobAnalysis{
		RequiredSkills:          []string{},
		PreferredSkills:         []string{},
		RequiredQualifications:  []string{},
		PreferredQualifications: []string{},
		Responsibilities:        []string{},
		Keywords:                []string{},
	}
}

func buildAnalysisPrompt(description, content string) string {
	if len(description) > analysisDescriptionLimit {
		description = description[:analysisDescriptionLimit]
	}
	if len(content) > analysisContentLimit {
		content = content[:analysisContentLimit]
	}
	return fmt.Sprintf(`Analyze this job posting in detail for CV optimization. Extract structured information.

Job Description:
%s

Listing Content:
%s

Provide a detailed JSON analysis with this EXACT structure:
{
    "required_skills": ["skill1", "skill2"],
    "preferred_skills": ["skill1", "skill2"],
    "required_qualifications": ["qualification1", "qualification2"],
    "preferred_qualifications": ["qualification1", "qualification2"],
    "responsibilities": ["responsibility1", "responsibility2"],
    "keywords": ["keyword1", "keyword2"]
}

Instructions:
- required_skills: Technical and soft skills explicitly REQUIRED
- preferred_skills: Skills mentioned as "nice to have", "preferred", "bonus"
- required_qualifications: Education, years of experience, certifications REQUIRED
- preferred_qualifications: Bonus qualifications
- responsibilities: Main duties and responsibilities (max 8)
- keywords: Important ATS keywords (max 20)

Return ONLY valid JSON, no additional text.`, description, content)
}
