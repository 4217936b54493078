package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/jobtrackr/backend/internal/config"
	"github.com/jobtrackr/backend/internal/parser"
)

const (
	extractionSystemPrompt = "You are a specialized job listing parser. Extract structured information from job listings accurately."

	// promptContentLimit bounds the reduced text embedded in the prompt.
	promptContentLimit = 4000

	extractionTemperature = 0.1
	extractionMaxTokens   = 1000

	defaultLLMTimeout = 30 * time.Second
)

// Provider abstracts the underlying model so handlers and tests can swap
// in fakes. A single extraction makes exactly one Complete call.
type Provider interface {
	Complete(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error)
}

// GoogleAIProvider backs Provider with Gemini through langchaingo.
type GoogleAIProvider struct {
	model llms.Model
}

func NewGoogleAIProvider(ctx context.Context, apiKey, model string) (*GoogleAIProvider, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, err
	}
	return &GoogleAIProvider{model: llm}, nil
}

func (p *GoogleAIProvider) Complete(ctx context.Context, system, prompt string, temperature float64, maxTokens int) (string, error) {
	resp, err := p.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, system),
			llms.TextParts(llms.ChatMessageTypeHuman, prompt),
		},
		llms.WithTemperature(temperature),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no candidates")
	}
	return resp.Choices[0].Content, nil
}

// LLMService turns reduced listing text into structured job data. A nil
// Provider means no credential was configured: every extraction then
// takes the mock path, which keeps the pipeline demoable without keys.
type LLMService struct {
	Provider Provider
	Timeout  time.Duration
}

func NewLLMService(cfg *config.Config) *LLMService {
	svc := &LLMService{Timeout: cfg.LLMTimeout}
	if cfg.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set; job extraction will return mock data")
		return svc
	}
	provider, err := NewGoogleAIProvider(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Printf("Gemini client init failed: %v; job extraction will return mock data", err)
		return svc
	}
	svc.Provider = provider
	return svc
}

// Extract produces a complete JobListing from reduced text. It never
// returns an error: provider failures, timeouts and malformed responses
// all degrade to repaired or mocked output, and the result is always
// schema-valid.
func (s *LLMService) Extract(ctx context.Context, content string, hints parser.Hints) parser.Extraction {
	if hints.Company == "" {
		hints.Company = parser.CompanyFromURL(hints.URL)
	}

	if strings.TrimSpace(content) == "" {
		return parser.Extraction{
			JobListing: parser.JobListing{
				Position: orDefault(hints.Title, "Untitled Position"),
				Company:  orDefault(hints.Company, "Untitled Company"),
				Location: orDefault(hints.Location, "Untitled Location"),
				JobType:  parser.NormalizeJobType(hints.JobType),
				Link:     hints.URL,
			},
			Outcome: parser.OutcomeMocked,
		}
	}

	if s.Provider == nil {
		return parser.Extraction{JobListing: parser.MockListing(content, hints), Outcome: parser.OutcomeMocked}
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := s.Provider.Complete(ctx, extractionSystemPrompt, buildExtractionPrompt(content, hints), extractionTemperature, extractionMaxTokens)
	if err != nil {
		log.Printf("job extraction call failed: %v; falling back to mock data", err)
		return parser.Extraction{JobListing: parser.MockListing(content, hints), Outcome: parser.OutcomeMocked}
	}

	listing, outcome := parser.ParseResponse(raw, hints)
	return parser.Extraction{JobListing: listing, Outcome: outcome}
}

func buildExtractionPrompt(content string, hints parser.Hints) string {
	var ctxLines strings.Builder
	addLine := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&ctxLines, "%s: %s\n", label, value)
		}
	}
	addLine("URL", hints.URL)
	addLine("Page Title", hints.Title)
	addLine("Job Portal", hints.Portal)
	addLine("Company", hints.Company)
	addLine("Location", hints.Location)
	addLine("Job Type", hints.JobType)

	if hints.Company != "" || hints.Location != "" || hints.JobType != "" {
		ctxLines.WriteString("\nPre-extracted information (verify and use if accurate):\n")
		addLine("Company", hints.Company)
		addLine("Location", hints.Location)
		addLine("Job Type", hints.JobType)
	}

	if len(content) > promptContentLimit {
		content = content[:promptContentLimit]
	}

	return fmt.Sprintf(`%s
Below is the content of a job listing. Please extract the following information in JSON format:

1. Position/Job Title (if available, if not use the job description to provide a proper job title)
2. Company Name
3. Location (city, state, country, or remote)
4. Salary Range (if available)
5. Job Type (full-time, part-time, contract, freelance, internship, temporary, or other)
6. Job Description (summarized in 2-3 sentences)

Important instructions:
- Pay special attention to extracting the company name correctly
- If the company name is not explicitly mentioned, check if it appears in the URL or page title
- For LinkedIn job listings, look for the company name near the job title or in the top card section
- Return all responses in English, even if the original content is in another language
- The 'position' field MUST contain only the job title. Do NOT include work model details like 'remote' or 'hybrid'.
- The 'job_type' field should include the work model (e.g., Remote, Hybrid, On-site) and the employment type (e.g., Full-time, Contract). Combine them if multiple are found.
- You MUST provide a 2-3 sentence summary for the 'description' field. It cannot be empty.

Return ONLY a valid JSON object with the following structure:
{
    "position": "extracted job title",
    "company": "extracted company name",
    "location": "extracted location",
    "salary": "extracted salary range",
    "job_type": "extracted job type",
    "description": "extracted job description summary"
}

If any field is not found in the text, use an empty string for that field.

Job Listing Content:
%s
`, ctxLines.String(), content)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
