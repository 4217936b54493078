package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jobtrackr/backend/internal/parser"
)

type fakeProvider struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeProvider) Complete(_ context.Context, _, prompt string, _ float64, _ int) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

const sampleContent = "We are hiring a Senior Engineer to build our Go backend. " +
	"You will work with Postgres, Redis and a small platform team. Competitive salary."

func TestExtractParsedResponse(t *testing.T) {
	provider := &fakeProvider{response: `{
		"position": "Senior Engineer",
		"company": "Acme",
		"location": "Remote",
		"salary": "$120K-$150K",
		"job_type": "Remote, Full-time",
		"description": "Build and operate Go services."
	}`}
	svc := &LLMService{Provider: provider}

	got := svc.Extract(context.Background(), sampleContent, parser.Hints{URL: "https://acme.dev/jobs/1"})

	if got.Outcome != parser.OutcomeParsed {
		t.Fatalf("outcome = %q, want parsed", got.Outcome)
	}
	if got.Position != "Senior Engineer" || got.Company != "Acme" {
		t.Errorf("unexpected listing: %+v", got.JobListing)
	}
	if got.JobType != parser.JobTypeFullTime {
		t.Errorf("job_type = %q, want normalized", got.JobType)
	}
}

// A provider failure (timeout, auth, quota) degrades to mock data and
// never surfaces as an error.
func TestExtractProviderErrorFallsBackToMock(t *testing.T) {
	provider := &fakeProvider{err: errors.New("context deadline exceeded")}
	svc := &LLMService{Provider: provider}

	got := svc.Extract(context.Background(), sampleContent, parser.Hints{
		URL:   "https://acme.dev/jobs/1",
		Title: "Senior Engineer at Acme",
	})

	if got.Outcome != parser.OutcomeMocked {
		t.Fatalf("outcome = %q, want mocked", got.Outcome)
	}
	if got.Position == "" || got.Company == "" || got.Description == "" {
		t.Errorf("mock fallback left empty fields: %+v", got.JobListing)
	}
}

// Syntactically broken JSON with a recognizable {...} inside is repaired
// rather than discarded.
func TestExtractRepairsMalformedResponse(t *testing.T) {
	provider := &fakeProvider{response: "Here you go: " +
		`{"position": "X", "company": "Acme", "location": "", "salary": "", "job_type": "", "description": "d"}` +
		" -- hope that helps!"}
	svc := &LLMService{Provider: provider}

	got := svc.Extract(context.Background(), sampleContent, parser.Hints{})

	if got.Outcome != parser.OutcomeRepaired {
		t.Fatalf("outcome = %q, want repaired", got.Outcome)
	}
	if got.Position != "X" || got.Company != "Acme" {
		t.Errorf("repair lost fields: %+v", got.JobListing)
	}
}

func TestExtractWithoutProviderUsesMock(t *testing.T) {
	svc := &LLMService{}
	got := svc.Extract(context.Background(), sampleContent, parser.Hints{URL: "https://acme.dev/jobs/1"})

	if got.Outcome != parser.OutcomeMocked {
		t.Fatalf("outcome = %q, want mocked", got.Outcome)
	}
	if got.Position == "" || got.Company == "" || got.Description == "" {
		t.Errorf("mock listing left empty fields: %+v", got.JobListing)
	}
}

func TestExtractEmptyContentReturnsPlaceholders(t *testing.T) {
	provider := &fakeProvider{response: "ignored"}
	svc := &LLMService{Provider: provider}

	got := svc.Extract(context.Background(), "   ", parser.Hints{})

	if len(provider.prompts) != 0 {
		t.Error("empty content must not reach the provider")
	}
	if got.Position != "Untitled Position" || got.Company != "Untitled Company" {
		t.Errorf("unexpected placeholders: %+v", got.JobListing)
	}
}

func TestExtractPromptCarriesHintsAndBoundedContent(t *testing.T) {
	provider := &fakeProvider{response: `{"position": "p", "company": "", "location": "", "salary": "", "job_type": "", "description": ""}`}
	svc := &LLMService{Provider: provider}

	longContent := strings.Repeat("detail ", 2000)
	svc.Extract(context.Background(), longContent, parser.Hints{
		URL:    "https://linkedin.com/jobs/view/9",
		Title:  "Go Developer",
		Portal: "linkedin",
	})

	if len(provider.prompts) != 1 {
		t.Fatalf("expected one provider call, got %d", len(provider.prompts))
	}
	prompt := provider.prompts[0]
	for _, want := range []string{"URL: https://linkedin.com/jobs/view/9", "Page Title: Go Developer", "Job Portal: linkedin"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	// The embedded listing text is capped well below the full input.
	if len(prompt) > promptContentLimit+2500 {
		t.Errorf("prompt length %d suggests content was not truncated", len(prompt))
	}
}

func TestExtractDerivesCompanyFromURL(t *testing.T) {
	provider := &fakeProvider{response: `{"position": "p", "company": "", "location": "", "salary": "", "job_type": "", "description": ""}`}
	svc := &LLMService{Provider: provider}

	got := svc.Extract(context.Background(), sampleContent, parser.Hints{
		URL: "https://www.linkedin.com/company/acme-corp/jobs/1",
	})

	if got.Company != "Acme Corp" {
		t.Errorf("company = %q, want derived from the URL path", got.Company)
	}
}
