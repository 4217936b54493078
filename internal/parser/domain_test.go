package parser

import "testing"

func TestNormalizeDomainPortals(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://linkedin.com/jobs/view/1", "linkedin"},
		{"https://www.linkedin.com/jobs/view/1", "linkedin"},
		{"https://linkedin.es/jobs/view/1", "linkedin"},
		{"https://linkedin.co.uk/jobs/view/1", "linkedin"},
		{"https://indeed.com/job/123", "indeed"},
		{"https://es.indeed.com/job/123", "indeed"},
		{"https://www.glassdoor.com/Job/x", "glassdoor"},
		{"https://de.glassdoor.com/Job/x", "glassdoor"},
		{"https://www.infojobs.net/of-123", "infojobs"},
		{"https://infojobs.com/of-123", "infojobs"},
		{"https://www.tecnoempleo.com/ofertas", "tecnoempleo"},
		{"https://tecnoempleo.es/ofertas", "tecnoempleo"},
	}
	for _, tt := range tests {
		if got := NormalizeDomain(tt.url); got != tt.want {
			t.Errorf("NormalizeDomain(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestNormalizeDomainSubdomainMatchesBareForm(t *testing.T) {
	bare := NormalizeDomain("https://indeed.com/job/123")
	variant := NormalizeDomain("https://es.indeed.com/job/123")
	if bare != variant {
		t.Errorf("subdomain variant %q differs from bare form %q", variant, bare)
	}
}

func TestNormalizeDomainGeneric(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://jobs.example.co.uk/posting/1", "example"},
		{"https://careers.acme.com/roles/2", "careers"},
		{"https://example.com/careers", "example.com"},
		{"http://localhost:8080/x", "localhost"},
	}
	for _, tt := range tests {
		if got := NormalizeDomain(tt.url); got != tt.want {
			t.Errorf("NormalizeDomain(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestNormalizeDomainMalformed(t *testing.T) {
	for _, url := range []string{"", "://missing-scheme", "not a url at all"} {
		if got := NormalizeDomain(url); got != "" {
			t.Errorf("NormalizeDomain(%q) = %q, want empty", url, got)
		}
	}
}

func TestCompanyFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.linkedin.com/company/acme-corp/jobs/1", "Acme Corp"},
		{"https://jobs.example.com/listing?company=initech", "Initech"},
		{"https://jobs.example.com/listing?employer=hooli_inc", "Hooli Inc"},
		{"https://jobs.example.com/listing/42", ""},
		// The /company/ path rule applies to known portals only.
		{"https://random-board.com/company/acme/1", ""},
	}
	for _, tt := range tests {
		if got := CompanyFromURL(tt.url); got != tt.want {
			t.Errorf("CompanyFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
