package parser

import (
	"strings"
	"testing"
)

const linkedinFixture = `<html><head><title>Backend Engineer | LinkedIn</title></head><body>
<header><nav>Home Jobs Messaging</nav></header>
<h1 class="top-card-layout__title">Backend Engineer</h1>
<a class="topcard__org-name-link">Acme Corp · Madrid, Spain</a>
<span class="description__job-criteria-text">Full-time</span>
<script>trackPageView();</script>
<div class="description__text">
  <!-- rendered by the jobs widget -->
  <h2>About the role</h2>
  <p>We are building the data platform that powers our hiring products.
  You will own services end to end, from design through production operations.</p>
  <ul><li>Design and ship Go services</li><li>Operate Postgres at scale</li></ul>
  <span class="spacer"></span>
</div>
<footer>About Cookie Policy</footer>
</body></html>`

func TestReduceEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		rc := Reduce(in, "https://linkedin.com/jobs/view/1")
		if rc.Content != "" {
			t.Errorf("Reduce(%q) content = %q, want empty", in, rc.Content)
		}
		if rc.Portal != "" {
			t.Errorf("Reduce(%q) portal = %q, want empty", in, rc.Portal)
		}
		if rc.StructuredData == nil {
			t.Error("StructuredData must never be nil")
		}
	}
}

func TestReducePortalMode(t *testing.T) {
	rc := Reduce(linkedinFixture, "https://www.linkedin.com/jobs/view/123")

	if rc.Portal != "linkedin" {
		t.Fatalf("portal = %q, want linkedin", rc.Portal)
	}
	if rc.HTMLContainer == "" {
		t.Error("portal mode must produce an html container")
	}
	if strings.Contains(rc.HTMLContainer, "rendered by the jobs widget") {
		t.Error("comment nodes should be stripped from the container")
	}
	if strings.Contains(rc.HTMLContainer, `class="spacer"`) {
		t.Error("empty childless elements should be removed")
	}
	if !strings.Contains(rc.Content, "## About the role") {
		t.Errorf("content lost heading structure:\n%s", rc.Content)
	}
	if !strings.Contains(rc.Content, "- Design and ship Go services") {
		t.Errorf("content lost list structure:\n%s", rc.Content)
	}
	if strings.Contains(rc.Content, "trackPageView") {
		t.Error("script content leaked into reduced text")
	}
}

func TestReducePortalStructuredData(t *testing.T) {
	rc := Reduce(linkedinFixture, "https://www.linkedin.com/jobs/view/123")

	sd := rc.StructuredData
	if sd["title"] != "Backend Engineer" {
		t.Errorf("title = %q", sd["title"])
	}
	if sd["company"] != "Acme Corp" {
		t.Errorf("company = %q, want the part before the middle dot", sd["company"])
	}
	if sd["location"] != "Madrid, Spain" {
		t.Errorf("location = %q, want the part after the middle dot", sd["location"])
	}
	if sd["job_type"] != "Full-time" {
		t.Errorf("job_type = %q", sd["job_type"])
	}
}

func TestReducePortalContainerMissingFallsBackToGeneric(t *testing.T) {
	html := `<html><body><div class="description">` +
		strings.Repeat("A generic but substantial job description paragraph. ", 10) +
		`</div></body></html>`
	rc := Reduce(html, "https://www.linkedin.com/jobs/view/123")

	if rc.Portal != "" {
		t.Errorf("portal = %q, want empty after generic fallback", rc.Portal)
	}
	if rc.Content == "" {
		t.Error("generic fallback produced no content")
	}
}

func TestReduceGenericMode(t *testing.T) {
	html := `<html><body>
<nav>Home</nav>
<div class="sidebar">Unrelated links</div>
<div class="description">Senior Engineer at Acme — Remote, Full-time, $120K-$150K. ` +
		strings.Repeat("You will design, build and operate distributed systems in Go. ", 5) +
		`</div>
<div class="related-jobs">Ten more jobs you may like</div>
<footer>Legal</footer>
</body></html>`
	rc := Reduce(html, "https://jobs.acme-careers.com/listing/1")

	if rc.Portal != "" {
		t.Errorf("portal = %q, want empty in generic mode", rc.Portal)
	}
	if !strings.Contains(rc.Content, "Remote") || !strings.Contains(rc.Content, "Full-time") {
		t.Errorf("content lost the work model details:\n%s", rc.Content)
	}
	for _, noise := range []string{"Unrelated links", "Ten more jobs", "Legal"} {
		if strings.Contains(rc.Content, noise) {
			t.Errorf("noise %q leaked into content", noise)
		}
	}
	if rc.HTMLContainer != "" {
		t.Error("generic mode does not produce an html container")
	}
}

func TestReduceGenericFallsBackToBody(t *testing.T) {
	rc := Reduce(`<html><body><p>Short posting.</p></body></html>`, "https://example.org/x")
	if !strings.Contains(rc.Content, "Short posting.") {
		t.Errorf("body fallback lost content: %q", rc.Content)
	}
}

func TestReduceContentSizeCap(t *testing.T) {
	big := `<html><body><div class="description"><p>` +
		strings.Repeat("word ", 8000) +
		`</p></div></body></html>`
	rc := Reduce(big, "https://example.org/huge")
	if len(rc.Content) > 10000 {
		t.Errorf("content length %d exceeds cap", len(rc.Content))
	}
	if rc.Content == "" {
		t.Error("capped content should not be empty")
	}
}

func TestReduceUnparseableDegradesToRawDump(t *testing.T) {
	// Tag soup still parses; the degrade path must at least never panic
	// and always return bounded, non-nil output.
	rc := Reduce("<div><<<>>>"+strings.Repeat("text ", 3000), "https://example.org/x")
	if len(rc.Content) > 10000 {
		t.Errorf("degraded content length %d exceeds cap", len(rc.Content))
	}
	if rc.StructuredData == nil {
		t.Error("StructuredData must never be nil")
	}
}
