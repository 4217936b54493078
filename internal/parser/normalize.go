package parser

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/url"
	"regexp"
	"strings"
)

// Job type values the extractor normalizes free text into. Empty string
// means "unknown" and is distinct from Other, which means "confirmed,
// but outside the known categories".
const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeContract   = "Contract"
	JobTypeFreelance  = "Freelance"
	JobTypeInternship = "Internship"
	JobTypeTemporary  = "Temporary"
	JobTypeOther      = "Other"
)

// JobListing is the extraction result. Position and Link are always
// populated, with placeholders if nothing better is known; JobType is
// one of the JobType constants or "".
type JobListing struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Salary      string `json:"salary"`
	JobType     string `json:"job_type"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// Outcome records how a listing was obtained, without weakening the
// guaranteed shape of the result.
type Outcome string

const (
	// OutcomeParsed means the model's response parsed as JSON directly.
	OutcomeParsed Outcome = "parsed"
	// OutcomeRepaired means the response needed substring or line-based recovery.
	OutcomeRepaired Outcome = "repaired"
	// OutcomeMocked means no usable model response existed at all.
	OutcomeMocked Outcome = "mocked"
)

// Extraction is a JobListing tagged with its provenance.
type Extraction struct {
	JobListing
	Outcome Outcome `json:"outcome"`
}

// Hints are pre-known field values passed into the extraction stage.
// They seed the prompt and backfill fields the model omits.
type Hints struct {
	URL      string
	Title    string
	Company  string
	Location string
	JobType  string
	Portal   string
}

var reJSONObject = regexp.MustCompile(`(?s)\{.*\}`)

// ParseResponse turns a raw model response into a JobListing. Valid JSON
// parses directly; otherwise a {...} substring is re-tried, and failing
// that a line-based key:value scan recovers what it can. The result is
// always schema-valid.
func ParseResponse(raw string, hints Hints) (JobListing, Outcome) {
	if fields, ok := decodeFields(raw); ok {
		return Normalize(fields, hints), OutcomeParsed
	}
	if match := reJSONObject.FindString(raw); match != "" {
		if fields, ok := decodeFields(match); ok {
			return Normalize(fields, hints), OutcomeRepaired
		}
	}
	return lineFallback(raw, hints), OutcomeRepaired
}

// Normalize builds a complete JobListing from whatever fields were
// recovered, backfilling from hints. It never rejects input.
func Normalize(fields map[string]string, hints Hints) JobListing {
	position := fields["position"]
	if position == "" {
		position = hints.Title
	}
	if position == "" {
		position = "Untitled Position"
	}
	company := fields["company"]
	if company == "" {
		company = hints.Company
	}
	location := fields["location"]
	if location == "" {
		location = hints.Location
	}
	jobType := fields["job_type"]
	if jobType == "" {
		jobType = hints.JobType
	}
	return JobListing{
		Position:    position,
		Company:     company,
		Location:    location,
		Salary:      fields["salary"],
		JobType:     NormalizeJobType(jobType),
		Description: fields["description"],
		Link:        hints.URL,
	}
}

// NormalizeJobType maps free text onto the closed job type set. It is
// total: any input yields "" or one of the JobType constants.
func NormalizeJobType(text string) string {
	t := strings.ToLower(strings.TrimSpace(text))
	switch {
	case t == "":
		return ""
	case strings.Contains(t, "full") && strings.Contains(t, "time"):
		return JobTypeFullTime
	case strings.Contains(t, "part") && strings.Contains(t, "time"):
		return JobTypePartTime
	case strings.Contains(t, "contract"):
		return JobTypeContract
	case strings.Contains(t, "freelance"):
		return JobTypeFreelance
	case strings.Contains(t, "intern"):
		return JobTypeInternship
	case strings.Contains(t, "temp"):
		return JobTypeTemporary
	default:
		return JobTypeOther
	}
}

func decodeFields(s string) (map[string]string, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, false
	}
	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		if str, ok := v.(string); ok {
			fields[k] = strings.TrimSpace(str)
		}
	}
	return fields, true
}

// lineFallback scans a non-JSON response for "field: value" lines.
func lineFallback(text string, hints Hints) JobListing {
	fields := map[string]string{}
	set := func(key, line string) {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) == 2 {
			fields[key] = strings.Trim(strings.TrimSpace(parts[1]), `"',`)
		}
	}
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "position") || strings.Contains(lower, "job title"):
			set("position", line)
		case strings.Contains(lower, "company"):
			set("company", line)
		case strings.Contains(lower, "location"):
			set("location", line)
		case strings.Contains(lower, "salary"):
			set("salary", line)
		case strings.Contains(lower, "job type") || strings.Contains(lower, "job_type"):
			set("job_type", line)
		case strings.Contains(lower, "description"):
			set("description", line)
		}
	}
	return Normalize(fields, hints)
}

var (
	mockJobTypes  = []string{"Full-time", "Part-time", "Contract", "Freelance"}
	mockLocations = []string{"Remote", "New York, NY", "San Francisco, CA", "London, UK"}
)

// MockListing generates placeholder data when no model is reachable, so
// the pipeline stays usable without credentials. Location, salary and
// job type are pseudo-random; company and description are derived from
// the URL, title and reduced text where possible. This path must never
// run when a real model response was obtained.
func MockListing(content string, hints Hints) JobListing {
	position := hints.Title
	if position == "" {
		position = "Software Developer"
	}

	company := hints.Company
	if company == "" {
		company = companyFromHost(hints.URL)
	}
	if company == "" && hints.Title != "" {
		if _, after, found := strings.Cut(hints.Title, " at "); found {
			company = strings.TrimSpace(after)
		} else if _, after, found := strings.Cut(hints.Title, " - "); found {
			company = strings.TrimSpace(after)
		}
	}
	if company == "" {
		company = "Example Company"
	}

	description := firstParagraph(content)
	if description == "" {
		description = "This is a job opportunity at " + company + "."
	}

	return JobListing{
		Position:    position,
		Company:     company,
		Location:    mockLocations[rand.Intn(len(mockLocations))],
		Salary:      fmt.Sprintf("$%dK - $%dK", 50+rand.Intn(100), 150+rand.Intn(50)),
		JobType:     NormalizeJobType(mockJobTypes[rand.Intn(len(mockJobTypes))]),
		Description: description,
		Link:        hints.URL,
	}
}

func companyFromHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	label, _, found := strings.Cut(host, ".")
	if !found || label == "" {
		return ""
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// firstParagraph returns the first substantial paragraph of the reduced
// text, truncated to a snippet.
func firstParagraph(content string) string {
	if len(content) <= 50 {
		return ""
	}
	for _, p := range strings.Split(content, "\n\n") {
		p = strings.TrimSpace(p)
		if len(p) > 30 {
			if len(p) > 150 {
				p = p[:150]
			}
			return p + "..."
		}
	}
	if len(content) > 150 {
		content = content[:150]
	}
	return content + "..."
}
