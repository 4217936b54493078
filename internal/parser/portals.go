package parser

// Descriptor identifies one known job board: its primary domain and the
// CSS selectors used to find the description container and the
// directly-scrapable header fields.
type Descriptor struct {
	Key         string
	Domain      string
	Container   string
	Description string
	Title       string
	Company     string
	Location    string
	JobType     string
}

// portals is the portal registry. It is read-only after process start;
// adding a portal is a data change here, never a new code branch.
var portals = map[string]Descriptor{
	"linkedin": {
		Key:         "linkedin",
		Domain:      "linkedin.com",
		Container:   ".description__text",
		Description: ".show-more-less-html__markup",
		Title:       ".top-card-layout__title",
		Company:     ".topcard__org-name-link",
		Location:    ".topcard__flavor--bullet",
		JobType:     ".description__job-criteria-text",
	},
	"indeed": {
		Key:         "indeed",
		Domain:      "indeed.com",
		Container:   ".jobsearch-jobDescriptionText",
		Description: "#jobDescriptionText",
		Title:       ".jobsearch-JobInfoHeader-title",
		Company:     `[data-testid="inlineHeader-companyName"]`,
		Location:    `[data-testid="inlineHeader-companyLocation"]`,
		JobType:     ".jobsearch-JobMetadataHeader-item",
	},
	"glassdoor": {
		Key:         "glassdoor",
		Domain:      "glassdoor.com",
		Container:   ".jobDescriptionContent",
		Description: ".desc",
		Title:       `[data-test="job-title"]`,
		Company:     `[data-test="employer-name"]`,
		Location:    `[data-test="location"]`,
		JobType:     `[data-test="employment-type"]`,
	},
	"infojobs": {
		Key:         "infojobs",
		Domain:      "infojobs.net",
		Container:   "#prefijoDescripcion1",
		Description: ".highlight-text",
		Title:       "#prefijoPuesto",
		Company:     ".panel-canvas .link",
		Location:    "#prefijoPoblacion",
		JobType:     "#prefijoJornada",
	},
	"tecnoempleo": {
		Key:         "tecnoempleo",
		Domain:      "tecnoempleo.com",
		Container:   ".vacancy-description",
		Description: ".text-gray-800",
		Title:       "h1.h3",
		Company:     "a.link-muted",
		Location:    ".list-unstyled .fa-map-marker-alt",
		JobType:     ".list-unstyled .fa-briefcase",
	},
}

// LookupPortal returns the descriptor for a canonical portal key.
func LookupPortal(key string) (Descriptor, bool) {
	d, ok := portals[key]
	return d, ok
}
