package parser

import (
	"log"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	// maxContentLen caps reduced text after all cleaning steps.
	maxContentLen = 10000
	// rawDumpLen bounds the last-resort plain-text dump when parsing fails.
	rawDumpLen = 5000
	// minContentLen is the threshold a generic content candidate must clear.
	minContentLen = 200
)

// ReducedContent is the output of HTML reduction. Content is never empty
// by accident of a nil: it defaults to "". StructuredData holds
// directly-scraped fields (title, company, location, job_type) and may
// be empty.
type ReducedContent struct {
	Portal         string            `json:"portal"`
	Content        string            `json:"content"`
	HTMLContainer  string            `json:"html_container,omitempty"`
	StructuredData map[string]string `json:"structured_data"`
}

// contentSelectors are tried in order in generic mode; the first whose
// plain text exceeds minContentLen wins.
var contentSelectors = []string{
	".job-description",
	".description",
	".job-details",
	"#job-description",
	".jobsearch-jobDescriptionText",
	".description__text",
	".job-content",
	"article",
	"main",
	".content",
	"#content",
	".container",
}

// noiseSelectors name regions that are never part of a job description.
var noiseSelectors = []string{
	"header", "footer", "nav",
	".sidebar", ".related-jobs",
	".advertisement", ".ads",
	".cookie-banner", ".popup",
	".social-share", ".apply-button",
	".similar-jobs", ".job-alert",
}

var (
	reScriptBlock = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	reStyleBlock  = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	reAnyTag      = regexp.MustCompile(`(?s)<[^>]*>`)
	reWhitespace  = regexp.MustCompile(`\s+`)
)

// Reduce strips noise from raw job listing HTML and isolates the relevant
// content subtree. Empty input is a defined no-op, not an error. Parse
// failures degrade to a bounded raw-text dump; Reduce never returns an
// error to the caller.
func Reduce(rawHTML, pageURL string) (rc ReducedContent) {
	rc = ReducedContent{StructuredData: map[string]string{}}
	if strings.TrimSpace(rawHTML) == "" {
		return rc
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("html reduction panicked: %v; using raw text dump", r)
			rc = rawFallback(rawHTML)
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		log.Printf("html parse failed: %v; using raw text dump", err)
		return rawFallback(rawHTML)
	}

	if portal, ok := portals[NormalizeDomain(pageURL)]; ok {
		if out, found := reducePortal(doc, portal); found {
			return out
		}
		// Container missing on a known portal: re-parse and reduce
		// generically, since portal mode already mutated the document.
		doc, err = goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
		if err != nil {
			return rawFallback(rawHTML)
		}
	}
	return reduceGeneric(doc)
}

// reducePortal handles documents from a registered job board. Style and
// class attributes stay intact: the structured-field selectors below
// depend on them.
func reducePortal(doc *goquery.Document, portal Descriptor) (ReducedContent, bool) {
	doc.Find("script, iframe, noscript, template").Remove()

	container := doc.Find(portal.Container).First()
	if container.Length() == 0 && portal.Description != "" {
		container = doc.Find(portal.Description).First()
	}
	if container.Length() == 0 {
		return ReducedContent{}, false
	}

	node := container.Nodes[0]
	stripComments(node)
	dropEmptyElements(container)
	collapseTextNodes(node)

	fragment, err := goquery.OuterHtml(container)
	if err != nil {
		fragment = ""
	}
	content := capContent(CleanText(StructuredText(node)))

	// Header fields live outside the description container, so the scan
	// covers the whole document.
	structured := map[string]string{}
	scrape := func(field, selector string) {
		if selector == "" {
			return
		}
		if v := strings.TrimSpace(doc.Find(selector).First().Text()); v != "" {
			structured[field] = reWhitespace.ReplaceAllString(v, " ")
		}
	}
	scrape("title", portal.Title)
	scrape("company", portal.Company)
	scrape("location", portal.Location)
	scrape("job_type", portal.JobType)

	// Some boards render "Company · Location" as one string.
	if combined, ok := structured["company"]; ok && strings.Contains(combined, "·") {
		pieces := strings.SplitN(combined, "·", 2)
		structured["company"] = strings.TrimSpace(pieces[0])
		if _, has := structured["location"]; !has {
			structured["location"] = strings.TrimSpace(pieces[1])
		}
	}

	return ReducedContent{
		Portal:         portal.Key,
		Content:        content,
		HTMLContainer:  fragment,
		StructuredData: structured,
	}, true
}

// reduceGeneric handles documents from unrecognized sites: strip noise,
// then take the first content candidate with enough text, else the body.
func reduceGeneric(doc *goquery.Document) ReducedContent {
	doc.Find("script, style, iframe, noscript, template").Remove()
	for _, selector := range noiseSelectors {
		doc.Find(selector).Remove()
	}

	var candidate *goquery.Selection
	for _, selector := range contentSelectors {
		s := doc.Find(selector).First()
		if s.Length() > 0 && len(strings.TrimSpace(s.Text())) > minContentLen {
			candidate = s
			break
		}
	}
	if candidate == nil {
		candidate = doc.Find("body").First()
	}
	if candidate.Length() == 0 {
		return ReducedContent{StructuredData: map[string]string{}}
	}

	content := capContent(CleanText(StructuredText(candidate.Nodes[0])))
	return ReducedContent{Content: content, StructuredData: map[string]string{}}
}

// rawFallback is the last-resort degrade path: strip tags from the raw
// document and keep a bounded prefix.
func rawFallback(rawHTML string) ReducedContent {
	text := reScriptBlock.ReplaceAllString(rawHTML, " ")
	text = reStyleBlock.ReplaceAllString(text, " ")
	text = reAnyTag.ReplaceAllString(text, "\n")
	text = CleanText(text)
	if len(text) > rawDumpLen {
		text = text[:rawDumpLen]
	}
	return ReducedContent{Content: text, StructuredData: map[string]string{}}
}

func capContent(text string) string {
	if len(text) > maxContentLen {
		return text[:maxContentLen]
	}
	return text
}

func stripComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			stripComments(c)
		}
		c = next
	}
}

// dropEmptyElements removes elements that have no children and no text.
func dropEmptyElements(container *goquery.Selection) {
	container.Find("*").Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "br", "hr", "img", "input":
			return
		}
		if s.Children().Length() == 0 && strings.TrimSpace(s.Text()) == "" {
			s.Remove()
		}
	})
}

func collapseTextNodes(n *html.Node) {
	if n.Type == html.TextNode {
		n.Data = reWhitespace.ReplaceAllString(n.Data, " ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collapseTextNodes(c)
	}
}
