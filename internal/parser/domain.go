package parser

import (
	"net/url"
	"strings"
)

// NormalizeDomain maps a job listing URL to a canonical portal key. A host
// that is a subdomain (es.indeed.com) or alternate TLD (linkedin.es) of a
// registered portal resolves to that portal's key. Unknown hosts return a
// generic second-level domain label instead; malformed URLs return "".
func NormalizeDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")
	if host == "" {
		return ""
	}
	for _, p := range portals {
		if host == p.Domain || strings.HasSuffix(host, "."+p.Domain) {
			return p.Key
		}
	}
	for _, p := range portals {
		// linkedin.es, linkedin.co.uk
		if strings.HasPrefix(host, p.Key+".") {
			return p.Key
		}
	}
	if strings.Count(host, ".") < 2 {
		return host
	}
	parts := strings.Split(host, ".")
	return parts[len(parts)-3]
}

// CompanyFromURL derives a company name from a listing URL: a
// /company/<slug>/ path segment on a known portal, or a company/employer
// style query parameter anywhere. Returns "" when neither is present.
func CompanyFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	if _, known := portals[NormalizeDomain(rawURL)]; known {
		segments := strings.Split(strings.Trim(u.Path, "/"), "/")
		for i := 0; i < len(segments)-1; i++ {
			if segments[i] == "company" && segments[i+1] != "" {
				return titleCaseSlug(segments[i+1])
			}
		}
	}
	query := u.Query()
	for _, key := range []string{"company", "employer", "hiring"} {
		if v := query.Get(key); v != "" {
			return titleCaseSlug(v)
		}
	}
	return ""
}

func titleCaseSlug(slug string) string {
	slug = strings.ReplaceAll(slug, "-", " ")
	slug = strings.ReplaceAll(slug, "_", " ")
	words := strings.Fields(slug)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
