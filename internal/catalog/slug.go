package catalog

import (
	"regexp"
	"strings"
)

var (
	slugStripRe    = regexp.MustCompile(`[^a-z0-9-]+`)
	slugCollapseRe = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL-safe slug from a category name: lowercased, spaces
// collapsed to single dashes, everything else dropped. Stripping can leave
// dash runs ("flyers & leaflets"), so those collapse too.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
