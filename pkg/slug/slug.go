package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nonAlnumRegex   = regexp.MustCompile(`[^a-z0-9 -]+`)
	spaceRunRegex   = regexp.MustCompile(`[ ]+`)
	dashRunRegex    = regexp.MustCompile(`-{2,}`)
	trimDashesRegex = regexp.MustCompile(`^-+|-+$`)
)

// Generate produces a URL-friendly slug from a course title.
// Example: "Intro to Go, Part 2!" -> "intro-to-go-part-2"
func Generate(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonAlnumRegex.ReplaceAllString(s, "")
	s = spaceRunRegex.ReplaceAllString(s, "-")
	s = dashRunRegex.ReplaceAllString(s, "-")
	s = trimDashesRegex.ReplaceAllString(s, "")
	return s
}

// GenerateWithID appends a numeric ID for uniqueness.
// Example: "Intro to Go" + 42 -> "intro-to-go-42"
func GenerateWithID(title string, id int) string {
	base := Generate(title)
	if base == "" {
		return fmt.Sprintf("course-%d", id)
	}
	return fmt.Sprintf("%s-%d", base, id)
}
