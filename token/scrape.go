package token

import (
	"regexp"
	"strings"

	"github.com/mediathek-cli/mediathek/log"
	"github.com/mediathek-cli/mediathek/source"
)

const (
	marker    = "apiToken"
	separator = ","
	minLength = 10
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// Candidates returns every plausible token in html, in document order.
//
// For each occurrence of "apiToken" the text up to the next comma, minus its last
// character (the closing quote), is stripped of everything but letters and digits.
// Candidates shorter than 10 characters are dropped.
func Candidates(html string) []string {
	var found []string
	for start := 0; ; {
		pos := strings.Index(html[start:], marker)
		if pos < 0 {
			return found
		}
		pos += start + len(marker)

		end := strings.Index(html[pos:], separator)
		if end < 0 {
			return found
		}
		end += pos
		start = end + len(separator)

		raw := html[pos:end]
		if len(raw) > 0 {
			raw = raw[:len(raw)-1]
		}

		candidate := nonAlphanumeric.ReplaceAllString(raw, "")
		if len(candidate) < minLength {
			log.Warnf("token candidate too short: %q", candidate)
			continue
		}
		found = append(found, candidate)
	}
}

// Scrape returns the first valid token in html.
func Scrape(html string) (string, error) {
	candidates := Candidates(html)
	if len(candidates) == 0 {
		return "", source.Fail(source.AuthError, "", "no api token found in page")
	}
	log.Debugf("found %d token candidates", len(candidates))
	return candidates[0], nil
}
