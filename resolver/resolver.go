// Package resolver maps publisher web page URLs to URNs. Resolution is purely
// syntactic: no request is ever made.
package resolver

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/mediathek-cli/mediathek/source"
	"github.com/mediathek-cli/mediathek/urn"
	"github.com/samber/lo"
)

// Matcher resolves URLs below one prefix.
type Matcher func(rawURL string) (urn.URN, error)

type rule struct {
	prefix string
	match  Matcher
}

var rules = []rule{
	{"https://www.ardmediathek.de/", ARD},
	{"https://www.arte.tv/", Arte},
	{"https://www.zdf.de/", ZDF},
	{"https://www.zdfheute.de/", ZDFHeute},
	{"https://www.srf.ch/play/", SRF},
	{"https://www.3sat.de/", DreiSat},
}

// Resolve returns the URN addressed by a publisher page URL.
func Resolve(rawURL string) (urn.URN, error) {
	for _, r := range rules {
		if strings.HasPrefix(rawURL, r.prefix) {
			return r.match(rawURL)
		}
	}
	return urn.URN{}, unsupported(rawURL, "unsupported url")
}

func unsupported(rawURL, format string, args ...any) error {
	return source.Fail(source.SchemeError, rawURL, format, args...)
}

// segments splits a URL without query or fragment on "/", so index 2 is the host and
// index 3 the first path element.
func segments(rawURL string) []string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	return strings.Split(rawURL, "/")
}

// parseOn parses rawURL and rejects it unless it is served by host below pathPrefix.
func parseOn(rawURL, host, pathPrefix string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, unsupported(rawURL, "invalid url: %w", err)
	}
	if u.Host != host {
		return nil, unsupported(rawURL, "unexpected host %q", u.Host)
	}
	if !strings.HasPrefix(u.Path, pathPrefix) {
		return nil, unsupported(rawURL, "expected a path below %s, got %q", pathPrefix, u.Path)
	}
	return u, nil
}

func lastSegment(parts []string) string {
	return strings.Replace(parts[len(parts)-1], ".html", "", 1)
}

// ARD handles /video/<show>/<episode>/<channel>/<id>, legacy /player/<a>/<b>/<id>
// and /sendung/<name>/<id>.
func ARD(rawURL string) (urn.URN, error) {
	u, err := parseOn(rawURL, "www.ardmediathek.de", "/")
	if err != nil {
		return urn.URN{}, err
	}

	path := strings.Split(u.Path, "/")
	at := func(i int) string {
		if i < len(path) {
			return path[i]
		}
		return ""
	}

	switch at(1) {
	case "video", "player":
		id := at(5)
		if at(1) == "player" {
			id = at(4)
		}
		if id == "" {
			return urn.URN{}, unsupported(rawURL, "expected /video/<show>/<episode>/<channel>/<id>, got %q", u.Path)
		}
		return urn.New(source.ARD, source.KindItem, id), nil
	case "sendung":
		id := at(3)
		if id == "" {
			return urn.URN{}, unsupported(rawURL, "expected /sendung/<name>/<id>, got %q", u.Path)
		}
		return urn.New(source.ARD, source.KindProgram, id), nil
	}

	return urn.URN{}, unsupported(rawURL, "no ARD item or program in url")
}

var arteItemID = regexp.MustCompile(`^\d{6}-\d{3}-[A-Z]$`)

// Arte handles /<lang>/videos/<id>/<slug>/ for items and RC-prefixed collections for programs.
func Arte(rawURL string) (urn.URN, error) {
	if _, err := parseOn(rawURL, "www.arte.tv", "/"); err != nil {
		return urn.URN{}, err
	}
	parts := segments(rawURL)

	language := "de"
	if len(parts) > 3 && len(parts[3]) == 2 {
		language = parts[3]
	}

	for _, part := range parts {
		if strings.HasPrefix(part, "RC-") {
			return urn.New(source.Arte, source.KindProgram, part), nil
		}
		if arteItemID.MatchString(part) {
			return urn.New(source.Arte, source.KindItem, part+"_"+language), nil
		}
	}

	return urn.URN{}, unsupported(rawURL, "no Arte item id in url")
}

var zdfNonPrograms = []string{"nachrichten", "assets", "live-tv", "3sat"}

// ZDF handles /video/… and /play/… items and /<section>/<program> programs.
func ZDF(rawURL string) (urn.URN, error) {
	if _, err := parseOn(rawURL, "www.zdf.de", "/"); err != nil {
		return urn.URN{}, err
	}
	parts := segments(rawURL)

	if len(parts) > 3 && lo.Contains([]string{"video", "play"}, parts[3]) {
		id := lastSegment(parts)
		id, _, _ = strings.Cut(id, "~")
		if len(id) < 6 {
			return urn.URN{}, unsupported(rawURL, "no ZDF item id in url")
		}
		return urn.New(source.ZDF, source.KindItem, id), nil
	}

	if len(parts) == 5 && !lo.Contains(zdfNonPrograms, parts[3]) && parts[4] != "" {
		return urn.New(source.ZDF, source.KindProgram, parts[4]), nil
	}

	return urn.URN{}, unsupported(rawURL, "no ZDF item or program in url")
}

// ZDFHeute handles /video/<show>/<id>.html; items are served by the ZDF API.
func ZDFHeute(rawURL string) (urn.URN, error) {
	if _, err := parseOn(rawURL, "www.zdfheute.de", "/"); err != nil {
		return urn.URN{}, err
	}
	parts := segments(rawURL)
	if len(parts) < 6 || parts[3] != "video" {
		return urn.URN{}, unsupported(rawURL, "no zdfheute video in url")
	}

	id := lastSegment(parts)
	if len(id) < 6 {
		return urn.URN{}, unsupported(rawURL, "no ZDF item id in url")
	}
	return urn.New(source.ZDF, source.KindItem, id), nil
}

// SRF reads the urn query parameter (urn:srf:video:<id>) or the legacy id parameter.
func SRF(rawURL string) (urn.URN, error) {
	u, err := parseOn(rawURL, "www.srf.ch", "/play/")
	if err != nil {
		return urn.URN{}, err
	}

	query := u.Query()
	var id string
	if srfURN := query.Get("urn"); srfURN != "" {
		parts := strings.Split(srfURN, ":")
		if len(parts) < 4 || parts[0] != "urn" || parts[1] != "srf" || parts[2] != "video" {
			return urn.URN{}, unsupported(rawURL, "invalid SRF urn %q", srfURN)
		}
		id = parts[3]
	}
	if id == "" {
		id = query.Get("id")
	}
	if id == "" {
		return urn.URN{}, unsupported(rawURL, "no SRF video id in url")
	}

	return urn.New(source.SRF, source.KindItem, id), nil
}

// DreiSat takes the last path segment as item id.
func DreiSat(rawURL string) (urn.URN, error) {
	if _, err := parseOn(rawURL, "www.3sat.de", "/"); err != nil {
		return urn.URN{}, err
	}
	id := lastSegment(segments(rawURL))
	if len(id) < 6 {
		return urn.URN{}, unsupported(rawURL, "no 3sat item id in url")
	}
	return urn.New(source.DreiSat, source.KindItem, id), nil
}
