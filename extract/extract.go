// Package extract finds delimited substrings in loosely structured text such as RSS
// and scraped HTML. It never validates markup; unbalanced or broken input simply
// yields fewer matches.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/mo"
)

// Match is a delimited substring. End is the index just past the closing delimiter,
// so it can be fed back as the next offset.
type Match struct {
	Text  string
	Start int
	End   int
}

// Between returns the text between the first prefix found at or after offset and the
// next suffix after it.
func Between(src, prefix, suffix string, offset int) (Match, bool) {
	if offset < 0 || offset > len(src) {
		return Match{}, false
	}

	i := strings.Index(src[offset:], prefix)
	if i < 0 {
		return Match{}, false
	}
	start := offset + i + len(prefix)

	j := strings.Index(src[start:], suffix)
	if j < 0 {
		return Match{}, false
	}

	return Match{
		Text:  src[start : start+j],
		Start: start,
		End:   start + j + len(suffix),
	}, true
}

// Text is Between from the start of src, as an option.
func Text(src, prefix, suffix string) mo.Option[string] {
	if m, ok := Between(src, prefix, suffix, 0); ok {
		return mo.Some(m.Text)
	}
	return mo.None[string]()
}

// All returns every non-overlapping match in order.
func All(src, prefix, suffix string) []string {
	var out []string
	for offset := 0; ; {
		m, ok := Between(src, prefix, suffix, offset)
		if !ok {
			return out
		}
		out = append(out, m.Text)
		offset = m.End
	}
}

var numericEntity = regexp.MustCompile(`&#(x[0-9a-fA-F]+|[0-9]+);`)

var namedEntities = strings.NewReplacer(
	"&quot;", `"`,
	"&apos;", "'",
	"&lt;", "<",
	"&gt;", ">",
	"&nbsp;", " ",
)

// DecodeEntities resolves the character references publishers put into feeds.
// &amp; is decoded last so "&amp;quot;" stays a literal "&quot;".
func DecodeEntities(s string) string {
	s = numericEntity.ReplaceAllStringFunc(s, func(ref string) string {
		body := ref[2 : len(ref)-1]
		base := 10
		if body[0] == 'x' {
			body, base = body[1:], 16
		}
		n, err := strconv.ParseInt(body, base, 32)
		if err != nil || n <= 0 {
			return ref
		}
		return string(rune(n))
	})
	s = namedEntities.Replace(s)
	return strings.ReplaceAll(s, "&amp;", "&")
}

// StripCDATA unwraps a <![CDATA[...]]> section if s is one.
func StripCDATA(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<![CDATA[") && strings.HasSuffix(s, "]]>") {
		return s[len("<![CDATA[") : len(s)-len("]]>")]
	}
	return s
}
