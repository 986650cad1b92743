package source

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Standard rendition widths.
var (
	ItemImageWidths    = []int{1984, 1024, 640, 256}
	ProgramImageWidths = []int{320, 768}
)

// WidthPlaceholder is substituted in image URL templates.
const WidthPlaceholder = "{width}"

// Flags are accessibility markers derived from a title.
type Flags struct {
	AudioDescription *bool
	SignLanguage     *bool
}

// TitleFlags detects "(AD)"/"Hörfassung" and "Gebärden" markers. Absent markers stay nil.
func TitleFlags(title string) Flags {
	var f Flags
	if strings.Contains(title, "(AD)") || strings.Contains(title, "Hörfassung") {
		f.AudioDescription = lo.ToPtr(true)
	}
	if strings.Contains(title, "Gebärden") {
		f.SignLanguage = lo.ToPtr(true)
	}
	return f
}

// ScaledHeight returns the height matching width at the w:h aspect ratio, rounded half away from zero.
func ScaledHeight(width, w, h int) int {
	if w == 0 {
		return 0
	}
	return int(math.Round(float64(width) * float64(h) / float64(w)))
}

// VariantsFromTemplate expands a {width} URL template into one variant per width at a 16:9 ratio.
func VariantsFromTemplate(template string, widths []int) []ImageVariant {
	return VariantsFromTemplateRatio(template, widths, 16, 9)
}

// VariantsFromTemplateRatio is VariantsFromTemplate for an explicit aspect ratio.
func VariantsFromTemplateRatio(template string, widths []int, w, h int) []ImageVariant {
	return lo.Map(widths, func(width int, _ int) ImageVariant {
		return ImageVariant{
			URL:    strings.ReplaceAll(template, WidthPlaceholder, strconv.Itoa(width)),
			Width:  width,
			Height: ScaledHeight(width, w, h),
		}
	})
}

var aspectKey = regexp.MustCompile(`^aspect(\d+)x(\d+)$`)

// VariantsFromAspects expands named crops ("aspect16x9" → URL template) at every width.
// Keys are visited in sorted order; malformed keys are skipped.
func VariantsFromAspects(crops map[string]string, widths []int) []ImageVariant {
	keys := lo.Keys(crops)
	sort.Strings(keys)

	var variants []ImageVariant
	for _, k := range keys {
		m := aspectKey.FindStringSubmatch(k)
		if m == nil {
			continue
		}
		w, _ := strconv.Atoi(m[1])
		h, _ := strconv.Atoi(m[2])
		if w == 0 || h == 0 {
			continue
		}
		variants = append(variants, VariantsFromTemplateRatio(crops[k], widths, w, h)...)
	}
	return variants
}

var sizePattern = regexp.MustCompile(`^(\d+)x(\d+)$`)

// ParseSize parses "WxH".
func ParseSize(s string) (width, height int, ok bool) {
	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	width, _ = strconv.Atoi(m[1])
	height, _ = strconv.Atoi(m[2])
	return width, height, true
}

// SizeFromURL finds the first "WxH" path segment of u.
func SizeFromURL(u string) (width, height int, ok bool) {
	for _, part := range strings.Split(u, "/") {
		if width, height, ok = ParseSize(part); ok {
			return
		}
	}
	return 0, 0, false
}

var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
}

// Unix parses a date in any of the formats publishers emit and returns unix seconds,
// or nil when s is empty or unparseable.
func Unix(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return lo.ToPtr(t.Unix())
		}
	}
	return nil
}

// NonEmpty returns a pointer to s, or nil when s is blank.
func NonEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
