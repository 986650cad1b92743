// Package render prints records as JSON or as human-readable text.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/mediathek-cli/mediathek/icon"
	"github.com/mediathek-cli/mediathek/key"
	"github.com/mediathek-cli/mediathek/source"
	"github.com/mediathek-cli/mediathek/style"
	"github.com/mediathek-cli/mediathek/urn"
	"github.com/mediathek-cli/mediathek/util"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const fallbackWidth = 80

type Options struct {
	JSON   bool
	Pretty bool
	// Wrap is the text width; 0 uses the terminal width.
	Wrap int
}

// FromConfig reads the output.* settings.
func FromConfig() Options {
	return Options{
		JSON:   viper.GetBool(key.OutputJson),
		Pretty: viper.GetBool(key.OutputPretty),
		Wrap:   viper.GetInt(key.OutputWrap),
	}
}

func (o Options) width() int {
	if o.Wrap > 0 {
		return o.Wrap
	}
	if w, _, err := util.TerminalSize(); err == nil && w > 0 {
		return w
	}
	return fallbackWidth
}

// JSON writes v followed by a newline.
func JSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func (o Options) funcs() template.FuncMap {
	width := o.width()
	return template.FuncMap{
		"accent": style.Fg(style.AccentColor),
		"second": style.Fg(style.SecondaryColor),
		"warn":   style.Fg(style.WarningColor),
		"ok":     style.Fg(style.SuccessColor),
		"faint":  style.Faint,
		"bold":   style.Bold,
		"icon":   func(name string) string { return icon.Get(iconNames[name]) },
		"wrap": func(s string) string {
			return indent.String(wordwrap.String(s, util.Max(width-2, 20)), 2)
		},
		"date":     date,
		"duration": duration,
		"deref":    func(p *string) string { return lo.FromPtr(p) },
		"yes":      func(p *bool) bool { return lo.FromPtr(p) },
		"pub":      func(p source.Publisher) string { return p.Name() },
		"quantify": util.Quantify,
		"itemURN": func(s *source.ItemSummary) string {
			return urn.New(s.Publisher, source.KindItem, s.ID).String()
		},
	}
}

var iconNames = map[string]icon.Icon{
	"item":    icon.Item,
	"program": icon.Program,
	"link":    icon.Link,
}

func date(p *int64) string {
	if p == nil {
		return ""
	}
	return time.Unix(*p, 0).Format("02.01.2006 15:04")
}

func duration(p *int64) string {
	if p == nil {
		return ""
	}
	return (time.Duration(*p) * time.Second).String()
}

func (o Options) execute(w io.Writer, name, text string, data any) error {
	t, err := template.New(name).Funcs(o.funcs()).Parse(text)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}

const itemTemplate = `{{ icon "item" }} {{ bold .Title }}{{ with .Subtitle }} {{ faint (deref .) }}{{ end }}
{{ with .URN }}  {{ faint . }}
{{ end }}{{ with .Program }}  {{ second .Name }}
{{ end }}{{ with .Broadcasts }}  {{ faint "Broadcast" }} {{ date . }}{{ end }}{{ with .Duration }}  {{ faint "Duration" }} {{ duration . }}{{ end }}{{ with .Expires }}  {{ faint "Expires" }} {{ date . }}{{ end }}
{{ if yes .Geoblocked }}  {{ warn "geoblocked" }}
{{ end }}{{ with .Description }}
{{ wrap . }}
{{ end }}
{{ range .Media }}  {{ icon "link" }} {{ accent .Comment }} {{ faint .Type }}{{ if .DownloadAllowed }} {{ ok "download" }}{{ end }}
    {{ .URL }}
{{ end }}{{ range .Subtitles }}  {{ icon "link" }} {{ accent "Subtitles" }} {{ faint .Format }} {{ faint .Language }}
    {{ .URL }}
{{ end }}`

// Item prints a single item.
func Item(w io.Writer, item *source.Item, o Options) error {
	if o.JSON {
		return JSON(w, item, o.Pretty)
	}
	return o.execute(w, "item", itemTemplate, item)
}

const programTemplate = `{{ icon "program" }} {{ bold .Name }} {{ second (pub .Publisher) }}{{ with .Originator }} {{ faint (deref .) }}{{ end }}
{{ with .URN }}  {{ faint . }}
{{ end }}{{ with .Homepage }}  {{ deref . }}
{{ end }}{{ with .Description }}
{{ wrap (deref .) }}
{{ end }}`

// Program prints a single program.
func Program(w io.Writer, program *source.Program, o Options) error {
	if o.JSON {
		return JSON(w, program, o.Pretty)
	}
	return o.execute(w, "program", programTemplate, program)
}

const programsTemplate = `{{ range . }}{{ icon "program" }} {{ bold .Name }} {{ faint .URN }}
{{ end }}{{ faint (quantify (len .) "program" "programs") }}
`

// Programs prints a program list, one line each.
func Programs(w io.Writer, programs []*source.Program, o Options) error {
	if o.JSON {
		return JSON(w, programs, o.Pretty)
	}
	return o.execute(w, "programs", programsTemplate, programs)
}

const feedTemplate = `{{ range $i, $e := .Items }}{{ faint (printf "%3d" $i) }} {{ bold $e.Title }}{{ with $e.Broadcasts }} {{ faint (date .) }}{{ end }}{{ with $e.Duration }} {{ faint (duration .) }}{{ end }}
    {{ faint (itemURN $e) }}
{{ end }}{{ faint (quantify (len .Items) "item" "items") }}
`

// Feed prints the items of a program feed with their positions, which is what
// selectors refer to.
func Feed(w io.Writer, feed *source.Feed, o Options) error {
	if o.JSON {
		return JSON(w, feed, o.Pretty)
	}
	return o.execute(w, "feed", feedTemplate, feed)
}

// Line prints a plain value, or a {"key": value} object in JSON mode.
func Line(w io.Writer, k string, v fmt.Stringer, o Options) error {
	if o.JSON {
		return JSON(w, map[string]string{k: v.String()}, o.Pretty)
	}
	_, err := fmt.Fprintln(w, strings.TrimSpace(v.String()))
	return err
}
