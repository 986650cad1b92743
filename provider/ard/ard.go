// Package ard reads the ARD Mediathek page gateway. No authentication is needed.
package ard

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mediathek-cli/mediathek/network"
	"github.com/mediathek-cli/mediathek/resolver"
	"github.com/mediathek-cli/mediathek/source"
)

const gateway = "https://api.ardmediathek.de/page-gateway/"

var _ source.Source = (*Source)(nil)

// Source is the adapter.
type Source struct {
	transport network.Transport
}

func New(transport network.Transport) *Source {
	return &Source{transport: transport}
}

func (*Source) Publisher() source.Publisher {
	return source.ARD
}

// fetch reads a gateway document. An empty body means the id is unknown.
func (s *Source) fetch(ctx context.Context, apiURL string, v any) error {
	body, err := network.Get(ctx, s.transport, apiURL, nil)
	if err != nil {
		return err
	}
	if strings.TrimSpace(body) == "" {
		return source.Fail(source.NotFoundError, apiURL, "empty response")
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return source.Fail(source.ParseError, apiURL, "decode: %w", err)
	}
	return nil
}

func (s *Source) ReadItemByPageURL(ctx context.Context, pageURL string) (*source.Item, error) {
	u, err := resolver.ARD(pageURL)
	if err != nil {
		return nil, err
	}
	if u.Kind != source.KindItem {
		return nil, source.Fail(source.SchemeError, pageURL, "not an ARD item page")
	}
	return s.ReadItemByID(ctx, u.ID)
}

var contributors = map[string]string{
	"mdr.de":          "MDR",
	"swr.de":          "SWR",
	"hr-fernsehen":    "hr",
	"Radio Bremen TV": "Radio Bremen",
}

// contributor shortens broadcaster names: "SWR Baden-Württemberg" becomes "SWR",
// "Das Erste Fernsehen" becomes "Das Erste".
func contributor(name string) *string {
	if name == "" {
		return nil
	}
	name = strings.Replace(name, " Fernsehen", "", 1)
	if strings.HasPrefix(name, "SWR ") || strings.HasPrefix(name, "MDR ") {
		name = name[:3]
	}
	if short, ok := contributors[name]; ok {
		name = short
	}
	return &name
}

var berlin = func() *time.Location {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		return time.FixedZone("CET", 60*60)
	}
	return loc
}()

// title makes generic titles distinguishable. Daily tagesthemen episodes get their
// broadcast date, "Die Sendung vom …" titles are prefixed with the program name.
func title(t string, broadcasts *int64, program string) string {
	if t == "tagesthemen" && broadcasts != nil {
		d := time.Unix(*broadcasts, 0).In(berlin)
		return fmt.Sprintf("%s vom %d.%d.%d", t, d.Day(), int(d.Month()), d.Year())
	}
	if strings.HasPrefix(t, "Die Sendung vom") && program != "" {
		return program + " vom"
	}
	return t
}
