// Package arte reads the Arte player API and the HbbTV collection services.
package arte

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mediathek-cli/mediathek/log"
	"github.com/mediathek-cli/mediathek/network"
	"github.com/mediathek-cli/mediathek/resolver"
	"github.com/mediathek-cli/mediathek/source"
)

const (
	playerAPI  = "https://api.arte.tv/api/player/v2/config/"
	emacAPI    = "https://www.arte.tv/hbbtvv2/services/web/index.php/EMAC/teasers/collection/v2/"
	opaAPI     = "http://www.arte.tv/hbbtvv2/services/web/index.php/OPA/v3/magazines/"
	defaultLng = "de"
)

// Languages the program list is read in.
var Languages = []string{"de", "fr"}

var _ source.Source = (*Source)(nil)

// Source is the adapter.
type Source struct {
	transport network.Transport
}

func New(transport network.Transport) *Source {
	return &Source{transport: transport}
}

func (*Source) Publisher() source.Publisher {
	return source.Arte
}

// splitID separates "<id>_<lang>". Ids without a language suffix are German.
func splitID(id string) (string, string) {
	if bare, lang, ok := strings.Cut(id, "_"); ok && !strings.Contains(lang, "_") {
		return bare, lang
	}
	return id, defaultLng
}

// call requests a player API document. The API sporadically answers 401 to
// anonymous requests; such a request is repeated once as is.
func (s *Source) call(ctx context.Context, apiURL, id string, v any) error {
	for retried := false; ; retried = true {
		resp, err := s.transport.Request(ctx, apiURL, nil)
		if err != nil {
			return source.Wrap(source.NetworkError, apiURL, err)
		}

		if resp.StatusCode == 401 {
			if retried || id == "" {
				return source.Fail(source.AuthError, apiURL, "authentication failed")
			}
			log.WithFields(log.Fields{"url": apiURL}).Info("unauthorized, retrying once")
			continue
		}

		if resp.StatusCode == 404 {
			return source.Fail(source.NotFoundError, apiURL, "no item %q", id)
		}
		if !resp.OK() {
			return source.Fail(source.NetworkError, apiURL, "unexpected status %d", resp.StatusCode)
		}

		var envelope struct {
			Error json.RawMessage `json:"error"`
		}
		if err := json.Unmarshal([]byte(resp.Body), &envelope); err != nil {
			return source.Fail(source.ParseError, apiURL, "decode: %w", err)
		}
		if len(envelope.Error) > 0 && string(envelope.Error) != "null" && string(envelope.Error) != "false" {
			return source.Fail(source.ParseError, apiURL, "api responded with error: %s", envelope.Error)
		}

		if err := json.Unmarshal([]byte(resp.Body), v); err != nil {
			return source.Fail(source.ParseError, apiURL, "decode: %w", err)
		}
		return nil
	}
}

func (s *Source) ReadItemByPageURL(ctx context.Context, pageURL string) (*source.Item, error) {
	u, err := resolver.Arte(pageURL)
	if err != nil {
		return nil, err
	}
	if u.Kind != source.KindItem {
		return nil, source.Fail(source.SchemeError, pageURL, "not an Arte item page")
	}
	return s.ReadItemByID(ctx, u.ID)
}
