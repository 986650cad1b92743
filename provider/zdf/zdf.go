// Package zdf reads the ZDF content API. 3sat runs on the same platform, so one
// engine serves both publishers with different Config values.
package zdf

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/mediathek-cli/mediathek/log"
	"github.com/mediathek-cli/mediathek/network"
	"github.com/mediathek-cli/mediathek/resolver"
	"github.com/mediathek-cli/mediathek/source"
	"github.com/mediathek-cli/mediathek/token"
)

// Config describes one deployment of the platform.
type Config struct {
	Publisher    source.Publisher
	APIHost      string
	TokenName    string
	Origin       string
	TokenSeedURL string
	// HbbTV enables the HbbTV feed service, which only carries ZDF programs.
	HbbTV bool
}

var (
	ZDF = Config{
		Publisher:    source.ZDF,
		APIHost:      "api.zdf.de",
		TokenName:    "api.zdf.de",
		Origin:       "https://www.zdf.de",
		TokenSeedURL: "https://www.zdf.de/magazine/heute-journal-104",
		HbbTV:        true,
	}

	DreiSat = Config{
		Publisher:    source.DreiSat,
		APIHost:      "api.3sat.de",
		TokenName:    "api.3sat.de",
		Origin:       "https://www.3sat.de",
		TokenSeedURL: "https://www.3sat.de/gesellschaft/37-grad",
	}
)

const (
	acceptHeader = "application/vnd.de.zdf.v1.0+json"
	playerID     = "ngplayer_2_3"
	hbbtvURL     = "https://hbbtv.zdf.de/zdfm3/dyn/get.php?id="
	authFailed   = "Authentication failed"
)

var _ source.Source = (*Source)(nil)

// Source is the adapter.
type Source struct {
	cfg       Config
	transport network.Transport
	tokens    *token.Manager
}

func New(cfg Config, transport network.Transport, tokens *token.Manager) *Source {
	return &Source{cfg: cfg, transport: transport, tokens: tokens}
}

func (s *Source) Publisher() source.Publisher {
	return s.cfg.Publisher
}

func (s *Source) documentURL(id, profile string) string {
	return "https://" + s.cfg.APIHost + "/content/documents/" + id + ".json?profile=" + profile
}

// headers names the host apiURL points at; stream templates of both platforms are
// served by api.zdf.de.
func (s *Source) headers(apiURL, tok string) map[string]string {
	host := s.cfg.APIHost
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return map[string]string{
		"Accept":   acceptHeader,
		"Origin":   s.cfg.Origin,
		"Host":     host,
		"Api-Auth": "Bearer " + tok,
	}
}

type retryState int

const (
	noRetry retryState = iota
	retriedOnce
)

// call performs an authenticated API request and decodes the JSON body into v.
//
// A rejected token is replaced once by scraping the token seed page, then the
// request is repeated with the new token. A second rejection, or a rejection of a
// request without an identifying id, is an AuthError.
func (s *Source) call(ctx context.Context, apiURL, id string, v any) error {
	tok, ok := s.tokens.Current(s.cfg.TokenName)
	if !ok {
		log.Debugf("no stored token for %s, trying without one", s.cfg.TokenName)
	}

	for state := noRetry; ; state = retriedOnce {
		resp, err := s.transport.Request(ctx, apiURL, s.headers(apiURL, tok))
		if err != nil {
			return source.Wrap(source.NetworkError, apiURL, err)
		}

		if resp.StatusCode == 403 || resp.Body == authFailed {
			if state == retriedOnce || id == "" {
				return source.Fail(source.AuthError, apiURL, "api token rejected")
			}
			log.WithFields(log.Fields{"url": apiURL, "token": s.cfg.TokenName}).Info("api token rejected, refreshing")
			if tok, err = s.tokens.Renew(ctx, s.cfg.TokenName, s.cfg.TokenSeedURL, tok); err != nil {
				return err
			}
			continue
		}

		if resp.StatusCode == 404 {
			return source.Fail(source.NotFoundError, apiURL, "no document %q", id)
		}

		if !strings.HasPrefix(resp.Body, "{") {
			return source.Fail(source.ParseError, apiURL, "non-JSON response")
		}

		var envelope struct {
			Error any `json:"error"`
		}
		if err := json.Unmarshal([]byte(resp.Body), &envelope); err != nil {
			return source.Fail(source.ParseError, apiURL, "decode: %w", err)
		}
		if envelope.Error != nil && envelope.Error != false {
			return source.Fail(source.ParseError, apiURL, "api responded with error: %v", envelope.Error)
		}

		if err := json.Unmarshal([]byte(resp.Body), v); err != nil {
			return source.Fail(source.ParseError, apiURL, "decode: %w", err)
		}
		return nil
	}
}

func (s *Source) ReadItemByPageURL(ctx context.Context, pageURL string) (*source.Item, error) {
	u, err := resolver.Resolve(pageURL)
	if err != nil {
		return nil, err
	}
	if u.Publisher != s.cfg.Publisher || u.Kind != source.KindItem {
		return nil, source.Fail(source.SchemeError, pageURL, "not a %s item page", s.cfg.Publisher.Name())
	}
	return s.ReadItemByID(ctx, u.ID)
}
