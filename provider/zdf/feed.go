package zdf

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mediathek-cli/mediathek/extract"
	"github.com/mediathek-cli/mediathek/log"
	"github.com/mediathek-cli/mediathek/network"
	"github.com/mediathek-cli/mediathek/source"
)

const hbbtvSectionLimit = 10

func (s *Source) ReadProgramFeed(ctx context.Context, descriptor *source.FeedDescriptor) ([]*source.ItemSummary, error) {
	if err := descriptor.Check(s.cfg.Publisher); err != nil {
		return nil, err
	}
	if descriptor.RSSURL == "" {
		return nil, source.Fail(source.ParseError, descriptor.ProgramID, "feed descriptor without rss url")
	}

	if s.cfg.HbbTV && descriptor.ExternalID != "" {
		return s.readHbbTVFeed(ctx, descriptor.ExternalID)
	}
	return s.readRSSFeed(ctx, descriptor.RSSURL)
}

func (s *Source) readHbbTVFeed(ctx context.Context, externalID string) ([]*source.ItemSummary, error) {
	feedURL := hbbtvURL + externalID

	body, err := network.Get(ctx, s.transport, feedURL, nil)
	if err != nil {
		return nil, err
	}

	var page hbbtvPage
	if err := json.Unmarshal([]byte(body), &page); err != nil {
		return nil, source.Fail(source.ParseError, feedURL, "decode: %w", err)
	}

	seen := make(map[string]bool)
	summaries := []*source.ItemSummary{}
	for _, section := range page.Elems {
		if section.Variant != "std" && section.Variant != "wide" {
			continue
		}

		taken := 0
		for _, elem := range section.Elems {
			if !elem.HasVideo || elem.Link == nil || elem.Link.HTMLAnchor == nil {
				continue
			}

			id := idFromLink(elem.Link.HTMLAnchor.Href)
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true

			summaries = append(summaries, (&source.ItemSummary{
				ID:        id,
				Publisher: s.cfg.Publisher,
				Title:     elem.TitleTxt,
			}).Finish())

			if taken++; taken == hbbtvSectionLimit {
				break
			}
		}
	}

	return summaries, nil
}

func (s *Source) readRSSFeed(ctx context.Context, rssURL string) ([]*source.ItemSummary, error) {
	xml, err := network.Get(ctx, s.transport, rssURL, nil)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(xml, "<") {
		return nil, source.Fail(source.ParseError, rssURL, "rss feed is not xml")
	}

	field := func(block, tag string) string {
		return extract.StripCDATA(extract.Text(block, "<"+tag+">", "</"+tag+">").OrEmpty())
	}

	summaries := []*source.ItemSummary{}
	for _, block := range extract.All(xml, "<item>", "</item>") {
		id := idFromLink(field(block, "link"))
		if id == "" {
			log.WithFields(log.Fields{"feed": rssURL}).Warn("feed entry without recognizable id")
			continue
		}

		description := field(block, "description")
		if description == "" {
			description = field(block, "itunes:summary")
		}

		summaries = append(summaries, (&source.ItemSummary{
			ID:          id,
			Publisher:   s.cfg.Publisher,
			Title:       extract.DecodeEntities(field(block, "title")),
			Description: source.NonEmpty(extract.DecodeEntities(description)),
			Broadcasts:  source.Unix(field(block, "pubDate")),
			WebpageURL:  source.NonEmpty(field(block, "link")),
		}).Finish())
	}

	return summaries, nil
}

// idFromLink takes the last path segment of a page link without its .html suffix.
func idFromLink(link string) string {
	link = strings.TrimSpace(link)
	if i := strings.LastIndex(link, "/"); i >= 0 {
		link = link[i+1:]
	}
	return strings.Replace(link, ".html", "", 1)
}
