package zdf

import (
	"context"
	"math"
	"strings"

	"github.com/mediathek-cli/mediathek/source"
	"github.com/samber/lo"
)

var qualityBitrates = map[string]int{
	"veryhigh": 15000,
	"high":     10000,
	"med":      9000,
}

var captionFormats = map[string]string{
	"ebu-tt-d-basic-de": "ttml",
	"webvtt":            "webvtt",
}

var captionLanguages = map[string]string{
	"deu": "de",
	"eng": "en",
}

func (s *Source) ReadItemByID(ctx context.Context, id string) (*source.Item, error) {
	apiURL := s.documentURL(id, "player2")

	var doc document
	if err := s.call(ctx, apiURL, id, &doc); err != nil {
		return nil, err
	}

	item := source.NewItem(s.cfg.Publisher, id)

	title, ok := doc.title()
	if !ok {
		if strings.Contains(doc.Profile, "gallery") {
			return item, nil
		}
		return nil, source.Fail(source.NotFoundError, apiURL, "document %q has no title", id)
	}

	item.Originator = source.NonEmpty(doc.TVService)
	item.Title = title
	item.Description = strings.TrimSpace(doc.LeadParagraph)
	item.Broadcasts = source.Unix(doc.EditorialDate)
	item.Language = "de"
	item.WebpageURL = doc.SharingURL
	if item.WebpageURL == "" {
		item.WebpageURL = "https://www.zdf.de/video/" + id
	}
	item.Program = programRef(doc.Brand)

	if ref := doc.TeaserImageRef; ref != nil {
		item.Image = &source.Image{
			Description: source.NonEmpty(ref.Caption),
			Copyright:   source.NonEmpty(ref.CopyrightNotice),
			Variants:    layoutVariants(ref.Layouts, nil),
		}
	}

	video := doc.video()
	if video == nil {
		return item.Finish(), nil
	}

	if video.Duration != nil {
		item.Duration = lo.ToPtr(int64(math.Round(*video.Duration)))
	}
	item.Expires = source.Unix(video.VisibleTo)

	if video.PTMDTemplate != "" {
		if err := s.readStreams(ctx, id, video.PTMDTemplate, item); err != nil {
			return nil, err
		}
	}

	return item.Finish(), nil
}

func programRef(brand *brandRef) *source.ProgramRef {
	if brand == nil {
		return nil
	}
	ref := &source.ProgramRef{Name: brand.Title}
	if brand.Target != nil {
		ref.ID = brand.Target.ID
	}
	if ref.ID == "" && ref.Name == "Terra X" {
		ref.ID = "terra-x-112"
	}
	if ref.ID == "" && ref.Name == "" {
		return nil
	}
	return ref
}

func (s *Source) readStreams(ctx context.Context, id, template string, item *source.Item) error {
	streamURL := "https://api.zdf.de" + strings.ReplaceAll(template, "{playerId}", playerID)

	var info streamInfo
	if err := s.call(ctx, streamURL, id, &info); err != nil {
		return err
	}

	for _, c := range info.Captions {
		format, ok := captionFormats[c.Format]
		if !ok {
			format = "unknown"
		}
		sub := source.Subtitle{
			Format:   format,
			Language: captionLanguages[c.Language],
			URL:      c.URI,
		}
		if c.Offset != nil && *c.Offset != 0 {
			sub.Offset = c.Offset
		}
		item.Subtitles = append(item.Subtitles, sub)
	}

	downloadAllowed := info.downloadAllowed()

	for _, list := range info.PriorityList {
		for _, formitaet := range list.Formitaeten {
			for _, quality := range formitaet.Qualities {
				if quality.Quality == "low" {
					continue
				}
				for _, track := range quality.Audio.Tracks {
					u := track.URI
					if u == "" || strings.Contains(u, "manifest.f4m") || strings.Contains(u, ".webm") {
						continue
					}
					if strings.Contains(u, "_hd.") {
						item.HD = lo.ToPtr(true)
					}

					media := source.Media{
						URL:             u,
						Type:            "video/mp4",
						Comment:         "Quality " + quality.Quality,
						DownloadAllowed: downloadAllowed,
					}
					if strings.Contains(u, ".m3u8") {
						media.Type = "application/x-mpegURL"
					}
					if bitrate, ok := qualityBitrates[quality.Quality]; ok {
						media.Bitrate = lo.ToPtr(bitrate)
					}
					item.Media = append(item.Media, media)
				}
			}
		}
	}

	return nil
}
