package ard

import (
	"context"
	"fmt"
	"strings"

	"github.com/mediathek-cli/mediathek/source"
	"github.com/samber/lo"
)

// Hosts serving downloadable files rather than streams.
var downloadMarkers = []string{"podcast", "//download.", "media.tagesschau.de"}

func (s *Source) ReadItemByID(ctx context.Context, id string) (*source.Item, error) {
	apiURL := gateway + "pages/ard/item/" + id + "?embedded=false&mcV6=true"

	var page itemPage
	if err := s.fetch(ctx, apiURL, &page); err != nil {
		return nil, err
	}
	if len(page.Widgets) == 0 {
		return nil, source.Fail(source.NotFoundError, apiURL, "item %q has no widgets", id)
	}
	w := page.Widgets[0]

	item := source.NewItem(source.ARD, id)
	item.Originator = contributor(w.PublicationService.Name)
	item.Description = w.Synopsis
	item.Broadcasts = source.Unix(w.BroadcastedOn)
	item.Expires = source.Unix(w.AvailableTo)
	item.Geoblocked = w.Geoblocked
	item.Language = "de"
	item.WebpageURL = "https://www.ardmediathek.de/video/" + id
	if len(w.MaturityContentRating) > 0 && string(w.MaturityContentRating) != "null" {
		item.RatingInfo = w.MaturityContentRating
	}

	var programName string
	if w.Show != nil {
		item.Program = &source.ProgramRef{ID: w.Show.ID, Name: w.Show.Title}
		programName = w.Show.Title
	}
	item.Title = w.Title

	if w.Image != nil {
		item.Image = &source.Image{
			Description: source.NonEmpty(w.Image.Alt),
			Copyright:   source.NonEmpty(w.Image.ProducerName),
			Variants:    source.VariantsFromTemplate(w.Image.Src, source.ItemImageWidths),
		}
	}

	if mc := w.MediaCollection; mc != nil {
		if mc.Embedded != nil {
			if mc.Embedded.Meta != nil {
				item.Duration = mc.Embedded.Meta.DurationSeconds
			}
			if len(mc.Embedded.Streams) > 0 {
				item.Media = media(mc.Embedded.Streams[0])
			}
		}

		if mc.SubtitleURL != "" {
			sub := source.Subtitle{Format: "ttml", Language: "de", URL: mc.SubtitleURL}
			if mc.SubtitleOffset != nil && *mc.SubtitleOffset != 0 {
				sub.Offset = mc.SubtitleOffset
			}
			item.Subtitles = append(item.Subtitles, sub)
		}
	}

	// Flags come from the title as published, before it is rewritten.
	item.Finish()
	item.Title = title(w.Title, item.Broadcasts, programName)

	return item, nil
}

func media(s stream) []source.Media {
	return lo.Map(s.Media, func(m streamMedia, _ int) source.Media {
		comment := "Unknown quality"
		switch {
		case m.MaxHResolutionPx > 0:
			comment = fmt.Sprintf("Resolution: %dx%d", m.MaxHResolutionPx, m.MaxVResolutionPx)
		case m.IsAdaptiveQualitySelectable:
			comment = "Adaptive quality"
		}

		return source.Media{
			URL:     m.URL,
			Type:    m.MimeType,
			Comment: comment,
			IsHDR:   m.IsHighDynamicRange,
			DownloadAllowed: lo.SomeBy(downloadMarkers, func(marker string) bool {
				return strings.Contains(m.URL, marker)
			}),
		}
	})
}
