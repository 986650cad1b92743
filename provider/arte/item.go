package arte

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mediathek-cli/mediathek/source"
	"github.com/samber/lo"
)

type playerConfig struct {
	Data *struct {
		ID         string `json:"id"`
		Attributes struct {
			Provider string `json:"provider"`
			Metadata struct {
				Title       string `json:"title"`
				Subtitle    string `json:"subtitle"`
				Description string `json:"description"`
				Language    string `json:"language"`
				Duration    struct {
					Seconds *int64 `json:"seconds"`
				} `json:"duration"`
				Images []struct {
					URL     string `json:"url"`
					Caption string `json:"caption"`
				} `json:"images"`
			} `json:"metadata"`
			Rights *struct {
				Begin string `json:"begin"`
				End   string `json:"end"`
			} `json:"rights"`
			Restriction *struct {
				Geoblocking *struct {
					Code string `json:"code"`
				} `json:"geoblocking"`
				AgeRestriction json.RawMessage `json:"ageRestriction"`
			} `json:"restriction"`
			Stat *struct {
				Push *struct {
					AssociatedCollections []string `json:"associatedCollections"`
				} `json:"push"`
			} `json:"stat"`
			Streams []struct {
				URL         string `json:"url"`
				MainQuality struct {
					Label string `json:"label"`
				} `json:"mainQuality"`
			} `json:"streams"`
		} `json:"attributes"`
	} `json:"data"`
}

func (s *Source) ReadItemByID(ctx context.Context, id string) (*source.Item, error) {
	bare, lang := splitID(id)
	apiURL := playerAPI + lang + "/" + bare

	var cfg playerConfig
	if err := s.call(ctx, apiURL, bare, &cfg); err != nil {
		return nil, err
	}
	if cfg.Data == nil {
		return nil, source.Fail(source.ParseError, apiURL, "player config without data")
	}
	attrs := cfg.Data.Attributes
	meta := attrs.Metadata
	if meta.Title == "" {
		return nil, source.Fail(source.NotFoundError, apiURL, "player config without title")
	}

	item := source.NewItem(source.Arte, id)
	item.Originator = source.NonEmpty(attrs.Provider)
	item.Title = meta.Title
	item.Subtitle = source.NonEmpty(meta.Subtitle)
	item.Description = meta.Description
	item.Duration = meta.Duration.Seconds
	item.Language = lo.Ternary(meta.Language != "", meta.Language, lang)
	item.WebpageURL = "https://www.arte.tv/" + item.Language + "/videos/" + bare + "/"

	if attrs.Rights != nil {
		item.Broadcasts = source.Unix(attrs.Rights.Begin)
		item.Expires = source.Unix(attrs.Rights.End)
	}

	if r := attrs.Restriction; r != nil {
		if r.Geoblocking != nil && r.Geoblocking.Code != "ALL" {
			item.Geoblocked = lo.ToPtr(true)
		}
		if len(r.AgeRestriction) > 0 && string(r.AgeRestriction) != "null" {
			item.RatingInfo = r.AgeRestriction
		}
	} else {
		item.Geoblocked = lo.ToPtr(false)
	}

	if attrs.Stat != nil && attrs.Stat.Push != nil && len(attrs.Stat.Push.AssociatedCollections) > 0 {
		if collection := attrs.Stat.Push.AssociatedCollections[0]; len(collection) == 9 {
			meta, err := s.collectionMeta(ctx, collection, lang)
			if err != nil {
				return nil, err
			}
			item.Program = &source.ProgramRef{ID: collection + "_" + item.Language, Name: meta.Title}
		}
	}

	if len(meta.Images) > 0 {
		item.Image = &source.Image{}
		for _, img := range meta.Images {
			if img.Caption != "" {
				item.Image.Description = lo.ToPtr(img.Caption)
			}
			variant := source.ImageVariant{URL: img.URL}
			if w, h, ok := source.SizeFromURL(img.URL); ok {
				variant.Width, variant.Height = w, h
			}
			item.Image.Variants = append(item.Image.Variants, variant)
		}
	}

	for _, stream := range attrs.Streams {
		item.Media = append(item.Media, source.Media{
			URL:     stream.URL,
			Type:    lo.Ternary(strings.Contains(stream.URL, ".m3u8"), "application/x-mpegURL", "video/mp4"),
			Comment: stream.MainQuality.Label,
		})
	}

	return item.Finish(), nil
}
