package arte

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/mediathek-cli/mediathek/extract"
	"github.com/mediathek-cli/mediathek/network"
	"github.com/mediathek-cli/mediathek/source"
	"github.com/samber/lo"
)

// minutes is a duration the collection service sends either as number or string.
type minutes float64

func (m *minutes) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		*m = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*m = minutes(f)
	return nil
}

type collectionMeta struct {
	Title            string `json:"title"`
	Subtitle         string `json:"subtitle"`
	Description      string `json:"description"`
	ShortDescription string `json:"shortDescription"`
	ImageURL         string `json:"imageUrl"`
}

type collection struct {
	Meta           *collectionMeta `json:"meta"`
	SubCollections []struct {
		Videos []struct {
			ID               string  `json:"id"`
			Title            string  `json:"title"`
			Subtitle         string  `json:"subtitle"`
			ShortDescription string  `json:"shortDescription"`
			Duration         minutes `json:"duration"`
			ImageURL         string  `json:"imageUrl"`
			BeginsAt         string  `json:"beginsAt"`
		} `json:"videos"`
	} `json:"subCollections"`
}

func (s *Source) collection(ctx context.Context, id, lang string) (*collection, string, error) {
	apiURL := emacAPI + id + "/" + lang

	var c collection
	if err := network.GetJSON(ctx, s.transport, apiURL, nil, &c); err != nil {
		return nil, apiURL, err
	}
	return &c, apiURL, nil
}

func (s *Source) collectionMeta(ctx context.Context, id, lang string) (*collectionMeta, error) {
	c, apiURL, err := s.collection(ctx, id, lang)
	if err != nil {
		return nil, err
	}
	if c.Meta == nil {
		return nil, source.Fail(source.ParseError, apiURL, "collection without meta")
	}
	return c.Meta, nil
}

// images returns the 400x225 teaser and its 400x400 sibling when the URL follows
// the sized naming scheme.
func images(imageURL string) []source.ImageVariant {
	if !strings.Contains(imageURL, "400x225") {
		return nil
	}
	return []source.ImageVariant{
		{URL: imageURL, Width: 400, Height: 225},
		{URL: strings.Replace(imageURL, "400x225", "400x400", 1), Width: 400, Height: 400},
	}
}

func (s *Source) ReadProgram(ctx context.Context, id string) (*source.Program, error) {
	bare, lang := splitID(id)

	meta, err := s.collectionMeta(ctx, bare, lang)
	if err != nil {
		return nil, err
	}
	if meta.Title == "" {
		return nil, source.Fail(source.NotFoundError, id, "collection has no title")
	}

	return &source.Program{
		ID:               id,
		Publisher:        source.Arte,
		Name:             extract.DecodeEntities(meta.Title),
		Subtitle:         source.NonEmpty(extract.DecodeEntities(meta.Subtitle)),
		Description:      source.NonEmpty(meta.Description),
		DescriptionShort: source.NonEmpty(meta.ShortDescription),
		Language:         lo.ToPtr(lang),
		Homepage:         lo.ToPtr("https://www.arte.tv/" + lang + "/videos/" + bare + "/"),
		Image:            images(meta.ImageURL),
	}, nil
}

func (s *Source) FeedDescriptorForProgram(_ context.Context, id string) (*source.FeedDescriptor, error) {
	return &source.FeedDescriptor{Publisher: source.Arte, ProgramID: id}, nil
}

func (s *Source) ReadProgramFeed(ctx context.Context, descriptor *source.FeedDescriptor) ([]*source.ItemSummary, error) {
	if err := descriptor.Check(source.Arte); err != nil {
		return nil, err
	}
	bare, lang := splitID(descriptor.ProgramID)

	c, apiURL, err := s.collection(ctx, bare, lang)
	if err != nil {
		return nil, err
	}
	if c.SubCollections == nil {
		return nil, source.Fail(source.ParseError, apiURL, "collection without sub collections")
	}

	summaries := []*source.ItemSummary{}
	for _, sub := range c.SubCollections {
		for _, video := range sub.Videos {
			if video.Duration == 0 {
				continue
			}

			summary := &source.ItemSummary{
				ID:          video.ID,
				Publisher:   source.Arte,
				Title:       extract.DecodeEntities(video.Title),
				Subtitle:    source.NonEmpty(extract.DecodeEntities(video.Subtitle)),
				Description: source.NonEmpty(extract.DecodeEntities(video.ShortDescription)),
				Duration:    lo.ToPtr(int64(video.Duration * 60)),
				Broadcasts:  source.Unix(video.BeginsAt),
			}
			if video.ImageURL != "" {
				summary.Image = &source.Image{Variants: []source.ImageVariant{{URL: video.ImageURL, Width: 400, Height: 225}}}
			}

			summaries = append(summaries, summary.Finish())
		}
	}

	return summaries, nil
}

type magazines struct {
	Magazines []struct {
		ProgramID        string `json:"programId"`
		Title            string `json:"title"`
		Subtitle         string `json:"subtitle"`
		ShortDescription string `json:"shortDescription"`
		Language         string `json:"language"`
		ImageURL         string `json:"imageUrl"`
	} `json:"magazines"`
}

func (s *Source) ReadListOfPrograms(ctx context.Context) ([]*source.Program, error) {
	var programs []*source.Program

	for _, lang := range Languages {
		apiURL := opaAPI + lang

		var list magazines
		if err := network.GetJSON(ctx, s.transport, apiURL, nil, &list); err != nil {
			return nil, err
		}
		if list.Magazines == nil {
			return nil, source.Fail(source.ParseError, apiURL, "response without magazines")
		}

		for _, m := range list.Magazines {
			if m.Title == "" {
				continue
			}
			language := lo.Ternary(m.Language != "", m.Language, lang)
			programs = append(programs, &source.Program{
				ID:          m.ProgramID + "_" + lang,
				Publisher:   source.Arte,
				Name:        m.Title,
				Subtitle:    source.NonEmpty(m.Subtitle),
				Description: source.NonEmpty(m.ShortDescription),
				Language:    lo.ToPtr(language),
				Homepage:    lo.ToPtr("https://www.arte.tv/" + language + "/videos/" + m.ProgramID + "/"),
				Image:       images(m.ImageURL),
			})
		}
	}

	return programs, nil
}
