// Package srf reads the SRG SSR integration layer and the Play SRF API.
package srf

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/mediathek-cli/mediathek/network"
	"github.com/mediathek-cli/mediathek/resolver"
	"github.com/mediathek-cli/mediathek/source"
	"github.com/samber/lo"
)

const (
	integrationLayer = "https://il.srgssr.ch/integrationlayer/2.0/mediaComposition/byUrn/urn:srf:video:"
	playAPI          = "https://www.srf.ch/play/v3/api/srf/production/"
	imageService     = "https://il.srgssr.ch/images/"
)

var _ source.Source = (*Source)(nil)

// Source is the adapter.
type Source struct {
	transport network.Transport
}

func New(transport network.Transport) *Source {
	return &Source{transport: transport}
}

func (*Source) Publisher() source.Publisher {
	return source.SRF
}

type chapter struct {
	Lead           string `json:"lead"`
	Description    string `json:"description"`
	Duration       *int64 `json:"duration"`
	Date           string `json:"date"`
	ValidTo        string `json:"validTo"`
	PlayableAbroad bool   `json:"playableAbroad"`
	ImageURL       string `json:"imageUrl"`
	ImageTitle     string `json:"imageTitle"`
	ImageCopyright string `json:"imageCopyright"`
	ResourceList   []struct {
		URL       string `json:"url"`
		MimeType  string `json:"mimeType"`
		Streaming string `json:"streaming"`
		Quality   string `json:"quality"`
	} `json:"resourceList"`
}

type mediaComposition struct {
	Episode *struct {
		Title string `json:"title"`
	} `json:"episode"`
	Show *struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"show"`
	ChapterList []chapter `json:"chapterList"`
}

// text joins lead and description.
func text(lead, description string) string {
	return strings.TrimSpace(lead + " " + description)
}

// Item image widths. The first is the unscaled original.
var itemImageWidths = []int{1280, 688, 220}

func (s *Source) ReadItemByID(ctx context.Context, id string) (*source.Item, error) {
	apiURL := integrationLayer + id + ".json?onlyChapters=true&vector=portalplay"

	var mc mediaComposition
	if err := network.GetJSON(ctx, s.transport, apiURL, nil, &mc); err != nil {
		return nil, err
	}
	if mc.Episode == nil {
		return nil, source.Fail(source.ParseError, apiURL, "media composition without episode")
	}

	item := source.NewItem(source.SRF, id)
	item.Title = mc.Episode.Title

	if len(mc.ChapterList) == 0 {
		return item.Finish(), nil
	}
	c := mc.ChapterList[0]

	item.Description = text(c.Lead, c.Description)
	if c.Duration != nil {
		item.Duration = lo.ToPtr(*c.Duration / 1000)
	}
	item.Broadcasts = source.Unix(c.Date)
	item.Expires = source.Unix(c.ValidTo)
	item.Geoblocked = lo.ToPtr(!c.PlayableAbroad)
	item.Language = "de"
	item.WebpageURL = "https://www.srf.ch/play/tv/_/video/_?id=" + id
	if mc.Show != nil {
		item.Program = &source.ProgramRef{ID: mc.Show.ID, Name: mc.Show.Title}
	}

	if c.ImageURL != "" {
		item.Image = &source.Image{
			Description: source.NonEmpty(c.ImageTitle),
			Copyright:   source.NonEmpty(c.ImageCopyright),
		}
		for i, width := range itemImageWidths {
			u := c.ImageURL
			if i > 0 {
				u += "/scale/width/" + strconv.Itoa(width)
			}
			item.Image.Variants = append(item.Image.Variants, source.ImageVariant{
				URL:    u,
				Width:  width,
				Height: source.ScaledHeight(width, 16, 9),
			})
		}
	}

	for _, r := range c.ResourceList {
		item.Media = append(item.Media, source.Media{
			URL:     r.URL,
			Type:    r.MimeType,
			Comment: r.Streaming + " " + r.Quality,
		})
	}

	return item.Finish(), nil
}

func (s *Source) ReadItemByPageURL(ctx context.Context, pageURL string) (*source.Item, error) {
	u, err := resolver.SRF(pageURL)
	if err != nil {
		return nil, err
	}
	return s.ReadItemByID(ctx, u.ID)
}

type show struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Lead           string `json:"lead"`
	ImageURL       string `json:"imageUrl"`
	PosterImageURL string `json:"posterImageUrl"`
}

// Program image sizes, all 16:9.
var programImageWidths = []int{240, 320, 480, 720, 960, 1920}

func scaled(original string, width, height int) source.ImageVariant {
	return source.ImageVariant{
		URL:    imageService + "?imageUrl=" + url.QueryEscape(original) + "&format=jpg&width=" + strconv.Itoa(width),
		Width:  width,
		Height: height,
	}
}

func (sh *show) program() *source.Program {
	program := &source.Program{
		ID:               sh.ID,
		Publisher:        source.SRF,
		Name:             sh.Title,
		Description:      source.NonEmpty(sh.Description),
		DescriptionShort: source.NonEmpty(sh.Lead),
		Image:            []source.ImageVariant{},
	}
	if sh.ImageURL != "" {
		for _, width := range programImageWidths {
			program.Image = append(program.Image, scaled(sh.ImageURL, width, source.ScaledHeight(width, 16, 9)))
		}
	}
	if sh.PosterImageURL != "" {
		program.Image = append(program.Image, scaled(sh.PosterImageURL, 480, 720))
	}
	return program
}

func (s *Source) ReadProgram(ctx context.Context, id string) (*source.Program, error) {
	apiURL := playAPI + "show-detail/" + id

	var resp struct {
		Data *show `json:"data"`
	}
	if err := network.GetJSON(ctx, s.transport, apiURL, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, source.Fail(source.ParseError, apiURL, "response without data")
	}
	return resp.Data.program(), nil
}

func (s *Source) FeedDescriptorForProgram(_ context.Context, id string) (*source.FeedDescriptor, error) {
	return &source.FeedDescriptor{Publisher: source.SRF, ProgramID: id}, nil
}

func (s *Source) ReadProgramFeed(ctx context.Context, descriptor *source.FeedDescriptor) ([]*source.ItemSummary, error) {
	if err := descriptor.Check(source.SRF); err != nil {
		return nil, err
	}
	apiURL := playAPI + "videos-by-show-id?showId=" + url.QueryEscape(descriptor.ProgramID)

	var resp struct {
		Data *struct {
			Data []struct {
				ID                string `json:"id"`
				Title             string `json:"title"`
				Subtitle          string `json:"subtitle"`
				Lead              string `json:"lead"`
				Description       string `json:"description"`
				ImageURL          string `json:"imageUrl"`
				AbsoluteDetailURL string `json:"absoluteDetailUrl"`
				Duration          *int64 `json:"duration"`
				PlayableAbroad    bool   `json:"playableAbroad"`
			} `json:"data"`
		} `json:"data"`
	}
	if err := network.GetJSON(ctx, s.transport, apiURL, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, source.Fail(source.ParseError, apiURL, "response without data")
	}

	summaries := make([]*source.ItemSummary, 0, len(resp.Data.Data))
	for _, episode := range resp.Data.Data {
		summary := &source.ItemSummary{
			ID:          episode.ID,
			Publisher:   source.SRF,
			Title:       episode.Title,
			Subtitle:    source.NonEmpty(episode.Subtitle),
			Description: source.NonEmpty(text(episode.Lead, episode.Description)),
			WebpageURL:  source.NonEmpty(episode.AbsoluteDetailURL),
			Geoblocked:  lo.ToPtr(!episode.PlayableAbroad),
		}
		if episode.Duration != nil {
			summary.Duration = lo.ToPtr(*episode.Duration / 1000)
		}
		if episode.ImageURL != "" {
			summary.Image = &source.Image{Variants: []source.ImageVariant{
				{URL: episode.ImageURL + "/scale/width/600", Width: 600, Height: 338},
			}}
		}
		summaries = append(summaries, summary.Finish())
	}

	return summaries, nil
}

func (s *Source) ReadListOfPrograms(ctx context.Context) ([]*source.Program, error) {
	apiURL := playAPI + "shows"

	var resp struct {
		Data []show `json:"data"`
	}
	if err := network.GetJSON(ctx, s.transport, apiURL, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, source.Fail(source.ParseError, apiURL, "response without data")
	}

	return lo.Map(resp.Data, func(sh show, _ int) *source.Program {
		return sh.program()
	}), nil
}
