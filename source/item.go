package source

import (
	"encoding/json"

	"github.com/samber/lo"
)

// ImageVariant is one rendition of an image.
type ImageVariant struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Image groups the renditions of one picture with its caption.
type Image struct {
	Description *string        `json:"description,omitempty"`
	Copyright   *string        `json:"copyright,omitempty"`
	Variants    []ImageVariant `json:"variants"`
}

// Media is one playable stream.
type Media struct {
	URL             string `json:"url"`
	Type            string `json:"type"`
	Comment         string `json:"comment"`
	Bitrate         *int   `json:"bitrate,omitempty"`
	IsHDR           *bool  `json:"isHdr,omitempty"`
	DownloadAllowed bool   `json:"downloadAllowed"`
}

// Subtitle is one caption track.
type Subtitle struct {
	Format   string   `json:"format"`
	Language string   `json:"language"`
	URL      string   `json:"url"`
	Offset   *float64 `json:"offset,omitempty"`
}

// ProgramRef points from an item to the program it belongs to.
type ProgramRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Item is a single video with its streams, captions and descriptive metadata.
// Optional values are nil when the publisher does not provide them.
type Item struct {
	ID                       string          `json:"id"`
	Publisher                Publisher       `json:"publisher"`
	Originator               *string         `json:"originator,omitempty"`
	Title                    string          `json:"title,omitempty"`
	Subtitle                 *string         `json:"subtitle,omitempty"`
	Description              string          `json:"description,omitempty"`
	Duration                 *int64          `json:"duration,omitempty"`
	Broadcasts               *int64          `json:"broadcasts,omitempty"`
	Expires                  *int64          `json:"expires,omitempty"`
	Geoblocked               *bool           `json:"geoblocked,omitempty"`
	Language                 string          `json:"language,omitempty"`
	WebpageURL               string          `json:"webpageUrl,omitempty"`
	RatingInfo               json.RawMessage `json:"ratingInfo,omitempty"`
	Program                  *ProgramRef     `json:"program,omitempty"`
	IncludesAudioDescription *bool           `json:"includesAudioDescription,omitempty"`
	IncludesSignLanguage     *bool           `json:"includesSignLanguage,omitempty"`
	HD                       *bool           `json:"hd,omitempty"`
	Image                    *Image          `json:"image,omitempty"`
	Media                    []Media         `json:"media"`
	Subtitles                []Subtitle      `json:"subtitles"`
	DownloadAllowed          *bool           `json:"downloadAllowed,omitempty"`
	Captured                 *int64          `json:"captured,omitempty"`
	URN                      string          `json:"urn,omitempty"`
}

// NewItem returns an item with empty media and subtitle lists.
func NewItem(publisher Publisher, id string) *Item {
	return &Item{
		ID:        id,
		Publisher: publisher,
		Media:     []Media{},
		Subtitles: []Subtitle{},
	}
}

// Finish applies the rules every adapter shares once an item is fully populated:
// title flags, the item-level download flag and non-nil lists.
func (i *Item) Finish() *Item {
	if i.Media == nil {
		i.Media = []Media{}
	}
	if i.Subtitles == nil {
		i.Subtitles = []Subtitle{}
	}

	flags := TitleFlags(i.Title)
	i.IncludesAudioDescription = flags.AudioDescription
	i.IncludesSignLanguage = flags.SignLanguage

	if lo.SomeBy(i.Media, func(m Media) bool { return m.DownloadAllowed }) {
		i.DownloadAllowed = lo.ToPtr(true)
	}

	return i
}

// ItemSummary is the partial item listed in a program feed.
type ItemSummary struct {
	ID                       string    `json:"id"`
	Publisher                Publisher `json:"publisher"`
	Title                    string    `json:"title"`
	Subtitle                 *string   `json:"subtitle,omitempty"`
	Description              *string   `json:"description,omitempty"`
	Duration                 *int64    `json:"duration,omitempty"`
	Broadcasts               *int64    `json:"broadcasts,omitempty"`
	Geoblocked               *bool     `json:"geoblocked,omitempty"`
	WebpageURL               *string   `json:"webpageUrl,omitempty"`
	IncludesAudioDescription *bool     `json:"includesAudioDescription,omitempty"`
	IncludesSignLanguage     *bool     `json:"includesSignLanguage,omitempty"`
	Image                    *Image    `json:"image,omitempty"`
}

// Finish applies the title flags.
func (s *ItemSummary) Finish() *ItemSummary {
	flags := TitleFlags(s.Title)
	s.IncludesAudioDescription = flags.AudioDescription
	s.IncludesSignLanguage = flags.SignLanguage
	return s
}
