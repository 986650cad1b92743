package ard

import (
	"encoding/json"

	"github.com/mediathek-cli/mediathek/source"
)

type service struct {
	Name string `json:"name"`
}

type crop struct {
	Src string `json:"src"`
}

type picture struct {
	Src          string `json:"src"`
	Alt          string `json:"alt"`
	ProducerName string `json:"producerName"`
}

// artwork is either a map of named crops or a single {width} template.
type artwork struct {
	Images map[string]crop `json:"images"`
	Image  *picture        `json:"image"`
}

func (a artwork) variants(widths []int) []source.ImageVariant {
	if len(a.Images) > 0 {
		crops := make(map[string]string, len(a.Images))
		for k, c := range a.Images {
			crops[k] = c.Src
		}
		return source.VariantsFromAspects(crops, widths)
	}
	if a.Image != nil && a.Image.Src != "" {
		return source.VariantsFromTemplate(a.Image.Src, widths)
	}
	return nil
}

type streamMedia struct {
	URL                         string `json:"url"`
	MimeType                    string `json:"mimeType"`
	MaxHResolutionPx            int    `json:"maxHResolutionPx"`
	MaxVResolutionPx            int    `json:"maxVResolutionPx"`
	IsAdaptiveQualitySelectable bool   `json:"isAdaptiveQualitySelectable"`
	IsHighDynamicRange          *bool  `json:"isHighDynamicRange"`
}

type stream struct {
	Media []streamMedia `json:"media"`
}

type mediaCollection struct {
	Embedded *struct {
		Meta *struct {
			DurationSeconds *int64 `json:"durationSeconds"`
		} `json:"meta"`
		Streams []stream `json:"streams"`
	} `json:"embedded"`
	SubtitleURL    string   `json:"_subtitleUrl"`
	SubtitleOffset *float64 `json:"_subtitleOffset"`
}

type widget struct {
	Title                 string          `json:"title"`
	Synopsis              string          `json:"synopsis"`
	PublicationService    service         `json:"publicationService"`
	BroadcastedOn         string          `json:"broadcastedOn"`
	AvailableTo           string          `json:"availableTo"`
	Geoblocked            *bool           `json:"geoblocked"`
	MaturityContentRating json.RawMessage `json:"maturityContentRating"`
	Show                  *struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"show"`
	Image           *picture         `json:"image"`
	MediaCollection *mediaCollection `json:"mediaCollection"`
}

type itemPage struct {
	Widgets []widget `json:"widgets"`
}

type grouping struct {
	artwork
	Title              string   `json:"title"`
	Synopsis           string   `json:"synopsis"`
	PublicationService *service `json:"publicationService"`
	Links              *struct {
		Homepage *struct {
			Href string `json:"href"`
		} `json:"homepage"`
	} `json:"links"`
}

type teaser struct {
	artwork
	ID                 string   `json:"id"`
	LongTitle          string   `json:"longTitle"`
	MediumTitle        string   `json:"mediumTitle"`
	Duration           *int64   `json:"duration"`
	BroadcastedOn      string   `json:"broadcastedOn"`
	PublicationService *service `json:"publicationService"`
	Links              *struct {
		Target *struct {
			ID string `json:"id"`
		} `json:"target"`
	} `json:"links"`
}

type teaserList struct {
	Teasers    []teaser `json:"teasers"`
	Pagination *struct {
		TotalElements int `json:"totalElements"`
	} `json:"pagination"`
}

func serviceName(s *service) string {
	if s == nil {
		return ""
	}
	return s.Name
}
