package zdf

import (
	"encoding/json"
	"sort"

	"github.com/mediathek-cli/mediathek/source"
)

const (
	relTarget     = "http://zdf.de/rels/target"
	relSharingURL = "http://zdf.de/rels/sharing-url"
)

type imageRef struct {
	Caption         string            `json:"caption"`
	CopyrightNotice string            `json:"copyrightNotice"`
	Layouts         map[string]string `json:"layouts"`
}

type videoTarget struct {
	Duration     *float64 `json:"duration"`
	VisibleTo    string   `json:"visibleTo"`
	PTMDTemplate string   `json:"http://zdf.de/rels/streams/ptmd-template"`
}

type videoContent struct {
	Target *videoTarget `json:"http://zdf.de/rels/target"`
}

type brandRef struct {
	Title  string `json:"title"`
	Target *struct {
		ID string `json:"id"`
	} `json:"http://zdf.de/rels/target"`
}

type stage struct {
	Teaser []struct {
		Target *struct {
			Layouts map[string]string `json:"layouts"`
		} `json:"http://zdf.de/rels/target"`
	} `json:"teaser"`
}

// document is the part of a content document the adapter reads. It covers the
// player2 and navigation profiles.
type document struct {
	Profile           string          `json:"profile"`
	Title             json.RawMessage `json:"title"`
	TVService         string          `json:"tvService"`
	LeadParagraph     string          `json:"leadParagraph"`
	EditorialDate     string          `json:"editorialDate"`
	SharingURL        string          `json:"http://zdf.de/rels/sharing-url"`
	Brand             *brandRef       `json:"http://zdf.de/rels/brand"`
	TeaserImageRef    *imageRef       `json:"teaserImageRef"`
	MainVideoContent  *videoContent   `json:"mainVideoContent"`
	MainContent       json.RawMessage `json:"mainContent"`
	StructureNodePath string          `json:"structureNodePath"`
	ExternalID        string          `json:"externalId"`
	Stage             []stage         `json:"stage"`
}

// title returns the title when it is a JSON string.
func (d *document) title() (string, bool) {
	var t string
	if len(d.Title) == 0 || json.Unmarshal(d.Title, &t) != nil {
		return "", false
	}
	return t, true
}

func (d *document) video() *videoTarget {
	content := d.MainVideoContent
	if content == nil && len(d.MainContent) > 0 {
		var main struct {
			VideoContent *videoContent `json:"videoContent"`
		}
		if json.Unmarshal(d.MainContent, &main) == nil {
			content = main.VideoContent
		}
	}
	if content == nil {
		return nil
	}
	return content.Target
}

type streamInfo struct {
	Captions []struct {
		Format   string   `json:"format"`
		Language string   `json:"language"`
		URI      string   `json:"uri"`
		Offset   *float64 `json:"offset"`
	} `json:"captions"`
	Attributes json.RawMessage `json:"attributes"`
	PriorityList []struct {
		Formitaeten []struct {
			Qualities []struct {
				Quality string `json:"quality"`
				Audio   struct {
					Tracks []struct {
						URI string `json:"uri"`
					} `json:"tracks"`
				} `json:"audio"`
			} `json:"qualities"`
		} `json:"formitaeten"`
	} `json:"priorityList"`
}

func (i *streamInfo) downloadAllowed() bool {
	var attrs struct {
		DownloadAllowed *struct {
			Value bool `json:"value"`
		} `json:"downloadAllowed"`
	}
	if len(i.Attributes) == 0 || json.Unmarshal(i.Attributes, &attrs) != nil || attrs.DownloadAllowed == nil {
		return false
	}
	return attrs.DownloadAllowed.Value
}

type programList struct {
	Brand []struct {
		Teaser []struct {
			Title  string `json:"title"`
			Target *struct {
				ID          string `json:"id"`
				Teasertext  string `json:"teasertext"`
				SharingURL  string `json:"http://zdf.de/rels/sharing-url"`
				ConfSection *struct {
					HomeTvService *struct {
						TvServiceTitle string `json:"tvServiceTitle"`
					} `json:"homeTvService"`
				} `json:"http://zdf.de/rels/content/conf-section"`
				TeaserImageRef *imageRef `json:"teaserImageRef"`
			} `json:"http://zdf.de/rels/target"`
		} `json:"teaser"`
	} `json:"brand"`
}

type hbbtvPage struct {
	Elems []struct {
		Variant string `json:"variant"`
		Elems   []struct {
			HasVideo bool   `json:"hasVideo"`
			TitleTxt string `json:"titletxt"`
			Link     *struct {
				HTMLAnchor *struct {
					Href string `json:"href"`
				} `json:"htmlAnchor"`
			} `json:"link"`
		} `json:"elems"`
	} `json:"elems"`
}

// layoutVariants turns "WxH" → URL layouts into variants, widest first. Keys that
// are not sizes ("original") and those rejected by skip are left out.
func layoutVariants(layouts map[string]string, skip func(w, h int) bool) []source.ImageVariant {
	var variants []source.ImageVariant
	for k, u := range layouts {
		w, h, ok := source.ParseSize(k)
		if !ok || u == "" || (skip != nil && skip(w, h)) {
			continue
		}
		variants = append(variants, source.ImageVariant{URL: u, Width: w, Height: h})
	}
	sort.Slice(variants, func(i, j int) bool {
		if variants[i].Width != variants[j].Width {
			return variants[i].Width > variants[j].Width
		}
		return variants[i].Height > variants[j].Height
	})
	return variants
}
