package zdf

import (
	"context"

	"github.com/mediathek-cli/mediathek/source"
	"github.com/samber/lo"
)

func (s *Source) navigation(ctx context.Context, id string) (*document, error) {
	apiURL := s.documentURL(id, "navigation")

	var doc document
	if err := s.call(ctx, apiURL, id, &doc); err != nil {
		return nil, err
	}
	if doc.StructureNodePath == "" {
		return nil, source.Fail(source.ParseError, apiURL, "document %q has no structure node path", id)
	}
	return &doc, nil
}

func (s *Source) ReadProgram(ctx context.Context, id string) (*source.Program, error) {
	doc, err := s.navigation(ctx, id)
	if err != nil {
		return nil, err
	}

	name, _ := doc.title()
	program := &source.Program{
		ID:        id,
		Publisher: s.cfg.Publisher,
		Name:      name,
		Language:  lo.ToPtr("de"),
		Homepage:  source.NonEmpty(doc.SharingURL),
	}

	if len(doc.Stage) > 0 && len(doc.Stage[0].Teaser) > 0 {
		if target := doc.Stage[0].Teaser[0].Target; target != nil {
			// 1200x1200 crops are not cropped properly upstream.
			program.Image = layoutVariants(target.Layouts, func(w, h int) bool {
				return w == 1200 && h == 1200
			})
		}
	}

	return program, nil
}

func (s *Source) FeedDescriptorForProgram(ctx context.Context, id string) (*source.FeedDescriptor, error) {
	doc, err := s.navigation(ctx, id)
	if err != nil {
		return nil, err
	}

	return &source.FeedDescriptor{
		Publisher:  s.cfg.Publisher,
		ProgramID:  id,
		ExternalID: doc.ExternalID,
		RSSURL:     s.cfg.Origin + "/rss" + doc.StructureNodePath,
	}, nil
}

var listImageSizes = []string{"640x720", "3000x3000", "768x432"}

func (s *Source) ReadListOfPrograms(ctx context.Context) ([]*source.Program, error) {
	apiURL := s.documentURL("sendungen-100", "default")

	var list programList
	if err := s.call(ctx, apiURL, string(s.cfg.Publisher)+"_programlist_sendungen-100", &list); err != nil {
		return nil, err
	}
	if list.Brand == nil {
		return nil, source.Fail(source.ParseError, apiURL, "program list without brands")
	}

	var programs []*source.Program
	for _, collection := range list.Brand {
		for _, teaser := range collection.Teaser {
			target := teaser.Target
			if target == nil {
				continue
			}

			program := &source.Program{
				ID:          target.ID,
				Publisher:   s.cfg.Publisher,
				Name:        teaser.Title,
				Description: source.NonEmpty(target.Teasertext),
				Language:    lo.ToPtr("de"),
				Homepage:    source.NonEmpty(target.SharingURL),
			}
			if cs := target.ConfSection; cs != nil && cs.HomeTvService != nil {
				program.Originator = source.NonEmpty(cs.HomeTvService.TvServiceTitle)
			}
			if ref := target.TeaserImageRef; ref != nil {
				for _, size := range listImageSizes {
					u, ok := ref.Layouts[size]
					if !ok {
						continue
					}
					w, h, _ := source.ParseSize(size)
					program.Image = append(program.Image, source.ImageVariant{URL: u, Width: w, Height: h})
				}
			}

			programs = append(programs, program)
		}
	}

	return programs, nil
}
