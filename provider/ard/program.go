package ard

import (
	"context"
	"fmt"

	"github.com/mediathek-cli/mediathek/log"
	"github.com/mediathek-cli/mediathek/paginate"
	"github.com/mediathek-cli/mediathek/source"
	"github.com/samber/lo"
)

func (s *Source) ReadProgram(ctx context.Context, id string) (*source.Program, error) {
	apiURL := gateway + "pages/ard/grouping/" + id + "?embedded=false&seasoned=true"

	var g grouping
	if err := s.fetch(ctx, apiURL, &g); err != nil {
		return nil, err
	}
	if g.Title == "" {
		return nil, source.Fail(source.NotFoundError, apiURL, "program %q has no title", id)
	}

	program := &source.Program{
		ID:          id,
		Publisher:   source.ARD,
		Name:        g.Title,
		Description: source.NonEmpty(g.Synopsis),
		Language:    lo.ToPtr("de"),
		Originator:  contributor(serviceName(g.PublicationService)),
		Image:       g.variants(source.ProgramImageWidths),
	}
	if g.Links != nil && g.Links.Homepage != nil {
		program.Homepage = source.NonEmpty(g.Links.Homepage.Href)
	}

	return program, nil
}

func (s *Source) FeedDescriptorForProgram(_ context.Context, id string) (*source.FeedDescriptor, error) {
	return &source.FeedDescriptor{Publisher: source.ARD, ProgramID: id}, nil
}

func (s *Source) ReadProgramFeed(ctx context.Context, descriptor *source.FeedDescriptor) ([]*source.ItemSummary, error) {
	if err := descriptor.Check(source.ARD); err != nil {
		return nil, err
	}

	apiURL := gateway + "widgets/ard/asset/" + descriptor.ProgramID + "?pageNumber=0&pageSize=12"

	var list teaserList
	if err := s.fetch(ctx, apiURL, &list); err != nil {
		return nil, err
	}
	if list.Teasers == nil {
		return nil, source.Fail(source.ParseError, apiURL, "feed without teasers")
	}

	summaries := make([]*source.ItemSummary, 0, len(list.Teasers))
	for _, t := range list.Teasers {
		summary := &source.ItemSummary{
			ID:         t.ID,
			Publisher:  source.ARD,
			Title:      t.LongTitle,
			Duration:   t.Duration,
			Broadcasts: source.Unix(t.BroadcastedOn),
		}
		if c, ok := t.Images["aspect16x9"]; ok && c.Src != "" {
			summary.Image = &source.Image{Variants: []source.ImageVariant{
				source.VariantsFromTemplate(c.Src, []int{256})[0],
			}}
		}
		summary.Finish()
		summary.Title = title(t.LongTitle, summary.Broadcasts, "")

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// Editorial page ids of the A-Z program index, one per first letter.
var letterPages = []string{
	"QVJELmE", "QVJELmI", "QVJELmM", "QVJELmQ", "QVJELmU", "QVJELmY", "QVJELmc",
	"QVJELmg", "QVJELmk", "QVJELmo", "QVJELms", "QVJELmw", "QVJELm0", "QVJELm4",
	"QVJELm8", "QVJELnA", "QVJELnE", "QVJELnI", "QVJELnM", "QVJELnQ", "QVJELnU",
	"QVJELnY", "QVJELnc", "QVJELng", "QVJELnk", "QVJELno", "QVJELiM",
}

const letterPageSize = 100

func (s *Source) ReadListOfPrograms(ctx context.Context) ([]*source.Program, error) {
	programs, err := paginate.Walk[*source.Program](ctx, letterPages, letterPageSize, s.letterPage)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"publisher": source.ARD, "programs": len(programs)}).Info("read program list")
	return programs, nil
}

func (s *Source) letterPage(ctx context.Context, pageID string, page, pageSize int) (*paginate.Page[*source.Program], error) {
	apiURL := fmt.Sprintf("%swidgets/ard/editorials/%s?pageSize=%d&pageNumber=%d", gateway, pageID, pageSize, page)

	var list teaserList
	if err := s.fetch(ctx, apiURL, &list); err != nil {
		return nil, err
	}

	result := &paginate.Page[*source.Program]{}
	if list.Pagination != nil {
		result.TotalElements = list.Pagination.TotalElements
	}

	for _, t := range list.Teasers {
		program := &source.Program{
			Publisher:  source.ARD,
			Name:       lo.Ternary(t.LongTitle != "", t.LongTitle, t.MediumTitle),
			Language:   lo.ToPtr("de"),
			Originator: contributor(serviceName(t.PublicationService)),
			Image:      t.variants(source.ProgramImageWidths),
		}
		if t.Links != nil && t.Links.Target != nil {
			program.ID = t.Links.Target.ID
		}
		result.Records = append(result.Records, program)
	}

	return result, nil
}
