package source

// Program is a show or series grouping items.
type Program struct {
	ID               string         `json:"id"`
	Publisher        Publisher      `json:"publisher"`
	Name             string         `json:"name"`
	Subtitle         *string        `json:"subtitle,omitempty"`
	Description      *string        `json:"description,omitempty"`
	DescriptionShort *string        `json:"descriptionShort,omitempty"`
	Language         *string        `json:"language,omitempty"`
	Homepage         *string        `json:"homepage,omitempty"`
	Originator       *string        `json:"originator,omitempty"`
	Image            []ImageVariant `json:"image,omitempty"`
	URN              string         `json:"urn,omitempty"`
	Captured         *int64         `json:"captured,omitempty"`
}

// FeedDescriptor is produced by FeedDescriptorForProgram and handed back unchanged to
// ReadProgramFeed of the same adapter. Callers should treat it as opaque.
type FeedDescriptor struct {
	Publisher  Publisher `json:"publisher"`
	ProgramID  string    `json:"programId"`
	ExternalID string    `json:"externalId,omitempty"`
	RSSURL     string    `json:"rssUrl,omitempty"`
}

// Check fails unless the descriptor was issued for publisher.
func (d *FeedDescriptor) Check(publisher Publisher) error {
	if d == nil {
		return Fail(ParseError, "", "missing feed descriptor")
	}
	if d.Publisher != publisher {
		return Fail(ParseError, d.ProgramID, "feed descriptor issued for %s, not %s", d.Publisher, publisher)
	}
	return nil
}

// Feed is the result of reading a program feed.
type Feed struct {
	Items []*ItemSummary `json:"items"`
}
