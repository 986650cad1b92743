// Package source defines the canonical record model shared by every publisher adapter
// and the contract those adapters implement.
package source

import "context"

// Source is a publisher adapter. Every implementation returns canonical records;
// raw payloads never leave the adapter.
type Source interface {
	// Publisher identifies the platform served by this adapter.
	Publisher() Publisher

	// ReadItemByID fetches a single item.
	ReadItemByID(ctx context.Context, id string) (*Item, error)

	// ReadItemByPageURL resolves a publisher web page to an item id and fetches it.
	ReadItemByPageURL(ctx context.Context, pageURL string) (*Item, error)

	// ReadProgram fetches a program.
	ReadProgram(ctx context.Context, id string) (*Program, error)

	// FeedDescriptorForProgram produces the value ReadProgramFeed of the same adapter consumes.
	FeedDescriptorForProgram(ctx context.Context, id string) (*FeedDescriptor, error)

	// ReadProgramFeed lists the items currently published for a program.
	ReadProgramFeed(ctx context.Context, descriptor *FeedDescriptor) ([]*ItemSummary, error)

	// ReadListOfPrograms lists every program the publisher offers.
	ReadListOfPrograms(ctx context.Context) ([]*Program, error)
}
