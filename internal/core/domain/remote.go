package domain

import "time"

// RemoteItem is a normalised file listing entry fetched from a platform.
// Platform adapters produce these; the reconciliation engine is agnostic to
// how they were fetched.
type RemoteItem struct {
	// NativeID is the platform-native identifier used for identity matching.
	NativeID string

	// Name is the file name.
	Name string

	// Path is the location within the platform, if known.
	Path string

	// Size is the content size in bytes.
	Size int64

	// ModifiedAt is the modification time reported by the platform.
	ModifiedAt time.Time

	// MimeOrExt is the MIME type or file extension reported by the platform.
	MimeOrExt string

	// Content is literal text content fetched with the listing, if any.
	Content string
}

// RemoteUpdate pairs a remote item with the stored record it matched, after
// identity substitution: LocalID carries the existing record's id so the
// caller can update in place rather than insert.
type RemoteUpdate struct {
	// Item is the remote listing entry, newer than the stored record.
	Item RemoteItem

	// LocalID is the id of the stored record the item matched.
	LocalID string
}

// Reconciliation is the classification of a remote listing against stored
// records. It carries no persistence side effects.
type Reconciliation struct {
	// New are remote items with no matching stored record.
	New []RemoteItem

	// Updated are remote items whose matched record is stale.
	Updated []RemoteUpdate

	// Unchanged are stored records whose remote counterpart is identical.
	Unchanged []FileRecord
}
