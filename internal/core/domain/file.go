package domain

import "time"

// Category classifies file content into a closed set of kinds.
type Category string

const (
	// CategoryDocument is textual documents (PDF, Word, plain text).
	CategoryDocument Category = "document"
	// CategoryCode is source code files.
	CategoryCode Category = "code"
	// CategoryImage is image files.
	CategoryImage Category = "image"
	// CategoryVideo is video files.
	CategoryVideo Category = "video"
	// CategoryAudio is audio files.
	CategoryAudio Category = "audio"
	// CategoryNote is short-form notes.
	CategoryNote Category = "note"
	// CategoryChatLog is exported conversation transcripts.
	CategoryChatLog Category = "chat_log"
	// CategoryOther is recognised content that fits no other category.
	CategoryOther Category = "other"
	// CategoryUncategorized is content that has not been classified yet.
	CategoryUncategorized Category = "uncategorized"
)

// Valid reports whether the category is a member of the closed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryDocument, CategoryCode, CategoryImage, CategoryVideo,
		CategoryAudio, CategoryNote, CategoryChatLog, CategoryOther,
		CategoryUncategorized:
		return true
	}
	return false
}

// Platform tags where a file record originated.
type Platform string

const (
	// PlatformLocal is content discovered on the local machine.
	PlatformLocal Platform = "local"
	// PlatformDropbox is content synced from Dropbox.
	PlatformDropbox Platform = "dropbox"
	// PlatformGoogle is content synced from Google Drive.
	PlatformGoogle Platform = "google"
	// PlatformGitHub is content synced from GitHub repositories.
	PlatformGitHub Platform = "github"
	// PlatformMicrosoft is content synced from OneDrive.
	PlatformMicrosoft Platform = "microsoft"
	// PlatformIOS is content from a simulated iOS device source.
	PlatformIOS Platform = "ios"
	// PlatformUbuntu is content from a simulated Ubuntu device source.
	PlatformUbuntu Platform = "ubuntu"
	// PlatformWindows is content from a simulated Windows device source.
	PlatformWindows Platform = "windows"
	// PlatformOther is content from an unrecognised origin.
	PlatformOther Platform = "other"
)

// Valid reports whether the platform is a member of the closed set.
func (p Platform) Valid() bool {
	switch p {
	case PlatformLocal, PlatformDropbox, PlatformGoogle, PlatformGitHub,
		PlatformMicrosoft, PlatformIOS, PlatformUbuntu, PlatformWindows,
		PlatformOther:
		return true
	}
	return false
}

// Identity holds platform-native identifiers for a file record.
// Each platform writes its own field; matching a remote listing against
// stored records is a static field access, never a dynamic key probe.
type Identity struct {
	// DropboxID is the Dropbox file id (e.g., "id:abc123").
	DropboxID string `json:"dropbox_id,omitempty"`

	// GoogleID is the Google Drive file id.
	GoogleID string `json:"google_id,omitempty"`

	// GitHubID is the GitHub blob SHA or content id.
	GitHubID string `json:"github_id,omitempty"`

	// OneDriveID is the Microsoft Graph drive item id.
	OneDriveID string `json:"onedrive_id,omitempty"`

	// DeviceID is the identifier assigned by a simulated device source.
	DeviceID string `json:"device_id,omitempty"`
}

// For returns the identifier this identity carries for the given platform.
// Returns empty string for platforms without a native identifier.
func (id Identity) For(p Platform) string {
	switch p {
	case PlatformDropbox:
		return id.DropboxID
	case PlatformGoogle:
		return id.GoogleID
	case PlatformGitHub:
		return id.GitHubID
	case PlatformMicrosoft:
		return id.OneDriveID
	case PlatformIOS, PlatformUbuntu, PlatformWindows, PlatformLocal:
		return id.DeviceID
	}
	return ""
}

// Set writes the identifier for the given platform and returns the
// updated identity. Unrecognised platforms are a no-op.
func (id Identity) Set(p Platform, nativeID string) Identity {
	switch p {
	case PlatformDropbox:
		id.DropboxID = nativeID
	case PlatformGoogle:
		id.GoogleID = nativeID
	case PlatformGitHub:
		id.GitHubID = nativeID
	case PlatformMicrosoft:
		id.OneDriveID = nativeID
	case PlatformIOS, PlatformUbuntu, PlatformWindows, PlatformLocal:
		id.DeviceID = nativeID
	}
	return id
}

// FileRecord identifies a piece of content tracked by the system.
type FileRecord struct {
	// ID is the unique identifier, assigned by the store on creation.
	ID string

	// OwnerID identifies the user that owns this record.
	OwnerID string

	// Name is the file name (e.g., "report.pdf").
	Name string

	// Path is the location within the originating platform, if known.
	Path string

	// FileType is the extension or MIME hint, if known.
	FileType string

	// Category classifies the content.
	Category Category

	// Source tags the platform this record came from.
	Source Platform

	// SourceID is the platform-native identifier, if any.
	// Kept alongside Identity for display; Identity drives matching.
	SourceID string

	// Identity carries platform-native identifiers for reconciliation.
	Identity Identity

	// LastModified is the content modification time reported by the source.
	LastModified time.Time

	// Size is the content size in bytes. Zero when unknown.
	Size int64

	// Content is literal text content carried with the record, if any.
	// Included in the content summary when present.
	Content string

	// ContentSummary is the canonical text derived from the record's
	// fields. It is the input to embedding generation.
	ContentSummary string

	// ContentVector is the embedding for this record. All vectors compared
	// against each other must share the same length; a mismatch is an
	// error, never a silent zero.
	ContentVector []float32

	// IsProcessed reports whether an embedding has been computed for the
	// current state of the record. Reset to false on re-sync.
	IsProcessed bool

	// CreatedAt is when the record was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the record was last written.
	UpdatedAt time.Time
}
