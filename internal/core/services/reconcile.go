package services

import (
	"github.com/filehub-labs/filehub/internal/core/domain"
)

// Reconcile compares a freshly fetched remote listing against the owner's
// stored records for one platform, classifying each remote item as new,
// updated or unchanged.
//
// Identity match: a remote item matches the stored record whose
// platform-native identifier equals the item's NativeID. No match means the
// item is new.
//
// Change detection, applied only to matches: the item is updated when its
// modification timestamp is strictly newer than the record's, or its size
// differs. A stored record with a zero LastModified is always considered
// stale and classified updated. Otherwise the record is unchanged.
//
// Updated items carry the matched record's id (identity substitution) so the
// caller can update in place rather than insert.
//
// Remote items sharing a NativeID each match the same stored record and are
// classified independently; the listing is not deduplicated. The record
// appears at most once in Unchanged.
//
// Pure, synchronous classification. Persistence (inserts, updates, the
// IsProcessed reset and the LastSynced stamp) belongs to the caller.
func Reconcile(remote []domain.RemoteItem, local []domain.FileRecord, platform domain.Platform) domain.Reconciliation {
	byNativeID := make(map[string]*domain.FileRecord, len(local))
	for i := range local {
		nativeID := local[i].Identity.For(platform)
		if nativeID == "" {
			continue
		}
		// First record wins when stored records collide on an identifier.
		if _, ok := byNativeID[nativeID]; !ok {
			byNativeID[nativeID] = &local[i]
		}
	}

	var result domain.Reconciliation
	seenUnchanged := make(map[string]bool)

	for _, item := range remote {
		match, ok := byNativeID[item.NativeID]
		if !ok || item.NativeID == "" {
			result.New = append(result.New, item)
			continue
		}

		if isRemoteNewer(item, *match) {
			result.Updated = append(result.Updated, domain.RemoteUpdate{
				Item:    item,
				LocalID: match.ID,
			})
			continue
		}

		if !seenUnchanged[match.ID] {
			seenUnchanged[match.ID] = true
			result.Unchanged = append(result.Unchanged, *match)
		}
	}

	return result
}

// isRemoteNewer reports whether the remote item should replace the stored
// record's state.
func isRemoteNewer(item domain.RemoteItem, record domain.FileRecord) bool {
	if record.LastModified.IsZero() {
		return true
	}
	if item.ModifiedAt.After(record.LastModified) {
		return true
	}
	return item.Size != record.Size
}
