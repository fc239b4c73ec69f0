package models

import "strings"

// Item is a single entry in a dated list: one task for a day or one goal
// for a month. The group it belongs to (kind, identifier, owner) is not
// stored on the item; it is encoded in the storage key locally and in the
// identifier column remotely.
type Item struct {
	// ID is unique within the item's group. The remote store assigns it
	// (autoincrement); the local store generates it per group.
	ID int64 `json:"id"`

	// Content is the item text. Always trimmed and never empty once
	// persisted.
	Content string `json:"content"`

	// Completed reports whether the item has been checked off.
	Completed bool `json:"is_completed"`
}

// CleanContent trims content the way every write path must before
// persisting. The empty result means the input is invalid.
func CleanContent(content string) string {
	return strings.TrimSpace(content)
}

// CloneItems returns an independent copy of items. Used for rollback
// snapshots so a restore is not aliased to the live slice.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
