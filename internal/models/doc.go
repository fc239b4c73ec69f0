// Package models defines the core domain types for the planner.
//
// # Models
//
//   - Item: one entry in a dated list (a daily task or a monthly goal)
//   - Kind: which of the two list families an item belongs to
//
// A list is identified by its group: the (kind, identifier, owner) triple.
// The group is deliberately NOT a field on Item: the storage layer scopes
// every read and write by it, so an item can never migrate between groups.
//
// # Design Principles
//
// 1. **Wire parity**: JSON field names match the persisted form
// (`id`, `content`, `is_completed`) so local blobs and API payloads
// round-trip without mapping layers.
// 2. **No back-references**: items do not point at their list; the list
// owns its items.
package models
