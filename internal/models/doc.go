// Package models defines the core domain models for cafesync.
//
// # Order Tree
//
// A live order is a list of tables:
//   - Group: one table ("1번 테이블") holding several seats
//   - Person: one seat, identified by an emoji avatar
//   - SubItem: one menu selection (drink or dessert) with its modifiers
//
// Every table carries at most one shared slot: a Person whose avatar is the
// reserved 😋 emoji. Items ordered on the shared slot are for the whole
// table and are counted in totals but not in headcounts.
//
// # Classification
//
// A Person has no explicit state tag. Its state is derived from the data by
// Classify, which keeps the sentinel strings in this package instead of
// scattering string comparisons through the codebase.
//
// # Snapshots
//
// History entries and undo snapshots hold deep copies made with CloneGroups.
// Slices are never shared between a live order and a snapshot.
//
// # Wire Format
//
// JSON field names match the blobs written by the browser client,
// so an exported history can be loaded by either side.
package models
