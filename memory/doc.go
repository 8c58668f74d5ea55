// Package memory persists and exports conversation snapshots.
//
// Persistence model:
//   - One JSON snapshot file per session; every save is a full overwrite.
//   - Loading a missing file returns a nil conversation, not an error.
//   - Snapshots carry a version tag; version 0 (absent) is read as legacy.
package memory
