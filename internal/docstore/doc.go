// Package docstore provides encrypted one-file-per-collection storage for
// the app's persisted entities.
//
// Each collection is a single file holding IV‖ciphertext around an
// indented JSON array of records. The package implements:
//   - Collections: generic load/save of one named record array
//   - Gates: per-path mutual exclusion over whole read-modify-write cycles
//   - Atomic replace: temp write + backup + rename, never a truncated target
//   - Quarantine: unreadable files are renamed aside, not deleted
//
// # Critical Patterns
//
// CP-1: Disk Is the Source of Truth
//   - No collection is cached across the gate boundary
//   - Every operation reloads, mutates, and re-persists
//
// CP-2: Availability over Surfacing Loss
//   - Decrypt/parse failures degrade to an empty collection after a
//     backup-restore attempt, and are logged, never returned
//   - Key-storage unavailability is the one fatal, propagated failure
//
// CP-3: Tolerant Decode
//   - JSON field names are matched case-insensitively on read, so minor
//     schema drift across app versions does not brick a collection
//
// The cipher is AES-256-CBC without an authentication tag (see
// internal/crypt); corruption and tampering both surface as decryption
// failures and take the quarantine path.
package docstore
