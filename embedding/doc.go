// Package embedding manages the per-feature embedding cache.
//
// The Manager type builds a bundle of five vectors per catalog feature (one
// per text field plus one combined), fans bulk builds out across a worker
// pool, and persists bundles through a storage.EmbeddingRepository so they
// survive process restarts. Individual embedding failures during a bulk
// build are logged and skipped, never aborting the build.
//
// Each bundle records a fingerprint of the source text it was built from;
// Verify reports bundles whose catalog text has since changed. Restoring
// never invalidates implicitly; rebuilds are explicit.
package embedding
