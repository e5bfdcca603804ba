// Package session implements the in-memory study session: the due-ordered
// review queue, the grading state machine that advances it, and the
// presentation mode selector. Sessions are owned by a Manager keyed by
// learner so that an in-progress queue survives across requests and is
// never silently discarded by re-initialization.
package session
