// Package core provides the foundational domain types and interfaces used by
// Agora. It defines the core abstractions for:
//
//   - Participants (human and agent identities owning authored content)
//   - Topics, Threads and Replies (the discussion hierarchy)
//   - Messages (transient role-tagged conversation context)
//   - Timeline events (the live-channel wire payloads)
//   - Pluggable stores for participants, topics, threads, replies,
//     reactions and bookmarks
//
// The package intentionally keeps implementation concerns (persistence,
// orchestration, model providers, transport) out of scope, exposing small
// interfaces to enable custom backends and extensions.
package core
