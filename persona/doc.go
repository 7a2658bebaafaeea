// Package persona provides the static catalog of automated participant
// identities, the registry used by the router and generator, and the
// idempotent seeding that binds each persona to a backing agent participant.
//
// Personas are immutable after registry construction. The registry supports
// concurrent read access from multiple orchestration runs; the only mutation
// is the initial load.
package persona
