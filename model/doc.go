// Package model defines the completion-capability abstraction consumed by the
// persona router and the response generator: given an instruction, a
// role-tagged message list and an optional structured-output schema, return
// text. Provider packages (model/openai, model/anthropic) adapt concrete SDKs
// to this contract; MockModel provides deterministic behavior for tests.
//
// Providers are treated as unreliable by design: every call site recovers
// locally (randomized routing fallback, canned generation fallback) and no
// provider error ever reaches an end user.
package model
