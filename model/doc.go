// Package model defines the generation client contract consumed by every
// debate component. The backend is treated as an opaque, fallible,
// rate-limited text producer: a Request goes in, one complete statement comes
// out. Failures are classified at this boundary into transient
// (RateLimitError) and permanent (RequestError) so that callers never have to
// inspect provider error strings.
//
// Concrete adapters live in the model/openai and model/anthropic
// subpackages; MockModel provides a scriptable in-memory implementation for
// tests and examples.
package model
