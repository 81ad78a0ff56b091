// Package core provides the foundational domain types used by debatemesh. It
// defines the core abstractions for:
//
//   - Events (immutable, externally observable progress records)
//   - Turns and the Transcript (the append-only debate log)
//   - Sessions (the per-run record of subject, phase and round)
//
// The package intentionally keeps implementation concerns (generation
// backends, phase orchestration, concrete agents) out of scope so that every
// other package can share these types without cycles. A Transcript is owned
// exclusively by the run that created it; read-only renderings are what get
// passed to agents.
package core
