// Package controller implements the phase-sequenced core of debatemesh: a
// state machine driving one debate session from intake through opening
// statements, the bounded moderated loop, closing statements, summary,
// adjudication and report synthesis, emitting a typed event for every
// externally observable step.
//
// Design properties:
//
//   - The transcript is owned by the single goroutine running the session;
//     agents only ever see rendered strings.
//   - Opening statements fan out concurrently and are appended in completion
//     order; every other phase is sequential because each step consumes the
//     previous step's output. Phase boundaries are full synchronization
//     points.
//   - The debate loop is bounded by MaxRounds regardless of moderator
//     output, and any ambiguous control decision terminates it.
//   - Retry is not implemented here; the controller is handed a generation
//     client that has already been wrapped (see the retry package) and never
//     re-invokes a failed call itself.
//   - Failures degrade where a fallback exists (a panelist's lost statement
//     skips that contribution) and are fatal where none does (intake,
//     adjudication, report).
package controller
