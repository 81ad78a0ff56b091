// Package testutil contains helper utilities used across tests to reduce
// boilerplate when driving debate sessions and asserting on their event
// streams and transcripts. These helpers are intentionally minimal and avoid
// adding third‑party dependencies. They are not intended for production usage.
package testutil
