// Package domain contains the core business entities and rules of the
// generation subsystem: validated generation requests, the quiz, deck and
// exam artifacts with their structural invariants, and the job record with
// its one-directional state machine. It is independent of any specific
// infrastructure or delivery mechanism.
package domain
