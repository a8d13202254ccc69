// Package store defines interfaces for data persistence operations: the job
// store with its merge-then-replace update contract, and the artifact store
// for saved quizzes, decks and exams. These interfaces abstract the
// underlying storage mechanism from the application's core logic, so
// business rules stay independent of where records actually live.
package store
