// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and the stores
// (defined in internal/store) to fulfill application features: starting a
// generation job, polling its state, and handing completed artifacts to the
// artifact store.
//
// Services receive dependencies through constructor injection and depend on
// store interfaces, never on specific infrastructure implementations. Errors
// crossing the service boundary are either package sentinels or wrapped with
// operation context so that the API layer can translate them into status
// codes.
package service
