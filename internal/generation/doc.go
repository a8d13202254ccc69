// Package generation holds the contract between the application core and the
// external text-generation service: prompt construction per artifact type,
// strict parsing of the model's textual reply into typed domain artifacts,
// the ModelClient boundary, and the failure taxonomy the pipeline surfaces
// to polling clients.
package generation
