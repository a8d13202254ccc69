// Package api implements the HTTP delivery layer: thin handlers that decode
// and validate requests, invoke the generation service, and translate
// service errors into status codes. Generation endpoints respond 202 with a
// job id; clients observe progress exclusively by polling the status
// endpoint.
package api
