// Package task manages background job queuing, processing, and lifecycle.
// It provides the worker pool that executes generation pipelines out-of-band,
// ensuring a long model call never blocks the HTTP request that created the
// job. Jobs run to a terminal state with no retries: a failed job stays
// failed, and the caller submits a new request to try again.
package task
