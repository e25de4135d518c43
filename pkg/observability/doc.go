/*
Package observability provides generation hooks for monitoring casegen.

Metrics exports Prometheus collectors for runs and cases, LogHooks writes the same
events to a slog.Logger, and Combine fans one event out to several hook sets.
*/
package observability
