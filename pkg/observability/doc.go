/*
Package observability provides tools for monitoring the arbor generator.

Metrics are Prometheus collectors fed by the generator's lifecycle hooks;
LogHooks writes the same events to a structured logger. Both are plain
domain.Hooks values and can be combined with domain.MergeHooks.
*/
package observability
