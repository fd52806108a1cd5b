// Package loader reads report batches from JSON and YAML files.
//
// Three document shapes are accepted:
//
//	[ {report}, ... ]                          a bare list of reports
//	{ "values": [ {report}, ... ] }            the Sentry exception envelope
//	{ "exception": { "values": [...] }, ... }  a full Sentry event
//
// Event exceptions are decoded with sentry-go's types and converted by
// report.FromSentryEvent, so they follow sentry's frame schema: zero values
// and unknown frame keys are dropped. A single report object is accepted too. Directories are walked recursively
// and every .json, .yaml and .yml file found is loaded in lexical order.
package loader
