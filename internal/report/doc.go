// Package report defines the input records of an aggregation run: frames,
// exception contexts and the reports that carry them.
//
// The wire shape follows the Sentry exception interface:
//
//	{
//	  "type": "status \"InternalError\"",
//	  "value": "Worker stopped unexpectedly",
//	  "stacktrace": {"frames": [{"filename": "server.go", "lineno": 878, ...}, ...]}
//	}
//
// Frames are ordered outermost call first. Frame fields are all optional and
// any field not modelled explicitly is preserved in Frame.Extra so that
// content hashing sees the full record.
package report
