// Package formatter renders events as text.
//
// FormatEvent renders the log_format template of a new-style event. The
// template syntax uses braces: "{key}" is replaced by the value the event
// holds under key, "{{" and "}}" are literal braces. A template that
// cannot be rendered never panics or returns an error; the output then
// describes the event and what went wrong.
//
// LegacyText renders a legacy event the way the older API did: message
// parts joined by spaces, an error description for failures, or a
// "%(key)s" format string expanded against the event.
//
// TextFormatter and JSONFormatter turn a whole event, in either dialect,
// into one line of output for the writer observer. Both implement
// Formatter and WriterFormatter and use a pooled bytes.Buffer. Buffers
// larger than 64 KiB are not returned to the pool.
package formatter
