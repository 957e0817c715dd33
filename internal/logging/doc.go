// Package logging builds the zerolog loggers used by pagekit.
//
// Loggers are configured from a Config (level, format, output, file). When the
// configured log file cannot be opened the logger falls back to stderr and the
// LogPathResult records why, so the CLI can tell the user.
//
// Every command gets a trace id (a ULID) carried on the context and attached to
// every event by TraceHook.
package logging
