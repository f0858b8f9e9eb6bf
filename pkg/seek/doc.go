// Package seek drives the finder: it turns the option stream into a Config,
// walks every root with the criteria evaluator and reports, details or
// executes a command for each match. A match limit stops the whole run
// through the walker cancellation signal.
package seek
