// Package output provides formatters for displaying probe results.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: Machine-readable dump of each raw exchange
//
// Formatters only render; no formatter ever interprets a server's
// answer as a pass or a fail.
package output
