// Package cmd implements the wirecheck CLI commands using Cobra.
//
// Available commands:
//   - run: Send a suite of raw HTTP probes and print each exchange
//   - list: Display the scenarios in a suite or catalogue file
//   - validate: Check catalogue file syntax without sending anything
//   - bench: Repeat one scenario and report latency percentiles
//   - history: Inspect recorded exchanges in a SQLite database
//   - version: Show wirecheck version information
//
// The CLI supports flags for the target address, timeouts, output
// formatting, exchange recording, and watch mode for catalogue files.
package cmd
