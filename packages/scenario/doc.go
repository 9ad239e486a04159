// Package scenario defines named request/response probes and runs them
// against a server one at a time.
//
// A scenario is a fixed request plus the raw bytes the server answered
// with. Scenarios never share state and never assert anything about the
// reply: the harness observes, the operator judges. The built-in
// catalogue covers request parsing edge cases (including deliberately
// malformed requests) and multipart file upload; custom catalogues can
// be loaded from YAML files.
package scenario
