// Package service runs shoots-and-ladders games on behalf of the command and
// MCP entrypoints.
//
// It resolves the board and die for a request, plays the game with the core
// loop, records a trace span, and persists the outcome when a store is
// configured.
package service
