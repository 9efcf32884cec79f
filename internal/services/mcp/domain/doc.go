// Package domain defines the MCP tools exposed for games: their schemas and
// the handlers that call the game service.
package domain
