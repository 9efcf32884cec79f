// Package service hosts the MCP server that exposes game tools to MCP
// clients over stdio.
package service
