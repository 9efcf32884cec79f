package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/ladders/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies the MCP server implementation.
	serverName = "ladders"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Server hosts the MCP game tools.
type Server struct {
	mcpServer *mcp.Server
}

// New creates a server whose tools call games.
func New(games domain.GameService) (*Server, error) {
	if games == nil {
		return nil, errors.New("game service is required")
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerGameTools(mcpServer, games)
	return &Server{mcpServer: mcpServer}, nil
}

func registerGameTools(server *mcp.Server, games domain.GameService) {
	mcp.AddTool(server, domain.PlayGameTool(), domain.PlayGameHandler(games))
	mcp.AddTool(server, domain.GetGameTool(), domain.GetGameHandler(games))
	mcp.AddTool(server, domain.ListGamesTool(), domain.ListGamesHandler(games))
}

// Serve runs the server over stdio and blocks until ctx is cancelled or the
// client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
