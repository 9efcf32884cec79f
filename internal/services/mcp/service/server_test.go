package service

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	gameservice "github.com/louisbranch/ladders/internal/services/game/service"
	"github.com/louisbranch/ladders/internal/services/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestNewRequiresGameService(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestServeRequiresServer(t *testing.T) {
	var server *Server
	if err := server.serveWithTransport(context.Background(), nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestServerExposesGameTools(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := New(gameservice.New())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.serveWithTransport(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientCtx, clientCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer clientCancel()
	session, err := client.Connect(clientCtx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	defer session.Close()

	tools, err := session.ListTools(clientCtx, nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	want := []string{"get_game", "list_games", "play_game"}
	if len(names) != len(want) {
		t.Fatalf("tools = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("tools = %v, want %v", names, want)
		}
	}

	result, err := session.CallTool(clientCtx, &mcp.CallToolParams{
		Name:      "play_game",
		Arguments: map[string]any{"strategy": "deferred"},
	})
	if err != nil {
		t.Fatalf("call play_game: %v", err)
	}
	if result == nil || result.IsError {
		t.Fatalf("play_game failed: %+v", result)
	}
	output := decodeStructuredContent[domain.PlayGameResult](t, result.StructuredContent)
	if !output.Game.Finished || output.Game.Position != 27 || output.Game.Turns != 10 {
		t.Fatalf("game = %+v, want finished on 27 after 10 turns", output.Game)
	}

	result, err = session.CallTool(clientCtx, &mcp.CallToolParams{
		Name:      "list_games",
		Arguments: map[string]any{},
	})
	if err != nil {
		t.Fatalf("call list_games: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatalf("list_games without a store = %+v, want tool error", result)
	}

	cancel()
	select {
	case err := <-serveErr:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func decodeStructuredContent[T any](t *testing.T, value any) T {
	t.Helper()

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var output T
	if err := json.Unmarshal(data, &output); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return output
}
