package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/casegen"
	"github.com/aretw0/casegen/internal/presentation/graph"
	"github.com/aretw0/casegen/pkg/adapters/memory"
	"github.com/aretw0/casegen/pkg/domain"
	"github.com/aretw0/casegen/pkg/ports"
)

// GenerateResponse is the structured result of the generate_cases tool.
type GenerateResponse struct {
	Run   *domain.Run `json:"run" jsonschema_description:"The generated run with its cases and failures"`
	Lines []string    `json:"lines" jsonschema_description:"One line per case in A--label-->B form"`
}

// Engine defines the part of the casegen facade the MCP server drives.
type Engine interface {
	Load(ctx context.Context, src ports.GraphSource) (*domain.Graph, error)
	Generate(ctx context.Context, g *domain.Graph, s domain.Strategy, opts casegen.Options) (*domain.Run, error)
}

// Server wraps the casegen Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	source    ports.GraphSource
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. source is the machine used when a tool
// call carries no transitions; it may be nil.
func NewServer(engine Engine, source ports.GraphSource) *Server {
	s := &Server{
		engine:    engine,
		source:    source,
		mcpServer: server.NewMCPServer("casegen-mcp", strings.TrimSpace(casegen.Version)),
	}
	s.registerTools()
	if source != nil {
		s.registerResources()
	}
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: generate_cases
	generateTool := mcp.NewTool("generate_cases",
		mcp.WithDescription("Generate test cases from a state machine with one of the node, path, euler or all strategies."),
		mcp.WithString("strategy", mcp.Description("node, path (default), euler or all")),
		mcp.WithString("transitions", mcp.Description(`JSON array of {"source", "target", "label"} rows. Optional when the server was started with a machine.`)),
		mcp.WithString("begin", mcp.Description("Declared begin state of the transitions (optional)")),
		mcp.WithString("from", mcp.Description("First state for node and all; * expands every state for node")),
		mcp.WithString("to", mcp.Description("Last state for node and all, optional exit state for path")),
		mcp.WithString("entry", mcp.Description("State every path case starts from")),
		mcp.WithString("start", mcp.Description("Preferred first state of the euler trail")),
		mcp.WithBoolean("open", mcp.Description("Let the euler trail end away from its start")),
		mcp.WithNumber("max_depth", mcp.Description("Maximum transitions per case for all")),
		mcp.WithNumber("max_cases", mcp.Description("Maximum number of cases for all")),
		mcp.WithNumber("shuffle", mcp.Description("Seed for shuffling outgoing transitions; 0 keeps file order")),
		mcp.WithOutputSchema[GenerateResponse](),
	)
	s.mcpServer.AddTool(generateTool, mcp.NewStructuredToolHandler(s.handleGenerate))

	// TOOL: render_graph
	s.mcpServer.AddTool(mcp.NewTool("render_graph",
		mcp.WithDescription("Render a state machine as a Mermaid flowchart or as a state degree table."),
		mcp.WithString("transitions", mcp.Description(`JSON array of {"source", "target", "label"} rows. Optional when the server was started with a machine.`)),
		mcp.WithString("begin", mcp.Description("Declared begin state of the transitions (optional)")),
		mcp.WithString("format", mcp.Description("mermaid (default) or dump")),
	), s.handleRenderGraph)
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (GenerateResponse, error) {
	g, err := s.load(ctx, args)
	if err != nil {
		return GenerateResponse{}, err
	}

	st := domain.StrategyPath
	if name, _ := args["strategy"].(string); name != "" {
		if st, err = domain.ParseStrategy(name); err != nil {
			return GenerateResponse{}, err
		}
	}

	opts := casegen.Options{
		Begin: stringArg(args, "from"),
		End:   stringArg(args, "to"),
		Entry: stringArg(args, "entry"),
		Start: stringArg(args, "start"),
	}
	opts.Open, _ = args["open"].(bool)
	if v, ok := args["max_depth"].(float64); ok {
		opts.MaxDepth = int(v)
	}
	if v, ok := args["max_cases"].(float64); ok {
		opts.MaxCases = int(v)
	}
	if v, ok := args["shuffle"].(float64); ok {
		opts.Shuffle = int64(v)
	}

	run, err := s.engine.Generate(ctx, g, st, opts)
	if err != nil && run == nil {
		return GenerateResponse{}, fmt.Errorf("generation failed: %w", err)
	}
	if err != nil {
		slog.Error("MCP Generate: store failed", "error", err)
	}

	lines := make([]string, 0, len(run.Cases))
	for _, c := range run.Cases {
		lines = append(lines, c.String())
	}
	return GenerateResponse{Run: run, Lines: lines}, nil
}

func (s *Server) handleRenderGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	g, err := s.load(ctx, args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch format := stringArg(args, "format"); format {
	case "", "mermaid":
		return mcp.NewToolResultText(graph.GenerateMermaid(g, nil)), nil
	case "dump":
		var sb strings.Builder
		if err := graph.Dump(&sb, g); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("dump failed: %v", err)), nil
		}
		return mcp.NewToolResultText(sb.String()), nil
	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown format %q", format)), nil
	}
}

// load builds the graph from the transitions argument, or from the server's source.
func (s *Server) load(ctx context.Context, args map[string]interface{}) (*domain.Graph, error) {
	raw := stringArg(args, "transitions")
	if raw == "" {
		if s.source == nil {
			return nil, errors.New("transitions are required: the server has no machine loaded")
		}
		return s.engine.Load(ctx, s.source)
	}

	var rows []domain.Row
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, fmt.Errorf("invalid transitions: %w", err)
	}
	return s.engine.Load(ctx, &inlineSource{Source: memory.NewSource("", rows...), begin: stringArg(args, "begin")})
}

type inlineSource struct {
	*memory.Source
	begin string
}

func (i *inlineSource) Begin(ctx context.Context) (string, error) {
	return i.begin, nil
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func (s *Server) registerResources() {
	// EXPOSE: casegen://graph
	s.mcpServer.AddResource(mcp.NewResource("casegen://graph", "Loaded State Machine",
		mcp.WithMIMEType("text/vnd.mermaid"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		g, err := s.engine.Load(ctx, s.source)
		if err != nil {
			return nil, fmt.Errorf("failed to load machine: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "casegen://graph",
				MIMEType: "text/vnd.mermaid",
				Text:     graph.GenerateMermaid(g, nil),
			},
		}, nil
	})
}
