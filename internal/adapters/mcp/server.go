// Package mcp exposes the machine registry over the Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	automata "github.com/GNINE11/ProjAutomata-TC"
	"github.com/GNINE11/ProjAutomata-TC/internal/presentation/graph"
	"github.com/GNINE11/ProjAutomata-TC/pkg/machine"
	"github.com/GNINE11/ProjAutomata-TC/pkg/registry"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RunReport aligns with the HTTP run response and provides a unified structure across adapters.
type RunReport struct {
	Accepted   bool   `json:"accepted" jsonschema_description:"Whether the machine accepted the input"`
	Verdict    string `json:"verdict" jsonschema_description:"Either accepted or rejected"`
	Diagnostic string `json:"diagnostic,omitempty" jsonschema_description:"Why a rejected run was cut short, when it was"`
	State      string `json:"state" jsonschema_description:"The state the machine halted in"`
	Steps      int    `json:"steps" jsonschema_description:"Number of transitions taken"`
}

// RegisterReport carries the identifier a newly stored machine is addressed by.
type RegisterReport struct {
	ID   string `json:"id" jsonschema_description:"Identifier of the stored machine"`
	Kind string `json:"kind" jsonschema_description:"Machine kind: dfa, dpda or dtm"`
}

// Server wraps the machine registry and exposes it as an MCP Server.
type Server struct {
	registry  *registry.Registry
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(reg *registry.Registry) *Server {
	s := &Server{
		registry:  reg,
		mcpServer: server.NewMCPServer("automata-mcp", strings.TrimSpace(automata.Version)),
	}
	s.registerTools()
	s.registerResources()
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

	// Start the SSE server
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		// Create a timeout context for the graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
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
	// TOOL: validate_machine
	s.mcpServer.AddTool(mcp.NewTool("validate_machine",
		mcp.WithDescription("Validate a machine definition without storing it. Reports the first violated rule."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Machine kind: dfa, dpda or dtm")),
		mcp.WithString("definition", mcp.Required(), mcp.Description("JSON object with the machine definition")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		kindArg := request.GetString("kind", "")
		defArg := request.GetString("definition", "")

		kind, err := machine.ParseKind(kindArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if _, err := automata.FromJSON(kind, []byte(defArg)); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid %s definition: %v", kind, err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("the %s definition is valid", kind)), nil
	})

	// TOOL: register_machine
	registerTool := mcp.NewTool("register_machine",
		mcp.WithDescription("Validate a machine definition and store it under a fresh identifier."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Machine kind: dfa, dpda or dtm")),
		mcp.WithString("definition", mcp.Required(), mcp.Description("JSON object with the machine definition")),
		mcp.WithOutputSchema[RegisterReport](),
	)
	s.mcpServer.AddTool(registerTool, mcp.NewStructuredToolHandler(s.handleRegister))

	// TOOL: run_machine
	runTool := mcp.NewTool("run_machine",
		mcp.WithDescription("Run a stored machine against an input string and report the verdict."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Identifier of the stored machine")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Input string to test")),
		mcp.WithNumber("step_limit", mcp.Description("Optional cap on transitions before the run is cut off")),
		mcp.WithOutputSchema[RunReport](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRun))

	// TOOL: render_diagram
	s.mcpServer.AddTool(mcp.NewTool("render_diagram",
		mcp.WithDescription("Render a stored machine as a transition diagram."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Identifier of the stored machine")),
		mcp.WithString("format", mcp.Description("Diagram format: dot (default) or mermaid")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := request.GetString("id", "")

		m, err := s.registry.Get(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("lookup failed: %v", err)), nil
		}

		switch format := request.GetString("format", "dot"); format {
		case "dot":
			return mcp.NewToolResultText(graph.GenerateDOT(m)), nil
		case "mermaid":
			return mcp.NewToolResultText(graph.GenerateMermaid(m)), nil
		default:
			return mcp.NewToolResultError(fmt.Sprintf("unknown diagram format: %s", format)), nil
		}
	})

	// TOOL: list_machines
	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List every stored machine with its identifier and kind."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		infos, err := s.registry.Describe(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(infos)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleRegister(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RegisterReport, error) {
	kindArg, _ := args["kind"].(string)
	defArg, _ := args["definition"].(string)

	kind, err := machine.ParseKind(kindArg)
	if err != nil {
		return RegisterReport{}, err
	}

	id, err := s.registry.Create(ctx, kind, []byte(defArg))
	if err != nil {
		return RegisterReport{}, fmt.Errorf("register failed: %w", err)
	}

	slog.Info("MCP Register: machine stored", "kind", kind, "id", id)
	return RegisterReport{ID: id, Kind: string(kind)}, nil
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RunReport, error) {
	id, _ := args["id"].(string)
	input, _ := args["input"].(string)

	var opts []machine.RunOption
	if limit, ok := args["step_limit"].(float64); ok && limit > 0 {
		opts = append(opts, machine.WithStepLimit(int(limit)))
	}

	res, err := s.registry.Run(ctx, id, input, opts...)
	if err != nil {
		return RunReport{}, fmt.Errorf("run failed: %w", err)
	}

	return RunReport{
		Accepted:   res.Accepted(),
		Verdict:    string(res.Verdict),
		Diagnostic: string(res.Diagnostic),
		State:      string(res.State),
		Steps:      res.Steps,
	}, nil
}

func (s *Server) registerResources() {
	// EXPOSE: automata://machines
	s.mcpServer.AddResource(mcp.NewResource("automata://machines", "Stored Machines",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		infos, err := s.registry.Describe(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list machines: %w", err)
		}
		jsonBytes, _ := json.Marshal(infos)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "automata://machines",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
