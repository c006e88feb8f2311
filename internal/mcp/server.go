package mcp

import (
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/mermaid-studio/internal/assets"
	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/editor"
	"github.com/ziadkadry99/mermaid-studio/internal/i18n"
	"github.com/ziadkadry99/mermaid-studio/internal/vault"
)

// Version is set via ldflags at build time.
var Version = "dev"

// DefaultsFunc builds the starting model for a kind.
type DefaultsFunc func(kind diagrams.Kind, loc *i18n.Locale, now time.Time) (diagrams.Model, error)

// Deps are the optional collaborators behind the tools. Without a vault
// insert_diagram is not offered; without a checker the asset tools are not.
type Deps struct {
	Vault    *vault.Vault
	Assets   *assets.Checker
	Locale   string
	Defaults DefaultsFunc
	Now      func() time.Time
}

// Server wraps an MCP server that exposes diagram tools.
type Server struct {
	deps Deps
	mcp  *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(deps Deps) *Server {
	if deps.Locale == "" {
		deps.Locale = i18n.DefaultLang
	}
	if deps.Defaults == nil {
		deps.Defaults = editor.Defaults
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := &Server{deps: deps}

	s.mcp = server.NewMCPServer(
		"mermaid-studio",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listKindsTool, s.handleListKinds)
	s.mcp.AddTool(defaultModelTool, s.handleDefaultModel)
	s.mcp.AddTool(generateDiagramTool, s.handleGenerateDiagram)
	s.mcp.AddTool(editDiagramTool, s.handleEditDiagram)
	if s.deps.Vault != nil {
		s.mcp.AddTool(insertDiagramTool, s.handleInsertDiagram)
	}
	if s.deps.Assets != nil {
		s.mcp.AddTool(scanAssetsTool, s.handleScanAssets)
		s.mcp.AddTool(unusedAssetsTool, s.handleUnusedAssets)
		s.mcp.AddTool(assetReferencesTool, s.handleAssetReferences)
	}
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
