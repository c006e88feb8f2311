package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/mermaid-studio/internal/assets"
	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
	"github.com/ziadkadry99/mermaid-studio/internal/editor"
	"github.com/ziadkadry99/mermaid-studio/internal/i18n"
)

func (s *Server) locale(request mcp.CallToolRequest) *i18n.Locale {
	return i18n.New(request.GetString("locale", s.deps.Locale))
}

// kindAndModel reads the kind and model arguments. An empty model yields
// the starting model for the kind.
func (s *Server) kindAndModel(request mcp.CallToolRequest, loc *i18n.Locale) (diagrams.Kind, diagrams.Model, error) {
	kindStr, err := request.RequireString("kind")
	if err != nil {
		return "", nil, fmt.Errorf("missing required parameter: kind")
	}
	kind, err := diagrams.ParseKind(kindStr)
	if err != nil {
		return "", nil, err
	}
	body := request.GetString("model", "")
	if strings.TrimSpace(body) == "" {
		m, err := s.deps.Defaults(kind, loc, s.deps.Now())
		return kind, m, err
	}
	m, err := diagrams.DecodeModel(kind, []byte(body))
	return kind, m, err
}

// handleListKinds lists the diagram kinds with localized names.
func (s *Server) handleListKinds(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	loc := s.locale(request)
	var sb strings.Builder
	for _, k := range diagrams.Kinds() {
		fmt.Fprintf(&sb, "%s: %s\n", k, loc.T("kind."+string(k)))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleDefaultModel returns the starting model for a kind as YAML.
func (s *Server) handleDefaultModel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kindStr, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: kind"), nil
	}
	kind, err := diagrams.ParseKind(kindStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	m, err := s.deps.Defaults(kind, s.locale(request), s.deps.Now())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("building defaults: %v", err)), nil
	}
	out, err := diagrams.EncodeDocument(diagrams.Document{Kind: kind, Model: m})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// handleGenerateDiagram renders a model to Mermaid code.
func (s *Server) handleGenerateDiagram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := request.RequireString("model"); err != nil {
		return mcp.NewToolResultError("missing required parameter: model"), nil
	}
	loc := s.locale(request)
	kind, m, err := s.kindAndModel(request, loc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	code := diagrams.GenerateWith(kind, m, loc.Fallbacks())
	if request.GetBool("fence", false) {
		code = diagrams.Fence(code)
	}
	return mcp.NewToolResultText(code), nil
}

// handleEditDiagram runs editor patches over a model.
func (s *Server) handleEditDiagram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("patches")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: patches"), nil
	}
	var patches []editor.Patch
	if err := json.Unmarshal([]byte(raw), &patches); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid patches: %v", err)), nil
	}

	loc := s.locale(request)
	kind, m, err := s.kindAndModel(request, loc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ed, err := editor.New(kind, m, loc, s.deps.Now)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	defer ed.Cleanup()
	for i, p := range patches {
		if err := ed.UpdateData(p); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("patch %d (%s): %v", i, p.Op, err)), nil
		}
	}

	doc, err := diagrams.EncodeDocument(diagrams.Document{Kind: kind, Model: ed.Model()})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	code := diagrams.GenerateWith(kind, ed.Model(), loc.Fallbacks())

	var sb strings.Builder
	sb.WriteString("Model:\n")
	sb.Write(doc)
	sb.WriteString("\nCode:\n")
	sb.WriteString(diagrams.Fence(code))
	return mcp.NewToolResultText(sb.String()), nil
}

// handleInsertDiagram writes a generated fence into a vault note.
func (s *Server) handleInsertDiagram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}
	if _, err := request.RequireString("model"); err != nil {
		return mcp.NewToolResultError("missing required parameter: model"), nil
	}
	loc := s.locale(request)
	kind, m, err := s.kindAndModel(request, loc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cur, err := s.deps.Vault.Cursor(path, request.GetInt("line", 0), request.GetInt("end_line", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	fence := diagrams.Fence(diagrams.GenerateWith(kind, m, loc.Fallbacks()))
	if err := cur.Insert(ctx, fence); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("insert failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Inserted %s diagram into %s.", kind, path)), nil
}

// handleScanAssets rebuilds the asset index.
func (s *Server) handleScanAssets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scan, err := s.deps.Assets.Scan(ctx, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Scanned %d notes and %d assets.", scan.Documents, scan.Assets)), nil
}

// handleUnusedAssets lists assets with no references.
func (s *Server) handleUnusedAssets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := s.deps.Assets.Store()
	last, err := store.LastScan(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if last == nil {
		return mcp.NewToolResultText("The vault has not been scanned yet. Run scan_assets first."), nil
	}
	list, err := store.List(ctx, assets.ListFilter{Unused: true, Prefix: request.GetString("prefix", "")})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(list) == 0 {
		return mcp.NewToolResultText("No unused assets."), nil
	}
	return mcp.NewToolResultText(formatAssets(list)), nil
}

// handleAssetReferences lists the notes linking to an asset.
func (s *Server) handleAssetReferences(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}
	store := s.deps.Assets.Store()
	if _, err := store.Get(ctx, path); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", path, err)), nil
	}
	refs, err := store.References(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(refs) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No notes link to %s.", path)), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d reference(s) to %s:\n", len(refs), path)
	for _, r := range refs {
		kind := "link"
		if r.Embed {
			kind = "embed"
		}
		fmt.Fprintf(&sb, "%s:%d (%s)\n", r.Source, r.Line, kind)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatAssets renders an asset list for agent consumption.
func formatAssets(list []assets.Asset) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d asset(s):\n", len(list))
	for _, a := range list {
		fmt.Fprintf(&sb, "%s (%d bytes)", a.Path, a.Size)
		if a.Cover != "" {
			fmt.Fprintf(&sb, " cover %s", a.Cover)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
