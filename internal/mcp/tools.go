package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/mermaid-studio/internal/diagrams"
)

func kindEnum() []string {
	kinds := diagrams.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

// listKindsTool defines the list_diagram_kinds MCP tool.
var listKindsTool = mcp.NewTool("list_diagram_kinds",
	mcp.WithDescription("List the Mermaid diagram kinds that can be generated, with their display names."),
	mcp.WithString("locale",
		mcp.Description("Language for display names (default from config)"),
	),
)

// defaultModelTool defines the default_model MCP tool.
var defaultModelTool = mcp.NewTool("default_model",
	mcp.WithDescription("Get the starting model for a diagram kind as a YAML document. Edit it and pass it to generate_diagram."),
	mcp.WithString("kind",
		mcp.Required(),
		mcp.Description("Diagram kind"),
		mcp.Enum(kindEnum()...),
	),
	mcp.WithString("locale",
		mcp.Description("Language for default labels"),
	),
)

// generateDiagramTool defines the generate_diagram MCP tool.
var generateDiagramTool = mcp.NewTool("generate_diagram",
	mcp.WithDescription("Generate Mermaid code from a structured diagram model."),
	mcp.WithString("kind",
		mcp.Required(),
		mcp.Description("Diagram kind"),
		mcp.Enum(kindEnum()...),
	),
	mcp.WithString("model",
		mcp.Required(),
		mcp.Description("Diagram model as YAML or JSON"),
	),
	mcp.WithBoolean("fence",
		mcp.Description("Wrap the code in a ```mermaid fence"),
	),
)

// editDiagramTool defines the edit_diagram MCP tool.
var editDiagramTool = mcp.NewTool("edit_diagram",
	mcp.WithDescription("Apply editor operations to a diagram model and return the new model and code."),
	mcp.WithString("kind",
		mcp.Required(),
		mcp.Description("Diagram kind"),
		mcp.Enum(kindEnum()...),
	),
	mcp.WithString("model",
		mcp.Description("Diagram model as YAML or JSON (default: the starting model)"),
	),
	mcp.WithString("patches",
		mcp.Required(),
		mcp.Description(`JSON array of operations, e.g. [{"op":"add_item"},{"op":"set_title","value":"Pets"}]`),
	),
)

// insertDiagramTool defines the insert_diagram MCP tool.
var insertDiagramTool = mcp.NewTool("insert_diagram",
	mcp.WithDescription("Generate a diagram and insert it as a mermaid fence into a vault note."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Note path relative to the vault root"),
	),
	mcp.WithString("kind",
		mcp.Required(),
		mcp.Description("Diagram kind"),
		mcp.Enum(kindEnum()...),
	),
	mcp.WithString("model",
		mcp.Required(),
		mcp.Description("Diagram model as YAML or JSON"),
	),
	mcp.WithNumber("line",
		mcp.Description("1-based line to insert before (default: append)"),
	),
	mcp.WithNumber("end_line",
		mcp.Description("Replace lines line..end_line instead of inserting"),
	),
)

// scanAssetsTool defines the scan_assets MCP tool.
var scanAssetsTool = mcp.NewTool("scan_assets",
	mcp.WithDescription("Rescan the vault and rebuild the asset reference index."),
)

// unusedAssetsTool defines the unused_assets MCP tool.
var unusedAssetsTool = mcp.NewTool("unused_assets",
	mcp.WithDescription("List vault files that no note links to, as of the last scan."),
	mcp.WithString("prefix",
		mcp.Description("Only list assets under this folder"),
	),
)

// assetReferencesTool defines the asset_references MCP tool.
var assetReferencesTool = mcp.NewTool("asset_references",
	mcp.WithDescription("List the notes and lines that link to a vault file."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Asset path relative to the vault root"),
	),
)
