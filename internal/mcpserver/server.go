// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Ansuz quote tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/quoteservice"
)

// Server wraps the MCP server with Ansuz quote tools.
type Server struct {
	mcp *server.MCPServer
	svc *quoteservice.Service
}

// New creates a new MCP server with all quote tools registered.
func New(svc *quoteservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("rescan_quotes",
		mcp.WithDescription("Rescan all tagged listing notes and rebuild the quote vault."),
	), s.rescanQuotes)

	s.mcp.AddTool(mcp.NewTool("random_quote",
		mcp.WithDescription("Pick a random quote. The search expression is an author name, "+
			"'*' for any author, or 'a || b || c' for a random pick among several authors."),
		mcp.WithString("search", mcp.Required(), mcp.Description("Author search expression")),
	), s.randomQuote)

	s.mcp.AddTool(mcp.NewTool("list_authors",
		mcp.WithDescription("List every author in the quote vault with quote counts."),
	), s.listAuthors)

	s.mcp.AddTool(mcp.NewTool("get_author_quotes",
		mcp.WithDescription("Return every stored quote for one author."),
		mcp.WithString("author", mcp.Required(), mcp.Description("Author name (styling ignored)")),
	), s.getAuthorQuotes)

	s.mcp.AddTool(mcp.NewTool("search_quotes",
		mcp.WithDescription("Full-text search through quote texts."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchQuotes)

	s.mcp.AddTool(mcp.NewTool("make_quote_block",
		mcp.WithDescription("Generate a fenced quote block declaration, optionally appending "+
			"it to a note. The search expression must resolve against the current vault. "+
			"Listing notes feeding the vault follow the format described by the "+
			"ansuz://listing-format resource."),
		mcp.WithString("search", mcp.Required(), mcp.Description("Author search expression")),
		mcp.WithString("reload", mcp.Description("Refresh interval, e.g. 30s, 5m, 2h, 1d, 1w (default 1d)")),
		mcp.WithString("class", mcp.Description("Optional extra CSS class for the block")),
		mcp.WithString("target_path", mcp.Description("Optional note path to append the block to")),
	), s.makeQuoteBlock)

	// Resource: quote listing format contract.
	s.mcp.AddResource(
		mcp.NewResource("ansuz://listing-format", "Quote Listing Format",
			mcp.WithResourceDescription("Canonical Markdown listing format that quote notes must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readListingFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) rescanQuotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sum, err := s.svc.Rescan(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(sum, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) randomQuote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	search, err := req.RequireString("search")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.RenderBlock(ctx, "search: "+search)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s\n— %s", res.Text, res.Author)), nil
}

func (s *Server) listAuthors(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := s.svc.Authors(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("the quote vault is empty"), nil
	}
	var lines []string
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s (%d quotes)", e.Author, len(e.Quotes)))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) getAuthorQuotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	author, err := req.RequireString("author")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	e, err := s.svc.AuthorQuotes(ctx, author)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(strings.Join(e.Quotes, "\n")), nil
}

func (s *Server) searchQuotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hits, err := s.svc.SearchQuotes(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(hits, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) makeQuoteBlock(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	search, err := req.RequireString("search")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	mreq := quoteservice.MakerRequest{Search: search}
	if v, vErr := req.RequireString("reload"); vErr == nil {
		mreq.Reload = v
	}
	if v, vErr := req.RequireString("class"); vErr == nil {
		mreq.CustomClass = v
	}
	if v, vErr := req.RequireString("target_path"); vErr == nil {
		mreq.TargetPath = v
	}

	src, err := s.svc.MakeBlock(ctx, mreq)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(src), nil
}

func (s *Server) readListingFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://listing-format",
			MIMEType: "text/markdown",
			Text:     ListingFormatContract,
		},
	}, nil
}
