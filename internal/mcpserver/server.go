// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Bindrune tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/bindrune/internal/apperr"
	"github.com/starford/bindrune/internal/linkservice"
	"github.com/starford/bindrune/internal/store"
)

// Server wraps the MCP server with Bindrune tools.
type Server struct {
	mcp *server.MCPServer
	svc *linkservice.Service
}

// New creates a new MCP server with all Bindrune tools registered.
func New(svc *linkservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Bindrune",
		"0.1.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_links",
		mcp.WithDescription("Full-text search through archived page content."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchLinks)

	s.mcp.AddTool(mcp.NewTool("list_links",
		mcp.WithDescription("List archived links, newest first, optionally filtered by tags."),
		mcp.WithString("tags", mcp.Description("Optional comma-separated tag names to filter by")),
	), s.listLinks)

	s.mcp.AddTool(mcp.NewTool("get_link",
		mcp.WithDescription("Show a single link with its tags, note, and related links. "+
			"Accepts a URL, a title, or a link id."),
		mcp.WithString("item", mcp.Required(), mcp.Description("URL, title, or id of the link")),
	), s.getLink)

	s.mcp.AddTool(mcp.NewTool("add_link",
		mcp.WithDescription("Archive a URL: fetches and distills the page, then records the link "+
			"with optional tags and a note. Fails if the URL is already bookmarked."),
		mcp.WithString("url", mcp.Required(), mcp.Description("URL to archive")),
		mcp.WithString("title", mcp.Description("Title override (defaults to the page title)")),
		mcp.WithString("tags", mcp.Description("Optional comma-separated tag names")),
		mcp.WithString("note", mcp.Description("Optional note to attach")),
	), s.addLink)

	s.mcp.AddTool(mcp.NewTool("get_related",
		mcp.WithDescription("List the links recorded as related to a link, with their relationship labels."),
		mcp.WithString("item", mcp.Required(), mcp.Description("URL, title, or id of the link")),
	), s.getRelated)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read the full content of a note by title."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title of the note")),
	), s.readNote)

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

type linkResult struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func toLinkResults(links []store.Link) []linkResult {
	out := make([]linkResult, len(links))
	for i, l := range links {
		out[i] = linkResult{
			ID:          l.ID.String(),
			URL:         l.URL,
			Title:       l.Title,
			Description: l.Description,
			CreatedAt:   l.CreatedAt.Format("2006-01-02"),
		}
	}
	return out
}

func (s *Server) searchLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	links, err := s.svc.Search(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(links) == 0 {
		return mcp.NewToolResultText("no matches"), nil
	}
	out, _ := json.MarshalIndent(toLinkResults(links), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var tags []string
	if raw, err := req.RequireString("tags"); err == nil && raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	links, err := s.svc.List(ctx, tags)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(links) == 0 {
		return mcp.NewToolResultText("no links"), nil
	}
	out, _ := json.MarshalIndent(toLinkResults(links), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	item, err := req.RequireString("item")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sel := store.ByTerm(item)
	if id, parseErr := uuid.Parse(item); parseErr == nil {
		sel = store.ByID(id)
	}

	d, err := s.svc.Show(ctx, sel)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", item)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}

	type detail struct {
		linkResult
		Tags    []string `json:"tags,omitempty"`
		Note    string   `json:"note,omitempty"`
		Related []string `json:"related,omitempty"`
	}
	out := detail{linkResult: toLinkResults([]store.Link{d.Link})[0]}
	for _, t := range d.Tags {
		out.Tags = append(out.Tags, t.Name)
	}
	if d.Note != nil {
		out.Note = d.Note.Content
	}
	for _, rl := range d.Related {
		out.Related = append(out.Related, rl.URL)
	}
	data, _ := json.MarshalIndent(out, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) addLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in := linkservice.AddInput{URL: url}
	if title, err := req.RequireString("title"); err == nil {
		in.Title = title
	}
	if note, err := req.RequireString("note"); err == nil {
		in.Note = note
	}
	if raw, err := req.RequireString("tags"); err == nil && raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				in.Tags = append(in.Tags, t)
			}
		}
	}

	if err := s.svc.Add(ctx, in); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("added: %s", url)), nil
}

func (s *Server) getRelated(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	item, err := req.RequireString("item")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sel := store.ByTerm(item)
	if id, parseErr := uuid.Parse(item); parseErr == nil {
		sel = store.ByID(id)
	}

	d, err := s.svc.Show(ctx, sel)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", item)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(d.Related) == 0 {
		return mcp.NewToolResultText("no related links"), nil
	}

	lines := make([]string, len(d.Related))
	for i, rl := range d.Related {
		if rl.Relationship != "" {
			lines[i] = fmt.Sprintf("%s (%s)", rl.URL, rl.Relationship)
		} else {
			lines[i] = rl.URL
		}
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := s.svc.NoteContent(ctx, title)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if content == "" {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", title)), nil
	}
	return mcp.NewToolResultText(content), nil
}
