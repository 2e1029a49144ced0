package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/bindrune/internal/fetch"
	"github.com/starford/bindrune/internal/linkservice"
	"github.com/starford/bindrune/internal/testutil"
)

type stubExtractor struct{}

func (stubExtractor) Extract(_ context.Context, url string) (*fetch.Page, error) {
	return &fetch.Page{
		Title:       "Stub Title",
		Excerpt:     "Stub excerpt.",
		TextContent: "stub page body about runes",
	}, nil
}

func testServer(t *testing.T) (*Server, *linkservice.Service) {
	t.Helper()
	svc := linkservice.New(testutil.TestStore(t), stubExtractor{})
	return New(svc), svc
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	var result *mcp.CallToolResult
	var err error

	switch name {
	case "add_link":
		result, err = srv.addLink(ctx, req)
	case "search_links":
		result, err = srv.searchLinks(ctx, req)
	case "list_links":
		result, err = srv.listLinks(ctx, req)
	case "get_link":
		result, err = srv.getLink(ctx, req)
	case "get_related":
		result, err = srv.getRelated(ctx, req)
	case "read_note":
		result, err = srv.readNote(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestAddLink(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "add_link", map[string]interface{}{
		"url":  "https://example.com/runes",
		"tags": "history, writing",
	})
	if text := resultText(r); text != "added: https://example.com/runes" {
		t.Errorf("add result = %q", text)
	}

	r = callTool(t, srv, "get_link", map[string]interface{}{"item": "https://example.com/runes"})
	text := resultText(r)
	if !strings.Contains(text, "history") || !strings.Contains(text, "writing") {
		t.Errorf("get result = %q", text)
	}

	r = callTool(t, srv, "add_link", map[string]interface{}{"url": "https://example.com/runes"})
	if !r.IsError {
		t.Error("expected error for duplicate add")
	}
}

func TestListLinksEmpty(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "list_links", map[string]interface{}{})
	if text := resultText(r); text != "no links" {
		t.Errorf("list result = %q", text)
	}
}

func TestSearchAndGetLink(t *testing.T) {
	srv, svc := testServer(t)
	if err := svc.Add(context.Background(), linkservice.AddInput{
		URL:  "https://example.com/runes",
		Tags: []string{"history"},
		Note: "old alphabets",
	}); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "search_links", map[string]interface{}{"query": "runes"})
	if text := resultText(r); !strings.Contains(text, "https://example.com/runes") {
		t.Errorf("search result = %q", text)
	}

	r = callTool(t, srv, "get_link", map[string]interface{}{"item": "https://example.com/runes"})
	text := resultText(r)
	if !strings.Contains(text, "Stub Title") || !strings.Contains(text, "history") ||
		!strings.Contains(text, "old alphabets") {
		t.Errorf("get result = %q", text)
	}
}

func TestGetLinkMissing(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "get_link", map[string]interface{}{"item": "https://nope.example"})
	if !r.IsError {
		t.Error("expected error for missing link")
	}
}

func TestListLinksTagFilter(t *testing.T) {
	srv, svc := testServer(t)
	ctx := context.Background()
	if err := svc.Add(ctx, linkservice.AddInput{
		URL: "https://tagged.example", Tags: []string{"keep"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Add(ctx, linkservice.AddInput{URL: "https://plain.example"}); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "list_links", map[string]interface{}{"tags": "keep"})
	text := resultText(r)
	if !strings.Contains(text, "https://tagged.example") {
		t.Errorf("filtered list missing tagged link: %q", text)
	}
	if strings.Contains(text, "https://plain.example") {
		t.Errorf("filtered list leaked untagged link: %q", text)
	}
}

func TestGetRelated(t *testing.T) {
	srv, svc := testServer(t)
	if err := svc.Add(context.Background(), linkservice.AddInput{
		URL:        "https://article.example",
		RelatedURL: "https://thread.example",
		Relation:   "discussed at",
	}); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "get_related", map[string]interface{}{"item": "https://article.example"})
	if text := resultText(r); text != "https://thread.example (discussed at)" {
		t.Errorf("related = %q", text)
	}

	r = callTool(t, srv, "get_related", map[string]interface{}{"item": "https://nope.example"})
	if !r.IsError {
		t.Error("expected error for missing link")
	}
}

func TestReadNote(t *testing.T) {
	srv, svc := testServer(t)
	if err := svc.SaveNote(context.Background(), "journal", "day one", nil); err != nil {
		t.Fatal(err)
	}

	r := callTool(t, srv, "read_note", map[string]interface{}{"title": "journal"})
	if text := resultText(r); text != "day one" {
		t.Errorf("note = %q", text)
	}

	r = callTool(t, srv, "read_note", map[string]interface{}{"title": "missing"})
	if !r.IsError {
		t.Error("expected error for missing note")
	}
}
