// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Dagaz tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/dagaz/internal/activity"
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/models"
)

// Server wraps the MCP server with Dagaz tools.
type Server struct {
	mcp   *server.MCPServer
	store *activity.Store
	db    *index.DB
}

// New creates a new MCP server with all Dagaz tools registered.
func New(store *activity.Store, db *index.DB) *Server {
	s := &Server{store: store, db: db}

	s.mcp = server.NewMCPServer(
		"Dagaz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("track_blog_post",
		mcp.WithDescription("Record a blog-post activity dated today on the contribution calendar."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Post title")),
		mcp.WithBoolean("is_update", mcp.Description("True when editing an existing post (lower intensity than a new one)")),
	), s.trackBlogPost)

	s.mcp.AddTool(mcp.NewTool("track_project",
		mcp.WithDescription("Record a project activity dated today on the contribution calendar."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Project title")),
		mcp.WithBoolean("is_update", mcp.Description("True when editing an existing project")),
	), s.trackProject)

	s.mcp.AddTool(mcp.NewTool("track_media",
		mcp.WithDescription("Record a media-upload activity dated today at fixed low intensity."),
		mcp.WithString("filename", mcp.Required(), mcp.Description("Name of the uploaded file")),
	), s.trackMedia)

	s.mcp.AddTool(mcp.NewTool("get_stats",
		mcp.WithDescription("Aggregate activity statistics: total, this year, this month, streak, counts by type, monthly average."),
	), s.getStats)

	s.mcp.AddTool(mcp.NewTool("search_activities",
		mcp.WithDescription("Full-text search across activity titles and descriptions."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchActivities)

	s.mcp.AddTool(mcp.NewTool("get_calendar",
		mcp.WithDescription("Contribution-calendar day cells. Omit year (or pass the current one) for the rolling 365-day window ending today."),
		mcp.WithNumber("year", mcp.Description("Optional past calendar year")),
	), s.getCalendar)

	s.mcp.AddTool(mcp.NewTool("get_activity_contract",
		mcp.WithDescription("Returns the canonical Dagaz activity record contract. "+
			"Call this before recording activities to understand types and intensities."),
	), s.getActivityContract)

	// Resource: activity record contract.
	s.mcp.AddResource(
		mcp.NewResource("dagaz://activity-format", "Activity Record Contract",
			mcp.WithResourceDescription("Canonical activity record format, types, and intensity policy."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readActivityFormatResource,
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

func trackResult(act models.Activity, merged bool, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	verb := "recorded"
	if merged {
		verb = "merged into existing record"
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s: %s %s (intensity %d) on %s",
		verb, act.Type, act.Title, act.Intensity, act.Date)), nil
}

func (s *Server) trackBlogPost(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	isUpdate := req.GetBool("is_update", false)
	act, merged, err := s.store.TrackBlogPost(title, isUpdate)
	if err == nil {
		_ = s.db.Upsert(act)
	}
	return trackResult(act, merged, err)
}

func (s *Server) trackProject(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	isUpdate := req.GetBool("is_update", false)
	act, merged, err := s.store.TrackProject(title, isUpdate)
	if err == nil {
		_ = s.db.Upsert(act)
	}
	return trackResult(act, merged, err)
}

func (s *Server) trackMedia(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filename, err := req.RequireString("filename")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	act, merged, err := s.store.TrackMedia(filename)
	if err == nil {
		_ = s.db.Upsert(act)
	}
	return trackResult(act, merged, err)
}

func (s *Server) getStats(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.store.Stats(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchActivities(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("no matches"), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getCalendar(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year := req.GetInt("year", 0)
	cells := s.store.YearData(year)

	// A full cell dump is noisy for an LLM; summarise active days only.
	var lines []string
	for _, c := range cells {
		if c.Intensity == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s intensity=%d activities=%d", c.Date, c.Intensity, len(c.Activities)))
	}
	if len(lines) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("no activity in range (%d day cells)", len(cells))), nil
	}
	header := fmt.Sprintf("%d day cells, %d active days:", len(cells), len(lines))
	return mcp.NewToolResultText(header + "\n" + strings.Join(lines, "\n")), nil
}

func (s *Server) getActivityContract(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(ActivityFormatContract), nil
}

func (s *Server) readActivityFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "dagaz://activity-format",
			MIMEType: "text/markdown",
			Text:     ActivityFormatContract,
		},
	}, nil
}
