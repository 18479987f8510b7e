package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SzymonKubica/advent-of-code/runner/config"
	"github.com/SzymonKubica/advent-of-code/runner/runs"
	"github.com/SzymonKubica/advent-of-code/runner/service"
	"github.com/dustin/go-humanize"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Advent of Code Grid Solver",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Advent of Code Grid Solver - MCP Interface

This is a thin client that proxies all requests to the REST API server.

Each puzzle parses a character grid (or a module network) and returns a
single integer per part.

AVAILABLE TOOLS:
- list_puzzles: List registered puzzles with year, day and parameter defaults
- describe_puzzle: Show one puzzle and its parameters
- solve_puzzle: Solve one part, from a stored input file or inline text
- list_runs: List past runs, newest first
- get_run: Get one run by ID
- list_inputs: List stored input files

Parameters such as steps (garden), cycles (tilt) or presses (pulse) override
the puzzle defaults.`),
	)

	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_puzzles",
		Description: "List all registered puzzles",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPuzzles)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_puzzle",
		Description: "Describe a puzzle and its parameter defaults",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle name, e.g. beam or crucible",
				},
			},
			Required: []string{"puzzle"},
		},
	}, c.handleDescribePuzzle)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve_puzzle",
		Description: "Solve one part of a puzzle and record the run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle": map[string]interface{}{
					"type":        "string",
					"description": "Puzzle name",
				},
				"part": map[string]interface{}{
					"type":        "integer",
					"description": "Part number (1 or 2, default 1)",
				},
				"input": map[string]interface{}{
					"type":        "string",
					"description": "Stored input name (defaults to the puzzle name)",
				},
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Inline puzzle input; overrides input",
				},
				"params": map[string]interface{}{
					"type":        "object",
					"description": "Parameter overrides, e.g. {\"steps\": 64}",
				},
				"no_cache": map[string]interface{}{
					"type":        "boolean",
					"description": "Skip the answer cache",
				},
			},
			Required: []string{"puzzle"},
		},
	}, c.handleSolve)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_runs",
		Description: "List recorded runs, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"puzzle": map[string]interface{}{
					"type":        "string",
					"description": "Only runs of this puzzle (optional)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of runs to return (optional)",
				},
			},
		},
	}, c.handleListRuns)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_run",
		Description: "Get a recorded run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleGetRun)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_inputs",
		Description: "List stored input files",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListInputs)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListPuzzles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count   int                  `json:"count"`
		Puzzles []service.PuzzleInfo `json:"puzzles"`
	}

	if err := c.apiCall(ctx, "GET", "/api/puzzles", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Puzzles (%d):\n\n", response.Count)
	for _, p := range response.Puzzles {
		result += "- " + formatPuzzleLine(&p) + "\n"
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDescribePuzzle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("puzzle", "")
	if name == "" {
		return mcp.NewToolResultError("puzzle is required"), nil
	}

	var info service.PuzzleInfo
	if err := c.apiCall(ctx, "GET", "/api/puzzles/"+url.PathEscape(name), nil, &info); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatPuzzleInfo(&info)), nil
}

func (c *Client) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	req := service.SolveRequest{
		Puzzle:  request.GetString("puzzle", ""),
		Part:    request.GetInt("part", 1),
		Input:   request.GetString("input", ""),
		Text:    request.GetString("text", ""),
		NoCache: request.GetBool("no_cache", false),
	}
	if req.Puzzle == "" {
		return mcp.NewToolResultError("puzzle is required"), nil
	}
	if params, ok := args["params"].(map[string]interface{}); ok {
		req.Params = params
	}

	var run runs.Run
	if err := c.apiCall(ctx, "POST", "/api/solve", req, &run); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRun(&run)), nil
}

func (c *Client) handleListRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := url.Values{}
	if puzzle := request.GetString("puzzle", ""); puzzle != "" {
		query.Set("puzzle", puzzle)
	}
	if limit := request.GetInt("limit", 0); limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", limit))
	}
	path := "/api/runs"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var response struct {
		Count int        `json:"count"`
		Total int        `json:"total"`
		Runs  []runs.Run `json:"runs"`
	}
	if err := c.apiCall(ctx, "GET", path, nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Runs (%d of %d):\n\n", response.Count, response.Total)
	for _, r := range response.Runs {
		result += "- " + formatRunLine(&r) + "\n"
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("run_id", "")
	if id == "" {
		return mcp.NewToolResultError("run_id is required"), nil
	}

	var run runs.Run
	if err := c.apiCall(ctx, "GET", "/api/runs/"+url.PathEscape(id), nil, &run); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRun(&run)), nil
}

func (c *Client) handleListInputs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var inputs []config.Input
	if err := c.apiCall(ctx, "GET", "/api/inputs", nil, &inputs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Inputs (%d):\n\n", len(inputs))
	for _, in := range inputs {
		result += fmt.Sprintf("- %s: %dx%d, %s\n", in.Name, in.Cols, in.Rows, humanize.Bytes(uint64(in.Bytes)))
	}

	return mcp.NewToolResultText(result), nil
}

// Formatting helpers

func formatPuzzleLine(p *service.PuzzleInfo) string {
	line := fmt.Sprintf("%s (%d day %d, %d parts)", p.Name, p.Year, p.Day, p.Parts)
	if p.Title != "" {
		line = fmt.Sprintf("%s: %s", line, p.Title)
	}
	return line
}

func formatPuzzleInfo(p *service.PuzzleInfo) string {
	var b strings.Builder
	b.WriteString(formatPuzzleLine(p))
	b.WriteString("\n")
	if len(p.Defaults) == 0 {
		b.WriteString("No parameters\n")
		return b.String()
	}
	b.WriteString("\nParameters (defaults):\n")
	b.WriteString("  " + strings.ReplaceAll(p.Defaults.Key(), ",", "\n  ") + "\n")
	return b.String()
}

func formatRunLine(r *runs.Run) string {
	if r.Failed() {
		return fmt.Sprintf("%s %s part %d: error: %s", r.ID, r.Puzzle, r.Part, r.Error)
	}
	return fmt.Sprintf("%s %s part %d = %d (%s)", r.ID, r.Puzzle, r.Part, r.Answer, humanize.Time(r.FinishedAt))
}

func formatRun(r *runs.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run: %s\n", r.ID)
	fmt.Fprintf(&b, "Puzzle: %s part %d\n", r.Puzzle, r.Part)
	fmt.Fprintf(&b, "Input: %s\n", r.Input)
	if len(r.Params) > 0 {
		fmt.Fprintf(&b, "Params: %s\n", r.Params.Key())
	}
	if r.Failed() {
		fmt.Fprintf(&b, "Error: %s\n", r.Error)
	} else {
		fmt.Fprintf(&b, "Answer: %d\n", r.Answer)
	}
	fmt.Fprintf(&b, "Duration: %s", r.Duration)
	if r.Cached {
		b.WriteString(" (cached)")
	}
	b.WriteString("\n")
	return b.String()
}
