package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papapumpkin/graha/internal/explore"
	"github.com/papapumpkin/graha/internal/graha"
	"github.com/papapumpkin/graha/internal/swara"
)

// grahaBhedamInput is the input schema for the graha_bhedam tool.
type grahaBhedamInput struct {
	Pattern     string `json:"pattern" jsonschema:"Space-separated swara labels, e.g. S R2 G3 P D2"`
	AllFamilies *bool  `json:"all_families,omitempty" jsonschema:"Keep only scales covering each of the seven swaras once (default: true for seven-note input)"`
	Parent      string `json:"parent,omitempty" jsonschema:"Catalog raga whose melakarta biases ambiguous labels"`
}

// resultEntry is a single named rotation.
type resultEntry struct {
	From       string `json:"from"`
	Label      string `json:"label"`
	Name       string `json:"name,omitempty"`
	Match      string `json:"match"`
	Ascending  string `json:"arohanam"`
	Descending string `json:"avarohanam"`
}

// grahaBhedamOutput is the output schema for the graha_bhedam tool.
type grahaBhedamOutput struct {
	Results []resultEntry `json:"results"`
}

// exploreRagaInput is the input schema for the explore_raga tool.
type exploreRagaInput struct {
	Name string `json:"name" jsonschema:"Raga name; loose spellings are corrected"`
}

// exploreRagaOutput is the output schema for the explore_raga tool.
type exploreRagaOutput struct {
	Name       string        `json:"name"`
	Corrected  bool          `json:"corrected"`
	Kind       string        `json:"kind"`
	Parent     string        `json:"parent,omitempty"`
	Ascending  string        `json:"arohanam"`
	Descending string        `json:"avarohanam"`
	Results    []resultEntry `json:"results"`
}

func toEntries(rs []explore.Result) []resultEntry {
	out := make([]resultEntry, len(rs))
	for i, r := range rs {
		out[i] = resultEntry{
			From:       r.From.String(),
			Label:      r.Label(),
			Name:       r.Name,
			Match:      r.Match.String(),
			Ascending:  r.Ascending,
			Descending: r.Descending,
		}
	}
	return out
}

// registerRotationTools registers the graha_bhedam and explore_raga tools.
func (s *Server) registerRotationTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "graha_bhedam",
		Description: "Shift the tonic of a swara pattern to each of its notes and name the resulting scales",
	}, s.grahaBhedam)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "explore_raga",
		Description: "Find the graha bhedam scales of a catalog raga",
	}, s.exploreRaga)
}

func (s *Server) grahaBhedam(_ context.Context, _ *mcp.CallToolRequest, input grahaBhedamInput) (*mcp.CallToolResult, grahaBhedamOutput, error) {
	if input.Pattern == "" {
		return nil, grahaBhedamOutput{}, fmt.Errorf("pattern is required")
	}

	opts := graha.Options{}
	if input.Parent != "" {
		opts.Parent = s.explorer.ParentLabels(input.Parent)
	}
	if input.AllFamilies != nil {
		opts.RequireAllFamilies = *input.AllFamilies
	} else {
		opts.RequireAllFamilies = patternIsHeptatonic(input.Pattern)
	}

	results, err := s.explorer.FromPattern(input.Pattern, opts)
	if err != nil {
		return nil, grahaBhedamOutput{}, err
	}
	return textResult(explore.Text(results)), grahaBhedamOutput{Results: toEntries(results)}, nil
}

func (s *Server) exploreRaga(_ context.Context, _ *mcp.CallToolRequest, input exploreRagaInput) (*mcp.CallToolResult, exploreRagaOutput, error) {
	if input.Name == "" {
		return nil, exploreRagaOutput{}, fmt.Errorf("name is required")
	}
	rep, err := s.explorer.GrahaBhedam(input.Name)
	if err != nil {
		return nil, exploreRagaOutput{}, s.withSuggestions(input.Name, err)
	}
	out := exploreRagaOutput{
		Name:       rep.Resolution.Name,
		Corrected:  rep.Resolution.Corrected,
		Kind:       string(rep.Kind),
		Parent:     rep.Parent,
		Ascending:  rep.Ascending,
		Descending: rep.Descending,
		Results:    toEntries(rep.Results),
	}
	return textResult(explore.Text(rep.Results)), out, nil
}

func patternIsHeptatonic(pattern string) bool {
	labels, err := swara.ParseScale(pattern)
	return err == nil && graha.IsHeptatonic(labels)
}

func textResult(text string) *mcp.CallToolResult {
	if text == "" {
		text = "(no results)"
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
