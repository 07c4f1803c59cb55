package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/papapumpkin/graha/internal/catalog"
	"github.com/papapumpkin/graha/internal/explore"
	"github.com/papapumpkin/graha/internal/fuzzy"
)

// suggestLimit caps the names offered for an unresolved query.
const suggestLimit = 5

// matchRagaInput is the input schema for the match_raga tool.
type matchRagaInput struct {
	Query string `json:"query" jsonschema:"Raga name as typed, in any transliteration"`
}

// matchRagaOutput is the output schema for the match_raga tool.
type matchRagaOutput struct {
	Found       bool     `json:"found"`
	Name        string   `json:"name,omitempty"`
	Tier        string   `json:"tier,omitempty"`
	Distance    int      `json:"distance,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ragaNameInput is the input schema for raga_info and raga_relations.
type ragaNameInput struct {
	Name string `json:"name" jsonschema:"Raga name; loose spellings are corrected"`
}

// formEntry is one ascending/descending pair.
type formEntry struct {
	Name       string `json:"name,omitempty"`
	Ascending  string `json:"arohanam"`
	Descending string `json:"avarohanam,omitempty"`
}

// ragaInfoOutput is the output schema for the raga_info tool.
type ragaInfoOutput struct {
	Name     string      `json:"name"`
	Kind     string      `json:"kind"`
	Number   int         `json:"number,omitempty"`
	Notes    string      `json:"notes,omitempty"`
	Parent   string      `json:"parent,omitempty"`
	Forms    []formEntry `json:"forms"`
	Children []string    `json:"children,omitempty"`
}

// ragaRelationsOutput is the output schema for the raga_relations tool.
type ragaRelationsOutput struct {
	Melakarta formEntry   `json:"melakarta"`
	Number    int         `json:"number"`
	Janyas    []formEntry `json:"janyas"`
}

// listRagasInput is the input schema for the list_ragas tool.
type listRagasInput struct {
	Kind string `json:"kind,omitempty" jsonschema:"Filter by kind: melakarta or janya (default: all)"`
}

// listRagasOutput is the output schema for the list_ragas tool.
type listRagasOutput struct {
	Names []string `json:"names"`
}

func toForms(fs []explore.Form) []formEntry {
	out := make([]formEntry, len(fs))
	for i, f := range fs {
		out[i] = formEntry{Name: f.Name, Ascending: f.Ascending, Descending: f.Descending}
	}
	return out
}

// registerCatalogTools registers the name lookup and catalog browsing tools.
func (s *Server) registerCatalogTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "match_raga",
		Description: "Resolve a loosely spelled raga name to its catalog spelling",
	}, s.matchRaga)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "raga_info",
		Description: "Describe a catalog raga: kind, number, parent, and scale forms",
	}, s.ragaInfo)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "raga_relations",
		Description: "List the melakarta a raga belongs to and that melakarta's janyas",
	}, s.ragaRelations)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_ragas",
		Description: "List catalog raga names",
	}, s.listRagas)
}

func (s *Server) matchRaga(_ context.Context, _ *mcp.CallToolRequest, input matchRagaInput) (*mcp.CallToolResult, matchRagaOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, matchRagaOutput{}, fmt.Errorf("query is required")
	}
	res := s.explorer.Resolve(input.Query)
	if !res.Found {
		return nil, matchRagaOutput{Suggestions: s.explorer.Suggest(input.Query, suggestLimit)}, nil
	}
	out := matchRagaOutput{Found: true, Name: res.Name, Tier: res.Tier.String()}
	if res.Tier == fuzzy.TierEditDistance {
		if m, ok := s.explorer.Catalog().Matcher.Match(strings.TrimSpace(input.Query)); ok {
			out.Distance = m.Distance
		}
	}
	return nil, out, nil
}

func (s *Server) ragaInfo(_ context.Context, _ *mcp.CallToolRequest, input ragaNameInput) (*mcp.CallToolResult, ragaInfoOutput, error) {
	info, err := s.explorer.Describe(input.Name)
	if err != nil {
		return nil, ragaInfoOutput{}, s.withSuggestions(input.Name, err)
	}
	return nil, ragaInfoOutput{
		Name:     info.Name,
		Kind:     string(info.Kind),
		Number:   info.Number,
		Notes:    info.Notes,
		Parent:   info.Parent,
		Forms:    toForms(info.Forms),
		Children: info.Children,
	}, nil
}

func (s *Server) ragaRelations(_ context.Context, _ *mcp.CallToolRequest, input ragaNameInput) (*mcp.CallToolResult, ragaRelationsOutput, error) {
	rel, err := s.explorer.Relations(input.Name)
	if err != nil {
		return nil, ragaRelationsOutput{}, s.withSuggestions(input.Name, err)
	}
	return nil, ragaRelationsOutput{
		Melakarta: formEntry{Name: rel.Root.Name, Ascending: rel.Root.Ascending, Descending: rel.Root.Descending},
		Number:    rel.Number,
		Janyas:    toForms(rel.Children),
	}, nil
}

func (s *Server) listRagas(_ context.Context, _ *mcp.CallToolRequest, input listRagasInput) (*mcp.CallToolResult, listRagasOutput, error) {
	var kind catalog.Kind
	if input.Kind != "" {
		if err := kind.UnmarshalText([]byte(input.Kind)); err != nil {
			return nil, listRagasOutput{}, err
		}
	}
	names := s.explorer.List(kind)
	if names == nil {
		names = []string{}
	}
	return nil, listRagasOutput{Names: names}, nil
}

// withSuggestions appends close catalog names to an unknown-raga error.
func (s *Server) withSuggestions(query string, err error) error {
	if !errors.Is(err, explore.ErrUnknownRaga) {
		return err
	}
	if sugg := s.explorer.Suggest(query, suggestLimit); len(sugg) > 0 {
		return fmt.Errorf("%w (did you mean: %s)", err, strings.Join(sugg, ", "))
	}
	return err
}
