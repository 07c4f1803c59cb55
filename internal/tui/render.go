package tui

import (
	"fmt"
	"strings"

	"github.com/papapumpkin/graha/internal/explore"
)

func renderResults(b *strings.Builder, results []explore.Result) {
	if len(results) == 0 {
		b.WriteString(styleDetailDim.Render("(no graha bhedam results)"))
		b.WriteString("\n")
		return
	}
	for _, r := range results {
		style := styleRowKnown
		switch {
		case !r.Known():
			style = styleRowUnknown
		case r.Match == explore.MatchAscending:
			style = styleRowAscending
		}
		b.WriteString(style.Render(r.Label()))
		b.WriteString("\n")
		b.WriteString(styleRowNormal.Render("  " + r.Ascending))
		b.WriteString("\n")
		b.WriteString(styleRowNormal.Render("  " + r.Descending))
		b.WriteString("\n")
	}
}

func renderReport(rep explore.Report) (string, string) {
	title := rep.Resolution.Name
	var b strings.Builder
	if rep.Parent != "" {
		b.WriteString(styleDetailDim.Render("janya of " + rep.Parent))
		b.WriteString("\n")
	}
	b.WriteString(styleRowNormal.Render("arohanam:   " + rep.Ascending))
	b.WriteString("\n")
	b.WriteString(styleRowNormal.Render("avarohanam: " + rep.Descending))
	b.WriteString("\n\n")
	renderResults(&b, rep.Results)
	return title, b.String()
}

func renderPattern(pattern string, results []explore.Result) (string, string) {
	var b strings.Builder
	renderResults(&b, results)
	return pattern, b.String()
}

func renderRelations(rel explore.Relations) (string, string) {
	title := fmt.Sprintf("%s (#%d)", rel.Root.Name, rel.Number)
	var b strings.Builder
	b.WriteString(styleRowNormal.Render(rel.Root.Ascending))
	b.WriteString("\n")
	b.WriteString(styleRowNormal.Render(rel.Root.Descending))
	b.WriteString("\n\n")
	if len(rel.Children) == 0 {
		b.WriteString(styleDetailDim.Render("(no janyas in catalog)"))
		return title, b.String()
	}
	for _, c := range rel.Children {
		marker := " "
		if c.Name == rel.Resolution.Name {
			marker = styleSelectionIndicator.Render(selectionIndicator)
		}
		fmt.Fprintf(&b, "%s %s %s\n", marker, styleRowJanya.Render(fmt.Sprintf("%-22s", c.Name)), styleRowNormal.Render(c.Ascending))
	}
	return title, b.String()
}
