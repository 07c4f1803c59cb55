package ui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/papapumpkin/graha/internal/catalog"
	"github.com/papapumpkin/graha/internal/explore"
	"github.com/papapumpkin/graha/internal/fuzzy"
	"github.com/papapumpkin/graha/internal/swara"
	"github.com/papapumpkin/graha/internal/telemetry"
)

// ANSI color codes.
const (
	reset   = "\033[0m"
	bold    = "\033[1m"
	dim     = "\033[2m"
	blue    = "\033[34m"
	yellow  = "\033[33m"
	green   = "\033[32m"
	red     = "\033[31m"
	cyan    = "\033[36m"
	magenta = "\033[35m"
)

// Printer renders CLI output. Results go to Out; status lines, warnings and
// errors go to Err so results stay pipeable.
type Printer struct {
	Out io.Writer
	Err io.Writer
}

func New() *Printer {
	return &Printer{Out: os.Stdout, Err: os.Stderr}
}

func (p *Printer) Banner() {
	fmt.Fprintln(p.Err, bold+cyan+"  ╔═══════════════════════════════════╗"+reset)
	fmt.Fprintln(p.Err, bold+cyan+"  ║"+reset+bold+"   GRAHA  "+dim+"graha bhedam explorer"+reset+bold+cyan+"    ║"+reset)
	fmt.Fprintln(p.Err, bold+cyan+"  ╚═══════════════════════════════════╝"+reset)
	fmt.Fprintln(p.Err)
}

func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.Err, red+bold+"error: "+reset+"%s\n", msg)
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.Err, dim+"%s"+reset+"\n", msg)
}

// InvalidSymbol shows a pattern with a caret under the offending token, or a
// plain error when err is not a symbol error.
func (p *Printer) InvalidSymbol(pattern string, err error) {
	var ise *swara.InvalidSymbolError
	if !errors.As(err, &ise) || ise.Position < 0 {
		p.Error(err.Error())
		return
	}
	fields := strings.Fields(pattern)
	col := 0
	for i := 0; i < ise.Position && i < len(fields); i++ {
		col += len(fields[i]) + 1
	}
	fmt.Fprintf(p.Err, red+bold+"✗ invalid swara %q"+reset+"\n", ise.Token)
	fmt.Fprintf(p.Err, "  %s\n", strings.Join(fields, " "))
	fmt.Fprintf(p.Err, "  %s"+red+"%s"+reset+"\n", strings.Repeat(" ", col), strings.Repeat("^", len(ise.Token)))
	fmt.Fprintf(p.Err, dim+"  valid: %s"+reset+"\n", alphabet())
}

func alphabet() string {
	ls := swara.Alphabet()
	parts := make([]string, len(ls))
	for i, l := range ls {
		parts[i] = l.String()
	}
	return strings.Join(parts, " ")
}

// CatalogLoaded prints a one-line summary of the active catalog.
func (p *Printer) CatalogLoaded(c *explore.Catalog) {
	fmt.Fprintf(p.Err, dim+"catalog: %s — %d ragas (%d melakartas)"+reset, c.Source, c.Index.Len(), len(c.Index.Roots()))
	if n := len(c.Issues); n > 0 {
		fmt.Fprintf(p.Err, yellow+" %d issue(s)"+reset, n)
	}
	fmt.Fprintln(p.Err)
}

// CatalogIssues lists data-quality issues found while indexing.
func (p *Printer) CatalogIssues(issues []catalog.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(p.Err, green+bold+"✓ catalog"+reset+" — no issues")
		return
	}
	fmt.Fprintf(p.Err, yellow+bold+"⚠ %d catalog issue(s)"+reset+"\n", len(issues))
	for _, is := range issues {
		fmt.Fprintf(p.Err, "  "+yellow+"• "+reset+"%s\n", is.String())
	}
}

// Resolved notes a corrected or unresolved name. Exact spellings print
// nothing.
func (p *Printer) Resolved(res explore.Resolution, suggestions []string) {
	switch {
	case !res.Found:
		fmt.Fprintf(p.Err, yellow+"? no raga matches %q"+reset+"\n", res.Query)
		if len(suggestions) > 0 {
			fmt.Fprintf(p.Err, dim+"  did you mean: %s"+reset+"\n", strings.Join(suggestions, ", "))
		}
	case res.Corrected && res.Tier != fuzzy.TierExact:
		fmt.Fprintf(p.Err, cyan+"→ %s"+reset+dim+" (%s match for %q)"+reset+"\n", res.Name, res.Tier, strings.TrimSpace(res.Query))
	}
}

// Results prints named rotations, known ones first in color.
func (p *Printer) Results(results []explore.Result) {
	if len(results) == 0 {
		fmt.Fprintln(p.Out, dim+"(no graha bhedam results)"+reset)
		return
	}
	for _, r := range results {
		color := green
		if !r.Known() {
			color = dim
		} else if r.Match == explore.MatchAscending {
			color = yellow
		}
		fmt.Fprintf(p.Out, color+bold+"%s"+reset+"\n", r.Label())
		fmt.Fprintf(p.Out, "  arohanam:   %s\n", r.Ascending)
		fmt.Fprintf(p.Out, "  avarohanam: %s\n", r.Descending)
	}
}

// Report prints the graha bhedam of a catalog raga.
func (p *Printer) Report(rep explore.Report) {
	fmt.Fprintf(p.Out, bold+magenta+"── %s ──"+reset+"\n", rep.Resolution.Name)
	if rep.Parent != "" {
		fmt.Fprintf(p.Out, dim+"janya of %s"+reset+"\n", rep.Parent)
	}
	fmt.Fprintf(p.Out, "  arohanam:   %s\n", rep.Ascending)
	fmt.Fprintf(p.Out, "  avarohanam: %s\n\n", rep.Descending)
	p.Results(rep.Results)
}

// RagaInfo prints an entry card.
func (p *Printer) RagaInfo(info explore.Info) {
	title := info.Name
	if info.Number > 0 {
		title = fmt.Sprintf("%s (#%d)", info.Name, info.Number)
	}
	fmt.Fprintf(p.Out, bold+cyan+"%s"+reset+"\n", title)
	fmt.Fprintf(p.Out, "  kind:       %s\n", info.Kind)
	if info.Notes != "" {
		fmt.Fprintf(p.Out, "  notes:      %s\n", info.Notes)
	}
	if info.Parent != "" {
		fmt.Fprintf(p.Out, "  parent:     %s\n", info.Parent)
	}
	for _, f := range info.Forms {
		if f.Name != info.Name {
			fmt.Fprintf(p.Out, dim+"  %s"+reset+"\n", f.Name)
		}
		fmt.Fprintf(p.Out, "  arohanam:   %s\n", f.Ascending)
		fmt.Fprintf(p.Out, "  avarohanam: %s\n", f.Descending)
	}
	if len(info.Children) > 0 {
		fmt.Fprintf(p.Out, "  janyas:     %s\n", strings.Join(info.Children, ", "))
	}
}

// Relations prints a melakarta and its janyas.
func (p *Printer) Relations(rel explore.Relations) {
	fmt.Fprintf(p.Out, bold+cyan+"%s (#%d)"+reset+"\n", rel.Root.Name, rel.Number)
	fmt.Fprintf(p.Out, "  %s\n  %s\n", rel.Root.Ascending, rel.Root.Descending)
	if len(rel.Children) == 0 {
		fmt.Fprintln(p.Out, dim+"  (no janyas in catalog)"+reset)
		return
	}
	for _, c := range rel.Children {
		marker := " "
		if c.Name == rel.Resolution.Name {
			marker = green + "▶" + reset
		}
		fmt.Fprintf(p.Out, "%s %-22s %s\n", marker, c.Name, c.Ascending)
	}
}

// Match prints a fuzzy match outcome.
func (p *Printer) Match(query string, m fuzzy.Match, ok bool) {
	if !ok {
		fmt.Fprintf(p.Out, yellow+"no match"+reset+" for %q\n", query)
		return
	}
	fmt.Fprintf(p.Out, green+"%s"+reset+dim+" (%s", m.Name, m.Tier)
	if m.Tier == fuzzy.TierEditDistance {
		fmt.Fprintf(p.Out, ", distance %d", m.Distance)
	}
	fmt.Fprintln(p.Out, ")"+reset)
}

// Names prints one name per line.
func (p *Printer) Names(names []string) {
	for _, n := range names {
		fmt.Fprintln(p.Out, n)
	}
}

// Events prints telemetry events, one per line.
func (p *Printer) Events(events []telemetry.Event) {
	for _, e := range events {
		fmt.Fprintf(p.Out, dim+"%s"+reset+" %-17s", e.Timestamp.Format("2006-01-02 15:04:05"), e.Kind)
		if e.Source != "" {
			fmt.Fprintf(p.Out, " source=%s", e.Source)
		}
		if e.Raga != "" {
			fmt.Fprintf(p.Out, " raga=%s", e.Raga)
		}
		if e.Data != nil {
			fmt.Fprintf(p.Out, " %v", e.Data)
		}
		fmt.Fprintln(p.Out)
	}
}
