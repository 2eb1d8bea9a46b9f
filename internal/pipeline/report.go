package pipeline

import (
	"errors"
	"io"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/openrocket/motor-database/internal/curve"
	"github.com/openrocket/motor-database/internal/merge"
)

// RejectDetail is one refused record with where it came from and why
type RejectDetail struct {
	File   string
	Reason string
	Err    error
}

// Report accumulates what a build pass accepted, refused and wrote
type Report struct {
	Accepted   map[curve.Source]int
	Rejects    []RejectDetail
	Merge      merge.Stats
	MotorCount int
	CurveCount int
}

// NewReport returns an empty report
func NewReport() *Report {
	return &Report{Accepted: map[curve.Source]int{}}
}

func (r *Report) addAccept(source curve.Source) {
	r.Accepted[source]++
}

func (r *Report) addReject(file string, err error) {
	r.Rejects = append(r.Rejects, RejectDetail{File: file, Reason: reason(err), Err: err})
}

// TotalAccepted sums accepted records across sources
func (r *Report) TotalAccepted() int {
	total := 0
	for _, n := range r.Accepted {
		total += n
	}
	return total
}

// reason maps an error onto its taxonomy name for the summary table
func reason(err error) string {
	switch {
	case errors.Is(err, curve.ErrMalformedHeader):
		return "malformed header"
	case errors.Is(err, curve.ErrNonMonotonicTime):
		return "non-monotonic time"
	case errors.Is(err, curve.ErrPrematureZeroThrust):
		return "premature zero thrust"
	case errors.Is(err, curve.ErrMissingTerminalZero):
		return "missing terminal zero"
	case errors.Is(err, curve.ErrZeroBurnTime):
		return "zero burn time"
	default:
		return "other"
	}
}

// Render prints the build summary tables
func (r *Report) Render(w io.Writer, gzPath string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Source", "Accepted"})
	for _, source := range []curve.Source{curve.SourceCert, curve.SourceMfr, curve.SourceUser} {
		if n, ok := r.Accepted[source]; ok {
			t.AppendRow(table.Row{source, n})
		}
	}
	t.AppendFooter(table.Row{"Total", r.TotalAccepted()})
	t.Render()

	if len(r.Rejects) > 0 {
		byReason := map[string]int{}
		for _, rej := range r.Rejects {
			byReason[rej.Reason]++
		}
		reasons := make([]string, 0, len(byReason))
		for name := range byReason {
			reasons = append(reasons, name)
		}
		sort.Strings(reasons)

		t = table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Rejection reason", "Count"})
		for _, name := range reasons {
			t.AppendRow(table.Row{name, byReason[name]})
		}
		t.AppendFooter(table.Row{"Total", len(r.Rejects)})
		t.Render()
	}

	t = table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Database", ""})
	t.AppendRows([]table.Row{
		{"Motors created", r.Merge.MotorsCreated},
		{"Motors updated", r.Merge.MotorsUpdated},
		{"Curves created", r.Merge.CurvesCreated},
		{"Curves updated", r.Merge.CurvesUpdated},
		{"Motors total", r.MotorCount},
		{"Curves total", r.CurveCount},
	})
	if info, err := os.Stat(gzPath); err == nil {
		t.AppendRow(table.Row{"Artifact size", humanize.Bytes(uint64(info.Size()))})
	}
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}
