// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package scan

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Verdict is the immutable per-entry outcome. Found and Unverifiable are
// mutually exclusive: Unverifiable means the indexer could not be asked,
// not that the release is absent.
type Verdict struct {
	Entry        LocalEntry
	Found        bool
	Unverifiable bool
	Matched      *Candidate
	Labels       Labels
}

// Report is the ordered outcome of one scan. Verdicts follow enumeration
// order; Skipped lists entries excluded before querying because their own
// release group was on the deny-list.
type Report struct {
	RootPath string
	Verdicts []Verdict
	Skipped  []LocalEntry
}

// Missing returns verdicts confirmed absent from the tracker.
func (r *Report) Missing() []Verdict {
	return r.filter(func(v Verdict) bool { return !v.Found && !v.Unverifiable })
}

// Unverifiable returns verdicts whose queries failed after retries.
func (r *Report) Unverifiable() []Verdict {
	return r.filter(func(v Verdict) bool { return v.Unverifiable })
}

// FoundCount returns how many entries matched a tracker release.
func (r *Report) FoundCount() int {
	n := 0
	for _, v := range r.Verdicts {
		if v.Found {
			n++
		}
	}
	return n
}

func (r *Report) filter(keep func(Verdict) bool) []Verdict {
	var out []Verdict
	for _, v := range r.Verdicts {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Render writes a human-readable report to w.
func (r *Report) Render(w io.Writer) {
	missing := r.Missing()
	unverifiable := r.Unverifiable()

	if len(missing) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle(fmt.Sprintf("Not found on tracker (%d)", len(missing)))
		t.AppendHeader(table.Row{"", "Name"})
		for _, v := range missing {
			t.AppendRow(table.Row{v.Labels.String(), v.Entry.DisplayName})
		}
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 1, Align: text.AlignCenter},
		})
		t.Render()

		if r.hasLabel(missing) {
			fmt.Fprintln(w, "S = folder may contain sample files (video 1-110 MiB)")
			fmt.Fprintln(w, "P = folder may contain proof images")
		}
	} else {
		fmt.Fprintln(w, "All checked entries were found on the tracker.")
	}

	if len(unverifiable) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetTitle(fmt.Sprintf("Could not verify (%d)", len(unverifiable)))
		t.AppendHeader(table.Row{"Name"})
		for _, v := range unverifiable {
			t.AppendRow(table.Row{v.Entry.DisplayName})
		}
		t.Render()
	}

	summary := table.NewWriter()
	summary.SetOutputMirror(w)
	summary.AppendRows([]table.Row{
		{"Entries found", len(r.Verdicts) + len(r.Skipped)},
		{"Skipped (excluded group)", len(r.Skipped)},
		{"Checked", len(r.Verdicts)},
		{"On tracker", r.FoundCount()},
		{"Missing", len(missing)},
		{"Unverifiable", len(unverifiable)},
	})
	summary.Render()
}

func (r *Report) hasLabel(verdicts []Verdict) bool {
	for _, v := range verdicts {
		if v.Labels.HasSamples || v.Labels.HasProof {
			return true
		}
	}
	return false
}
