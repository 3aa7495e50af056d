// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package scan

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/arrscanarr/scanarr/internal/jackett"
)

// Searcher is the query-client surface the engine depends on.
type Searcher interface {
	Search(ctx context.Context, term string) ([]jackett.Result, error)
	Download(ctx context.Context, url string) ([]byte, error)
}

// Options configures a scan service.
type Options struct {
	// ExcludeGroups lists release groups to skip, both for candidates
	// and for local entries.
	ExcludeGroups []string

	// VerifyTorrents downloads a title-matched candidate's torrent file
	// and checks the embedded name before accepting the match.
	VerifyTorrents bool

	// MaxResults marks queries returning more results than this as
	// unverifiable instead of matching against noise. Zero disables.
	MaxResults int

	// SkipExcludedLocal also applies the group deny-list to local
	// entries: entries released by an excluded group are skipped before
	// querying and reported separately. Off by default so every entry
	// gets a verdict.
	SkipExcludedLocal bool

	// DetectLabels toggles sample/proof inspection of unmatched folders.
	DetectLabels bool
}

// Service runs scans: one rate-limited query per local entry, exclusion
// filter, then match scoring until the first passing candidate.
type Service struct {
	searcher Searcher
	opts     Options
	excluded GroupSet
	cache    *ReleaseCache
}

// NewService creates a scan service.
func NewService(searcher Searcher, opts Options) *Service {
	return &Service{
		searcher: searcher,
		opts:     opts,
		excluded: NewGroupSet(opts.ExcludeGroups),
		cache:    NewReleaseCache(),
	}
}

// Scan verifies every immediate child of rootPath against the tracker and
// returns the accumulated report. Entries are processed strictly
// sequentially; the query client's rate limiter is the only temporal gate.
// Cancellation is honoured between entries and mid-query: the partial
// report so far is returned together with the context error.
func (s *Service) Scan(ctx context.Context, rootPath string) (*Report, error) {
	entries, err := ListEntries(rootPath)
	if err != nil {
		return nil, err
	}

	report := &Report{RootPath: rootPath}
	log.Info().Str("root", rootPath).Int("entries", len(entries)).Msg("starting scan")

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if s.opts.SkipExcludedLocal {
			if group := ExtractReleaseGroup(s.cache, entry.DisplayName); s.excluded.Contains(group) {
				log.Debug().Str("entry", entry.DisplayName).Str("group", group).Msg("skipping excluded group")
				report.Skipped = append(report.Skipped, entry)
				continue
			}
		}

		verdict, err := s.evaluate(ctx, entry)
		if err != nil {
			return report, err
		}
		report.Verdicts = append(report.Verdicts, verdict)
	}

	if s.opts.DetectLabels {
		s.applyLabels(report)
	}

	log.Info().
		Int("checked", len(report.Verdicts)).
		Int("found", report.FoundCount()).
		Int("missing", len(report.Missing())).
		Int("unverifiable", len(report.Unverifiable())).
		Msg("scan complete")

	return report, nil
}

// evaluate runs the single logical search for one entry and scores the
// surviving candidates in response order, stopping at the first match.
// Only context errors propagate; query failures become an unverifiable
// verdict so the scan continues.
func (s *Service) evaluate(ctx context.Context, entry LocalEntry) (Verdict, error) {
	results, err := s.searcher.Search(ctx, entry.DisplayName)
	if err != nil {
		if ctx.Err() != nil {
			return Verdict{}, ctx.Err()
		}
		var qe *jackett.QueryError
		if errors.As(err, &qe) {
			log.Error().Err(err).Str("entry", entry.DisplayName).Msg("search failed, marking unverifiable")
			return Verdict{Entry: entry, Unverifiable: true}, nil
		}
		return Verdict{}, errors.Wrapf(err, "search %s", entry.DisplayName)
	}

	if s.opts.MaxResults > 0 && len(results) > s.opts.MaxResults {
		log.Warn().
			Str("entry", entry.DisplayName).
			Int("results", len(results)).
			Int("maxResults", s.opts.MaxResults).
			Msg("too many results for query, marking unverifiable")
		return Verdict{Entry: entry, Unverifiable: true}, nil
	}

	candidates := s.toCandidates(results)
	candidates = FilterExcluded(candidates, s.excluded)

	local := Normalize(entry.DisplayName)
	for _, cand := range candidates {
		if !Matches(local, Normalize(cand.Title)) {
			continue
		}
		if s.opts.VerifyTorrents && !s.torrentNameMatches(ctx, local, cand) {
			continue
		}

		matched := cand
		log.Debug().Str("entry", entry.DisplayName).Str("candidate", cand.Title).Msg("matched")
		return Verdict{Entry: entry, Found: true, Matched: &matched}, nil
	}

	return Verdict{Entry: entry}, nil
}

func (s *Service) toCandidates(results []jackett.Result) []Candidate {
	candidates := make([]Candidate, 0, len(results))
	for _, r := range results {
		candidates = append(candidates, Candidate{
			Title:        r.Title,
			ReleaseGroup: ExtractReleaseGroup(s.cache, r.Title),
			IndexerID:    r.IndexerID,
			Tracker:      r.Tracker,
			Link:         r.Link,
		})
	}
	return candidates
}

// torrentNameMatches downloads the candidate's torrent file and compares
// the embedded top-level name against the local entry. Any failure along
// the way rejects the candidate rather than the scan.
func (s *Service) torrentNameMatches(ctx context.Context, local NormalizedName, cand Candidate) bool {
	if cand.Link == "" {
		return false
	}

	data, err := s.searcher.Download(ctx, cand.Link)
	if err != nil {
		log.Warn().Err(err).Str("candidate", cand.Title).Msg("torrent download failed during verification")
		return false
	}

	name, err := jackett.TorrentName(data)
	if err != nil {
		log.Warn().Err(err).Str("candidate", cand.Title).Msg("torrent parse failed during verification")
		return false
	}

	return Matches(local, Normalize(name))
}

// applyLabels inspects unmatched directories for sample and proof files.
func (s *Service) applyLabels(report *Report) {
	for i := range report.Verdicts {
		v := &report.Verdicts[i]
		if v.Found || v.Unverifiable || !v.Entry.IsDirectory {
			continue
		}
		v.Labels = DetectLabels(v.Entry.Path)
	}
}
