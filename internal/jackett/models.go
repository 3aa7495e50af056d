// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package jackett

// searchResponse mirrors the aggregate results endpoint payload.
type searchResponse struct {
	Results  []resultItem    `json:"Results"`
	Indexers []indexerStatus `json:"Indexers"`
}

// resultItem is a single raw result record. Only Title is required; records
// without one are dropped during conversion.
type resultItem struct {
	Title     string `json:"Title"`
	Link      string `json:"Link"`
	Details   string `json:"Details"`
	Tracker   string `json:"Tracker"`
	TrackerID string `json:"TrackerId"`
	Size      int64  `json:"Size"`
	Seeders   int    `json:"Seeders"`
	Peers     int    `json:"Peers"`
}

// indexerStatus reports per-indexer errors embedded in an otherwise 200
// response. A non-empty Error means the indexer could not be searched.
type indexerStatus struct {
	ID    string `json:"ID"`
	Name  string `json:"Name"`
	Error string `json:"Error"`
}

// Result represents a single search result (simplified format).
type Result struct {
	Title     string
	Link      string
	Details   string
	Tracker   string
	IndexerID string
	Size      int64
	Seeders   int
	Peers     int
}
