// Copyright (c) 2025, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package jackett

import (
	"github.com/pkg/errors"
	"github.com/zeebo/bencode"
)

type torrentInfo struct {
	Name string `bencode:"name"`
}

type torrentMeta struct {
	Info torrentInfo `bencode:"info"`
}

// TorrentName decodes a .torrent blob and returns the top-level name from
// its info dictionary.
func TorrentName(data []byte) (string, error) {
	var meta torrentMeta
	if err := bencode.DecodeBytes(data, &meta); err != nil {
		return "", errors.Wrap(err, "decode torrent")
	}
	if meta.Info.Name == "" {
		return "", errors.New("torrent has no name")
	}
	return meta.Info.Name, nil
}
