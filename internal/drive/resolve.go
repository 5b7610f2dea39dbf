// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package drive

import (
	"fmt"
	"regexp"
	"strings"
)

// Base URL for Drive downloads. Declared as a var so tests can substitute
// an httptest server.
var downloadBase = "https://drive.google.com/uc"

// fileIDPattern extracts the file ID from Drive sharing links:
// ".../file/d/<id>/view", ".../d/<id>/preview", "...?id=<id>".
var fileIDPattern = regexp.MustCompile(`(?:/file/d/|/d/|id=)([a-zA-Z0-9_-]+)`)

// bareIDPattern matches an identifier passed without any URL around it.
var bareIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ExtractFileID resolves a Drive sharing link (or a bare file ID) to the
// file identifier. It fails on empty input and on URLs that carry no
// recognizable ID.
func ExtractFileID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		if bareIDPattern.MatchString(rawURL) {
			return rawURL, nil
		}
		return "", fmt.Errorf("not a Drive URL or file ID: %q", rawURL)
	}

	m := fileIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", fmt.Errorf("no Drive file ID found in URL %q", rawURL)
	}
	return m[1], nil
}

// DownloadURL returns the direct-download endpoint for a file ID.
func DownloadURL(fileID string) string {
	return downloadBase + "?export=download&id=" + fileID
}
