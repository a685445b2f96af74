package catalog

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	driveFilePath = regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`)
	driveIDParam  = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`)
)

// DirectDownloadURL rewrites a Google Drive sharing link into its direct
// download form. Other URLs, and Drive URLs without a file id, are returned
// unchanged.
func DirectDownloadURL(raw string) string {
	if !strings.Contains(raw, "drive.google.com") {
		return raw
	}
	var id string
	if m := driveFilePath.FindStringSubmatch(raw); m != nil {
		id = m[1]
	} else if m := driveIDParam.FindStringSubmatch(raw); m != nil {
		id = m[1]
	}
	if id == "" {
		return raw
	}
	return "https://drive.google.com/uc?export=download&id=" + url.QueryEscape(id) + "&confirm=t"
}
