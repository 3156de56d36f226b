package service

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	editSuffix = regexp.MustCompile(`/edit.*$`)
	viewSuffix = regexp.MustCompile(`/view.*$`)
)

// EmbedURL rewrites a Google Docs share link into its embeddable preview
// form, e.g. .../document/d/DOC_ID/edit?usp=sharing -> .../document/d/DOC_ID/preview.
// Unparseable input is returned unchanged; the viewer then simply shows
// whatever the original link renders as.
func EmbedURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if strings.Contains(u.Path, "/edit") || strings.Contains(u.Path, "/view") {
		return viewSuffix.ReplaceAllString(editSuffix.ReplaceAllString(raw, "/preview"), "/preview")
	}
	if !strings.HasSuffix(raw, "/preview") {
		return raw + "/preview"
	}
	return raw
}
