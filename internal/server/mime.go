package server

import "strings"

// mimeTypes maps URL path suffixes to served Content-Type values, first
// match wins. Matching is case-sensitive on purpose: media libraries name
// files with lowercase extensions and anything else falls through to the
// octet-stream default.
var mimeTypes = []struct {
	suffix string
	mime   string
}{
	{".mp4", "video/mp4"},
	{".m3u8", "application/x-mpegURL"},
	{".ts", "video/mp2t"},
	{".html", "text/html; charset=utf-8"},
	{".js", "application/javascript"},
	{".css", "text/css"},
	{".jpg", "image/jpeg"},
	{".jpeg", "image/jpeg"},
	{".png", "image/png"},
	{".gif", "image/gif"},
	{".vtt", "text/vtt; charset=utf-8"}, // charset matters for subtitles
	{".srt", "application/x-subrip"},
}

// detectMIME picks the Content-Type for a URL path by its suffix.
func detectMIME(path string) string {
	for _, t := range mimeTypes {
		if strings.HasSuffix(path, t.suffix) {
			return t.mime
		}
	}
	return "application/octet-stream"
}
