package handlers

import (
	"mime"
	"net/http"

	"timeTracker/internal/models/sheet"
)

func checkContentType(r *http.Request, target string) bool {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == target
}

// checkDate gates manual date edits: only the recognized formats pass,
// everything else is rejected here so the engine never sees a
// malformed date key through this surface.
func checkDate(date string) bool {
	return sheet.IsValidDate(date)
}
