package gdrive

import (
	"path/filepath"
	"strings"
)

const fallbackMIMEType = "application/octet-stream"

// mimeTypes is the fixed extension table used when an upload does not name an
// explicit media type. Unknown extensions fall back to octet-stream.
var mimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".pdf":  "application/pdf",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
}

// DetectMIMEType infers a media type from the file extension.
func DetectMIMEType(path string) string {
	if mt, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return mt
	}
	return fallbackMIMEType
}
