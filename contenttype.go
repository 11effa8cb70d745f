package pathkit

import (
	"mime"
	"path"
	"strings"
)

// Icon references for file content categories.
const (
	IconText     = "text"
	IconImage    = "image"
	IconAudio    = "audio"
	IconVideo    = "video"
	IconArchive  = "archive"
	IconDocument = "document"
)

// Common file extensions to MIME types mapping
var extensionToMIME = map[string]string{
	".txt":  "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "text/javascript",
	".json": "application/json",
	".xml":  "application/xml",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".webp": "image/webp",
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".odt":  "application/vnd.oasis.opendocument.text",
	".zip":  "application/zip",
	".jar":  "application/java-archive",
	".xpi":  "application/x-xpinstall",
	".gz":   "application/gzip",
	".tar":  "application/x-tar",
	".7z":   "application/x-7z-compressed",
	".rar":  "application/x-rar-compressed",
}

var archiveTypes = map[string]bool{
	"application/zip":              true,
	"application/java-archive":     true,
	"application/x-xpinstall":      true,
	"application/gzip":             true,
	"application/x-tar":            true,
	"application/x-7z-compressed":  true,
	"application/x-rar-compressed": true,
}

// ContentType guesses the MIME type of name from its extension.
func ContentType(name string) string {
	ext := strings.ToLower(path.Ext(strings.TrimSuffix(name, "/")))
	if ext == "" {
		return "application/octet-stream"
	}
	if contentType, ok := extensionToMIME[ext]; ok {
		return contentType
	}
	if contentType := mime.TypeByExtension(ext); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}

// IconForType maps a MIME type onto one of the Icon* references.
func IconForType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i != -1 {
		contentType = contentType[:i]
	}
	contentType = strings.TrimSpace(contentType)

	switch {
	case archiveTypes[contentType]:
		return IconArchive
	case strings.HasPrefix(contentType, "text/"),
		contentType == "application/json",
		contentType == "application/xml":
		return IconText
	case strings.HasPrefix(contentType, "image/"):
		return IconImage
	case strings.HasPrefix(contentType, "audio/"):
		return IconAudio
	case strings.HasPrefix(contentType, "video/"):
		return IconVideo
	case contentType == "application/pdf",
		contentType == "application/msword",
		strings.HasPrefix(contentType, "application/vnd.openxmlformats-officedocument."),
		strings.HasPrefix(contentType, "application/vnd.oasis.opendocument."):
		return IconDocument
	}
	return IconFile
}

// DefaultIcon is the IconResolver used when the host provides none. It
// picks an icon from the extension of the pseudo path.
func DefaultIcon(pseudoPath string) string {
	return IconForType(ContentType(pseudoPath))
}
