package services

import (
	"path/filepath"
	"strings"

	"github.com/filehub-labs/filehub/internal/core/domain"
)

// extensionCategories maps lower-cased file extensions to categories.
var extensionCategories = map[string]domain.Category{
	".pdf":  domain.CategoryDocument,
	".doc":  domain.CategoryDocument,
	".docx": domain.CategoryDocument,
	".odt":  domain.CategoryDocument,
	".rtf":  domain.CategoryDocument,
	".csv":  domain.CategoryDocument,
	".xls":  domain.CategoryDocument,
	".xlsx": domain.CategoryDocument,

	".go":   domain.CategoryCode,
	".js":   domain.CategoryCode,
	".ts":   domain.CategoryCode,
	".py":   domain.CategoryCode,
	".rb":   domain.CategoryCode,
	".rs":   domain.CategoryCode,
	".java": domain.CategoryCode,
	".c":    domain.CategoryCode,
	".cpp":  domain.CategoryCode,
	".h":    domain.CategoryCode,
	".sh":   domain.CategoryCode,
	".sql":  domain.CategoryCode,
	".json": domain.CategoryCode,
	".yaml": domain.CategoryCode,
	".yml":  domain.CategoryCode,
	".toml": domain.CategoryCode,

	".png":  domain.CategoryImage,
	".jpg":  domain.CategoryImage,
	".jpeg": domain.CategoryImage,
	".gif":  domain.CategoryImage,
	".webp": domain.CategoryImage,
	".svg":  domain.CategoryImage,
	".heic": domain.CategoryImage,

	".mp4":  domain.CategoryVideo,
	".mov":  domain.CategoryVideo,
	".avi":  domain.CategoryVideo,
	".mkv":  domain.CategoryVideo,
	".webm": domain.CategoryVideo,

	".mp3":  domain.CategoryAudio,
	".wav":  domain.CategoryAudio,
	".flac": domain.CategoryAudio,
	".m4a":  domain.CategoryAudio,
	".ogg":  domain.CategoryAudio,

	".md":  domain.CategoryNote,
	".txt": domain.CategoryNote,
}

// CategorizeFile assigns a category from a file name and MIME-or-extension
// hint. Unknown content is uncategorized rather than other: other is for
// recognised-but-unclassifiable content.
func CategorizeFile(name, mimeOrExt string) domain.Category {
	ext := strings.ToLower(filepath.Ext(name))
	if cat, ok := extensionCategories[ext]; ok {
		return cat
	}

	mime := strings.ToLower(mimeOrExt)
	switch {
	case strings.HasPrefix(mime, "image/"):
		return domain.CategoryImage
	case strings.HasPrefix(mime, "video/"):
		return domain.CategoryVideo
	case strings.HasPrefix(mime, "audio/"):
		return domain.CategoryAudio
	case strings.HasPrefix(mime, "text/"):
		return domain.CategoryDocument
	case mime == "application/pdf":
		return domain.CategoryDocument
	}

	return domain.CategoryUncategorized
}
