// Package classify maps file paths to a reporting category and a normalized
// extension. Only the path is inspected, never file contents.
package classify

import (
	"mime"
	"path/filepath"
	"slices"
	"strings"
)

// Category is a human-facing content bucket.
type Category string

// Exported constants.
const (
	Images    Category = "Images"
	Videos    Category = "Videos"
	Audio     Category = "Audio"
	Documents Category = "Documents"
	Archives  Category = "Archives"
	Code      Category = "Code"
	Other     Category = "Other"

	// NoExt is reported for paths without an extension.
	NoExt = "noext"
)

// Categories lists every category in match order.
func Categories() []Category {
	return []Category{Images, Videos, Audio, Documents, Archives, Code, Other}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // fixed lookup tables
	mediaFamilies = map[string]Category{
		// images
		"jpg": Images, "jpeg": Images, "jpe": Images, "png": Images, "gif": Images,
		"bmp": Images, "tif": Images, "tiff": Images, "webp": Images, "heic": Images,
		"heif": Images, "svg": Images, "ico": Images, "avif": Images, "jxl": Images,
		// videos
		"mp4": Videos, "m4v": Videos, "mov": Videos, "avi": Videos, "mkv": Videos,
		"webm": Videos, "wmv": Videos, "flv": Videos, "mpg": Videos, "mpeg": Videos,
		"3gp": Videos, "ts": Videos, "m2ts": Videos, "ogv": Videos,
		// audio
		"mp3": Audio, "wav": Audio, "flac": Audio, "aac": Audio, "m4a": Audio,
		"ogg": Audio, "oga": Audio, "opus": Audio, "wma": Audio, "aif": Audio,
		"aiff": Audio, "mid": Audio, "midi": Audio,
	}

	//nolint:gochecknoglobals // fixed lookup tables
	documentExts = []string{"pdf", "doc", "docx", "ppt", "pptx", "xls", "xlsx", "txt", "md", "rtf", "csv", "json"}

	//nolint:gochecknoglobals // fixed lookup tables
	archiveExts = []string{"zip", "7z", "rar", "tar", "gz", "bz2"}

	//nolint:gochecknoglobals // fixed lookup tables
	codeExts = []string{
		"js", "ts", "tsx", "jsx", "py", "go", "java", "kt", "rs", "c", "cpp",
		"h", "hpp", "cs", "rb", "php", "sh", "yaml", "yml", "toml",
	}
)

// Classify returns the category and normalized (lowercase, no dot) extension
// of path. Paths without an extension yield (Other, NoExt) unless nothing
// else matches first.
func Classify(path string) (Category, string) {
	ext := strings.ToLower(Extension(path))

	category := categoryFor(ext)

	if ext == "" {
		return category, NoExt
	}

	return category, ext
}

// Extension returns the text after the last dot of the final path element.
// A leading dot alone does not start an extension (".bashrc" has none) and
// "file." has an empty one.
func Extension(path string) string {
	name := filepath.Base(path)
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}

	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 {
		return ""
	}

	return name[idx+1:]
}

// Stem returns the final path element without its extension, using the same
// rules as Extension.
func Stem(path string) string {
	name := filepath.Base(path)

	idx := strings.LastIndexByte(name, '.')
	if idx <= 0 || name == ".." {
		return name
	}

	return name[:idx]
}

func categoryFor(ext string) Category {
	if ext == "" {
		return Other
	}

	if category, ok := mediaFamily(ext); ok {
		return category
	}

	switch {
	case slices.Contains(documentExts, ext):
		return Documents
	case slices.Contains(archiveExts, ext):
		return Archives
	case slices.Contains(codeExts, ext):
		return Code
	default:
		return Other
	}
}

// mediaFamily resolves image/video/audio from the built-in table, then from
// the platform MIME registry.
func mediaFamily(ext string) (Category, bool) {
	if category, ok := mediaFamilies[ext]; ok {
		return category, true
	}

	mimeType := mime.TypeByExtension("." + ext)

	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return Images, true
	case strings.HasPrefix(mimeType, "video/"):
		return Videos, true
	case strings.HasPrefix(mimeType, "audio/"):
		return Audio, true
	default:
		return "", false
	}
}
