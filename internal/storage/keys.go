package storage

import (
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/nagaraj2331P/aura-hr-solutions/pkg/errors"
)

type Category string

const (
	CategoryResume     Category = "resumes"
	CategoryProfilePic Category = "profiles"
	CategoryProject    Category = "projects"
	CategorySubmission Category = "submissions"
	CategoryMisc       Category = "misc"
)

// Extension allow-lists per upload category.
var allowedExtensions = map[Category][]string{
	CategoryResume:     {".pdf", ".doc", ".docx"},
	CategoryProfilePic: {".jpg", ".jpeg", ".png", ".gif"},
	CategoryProject:    {".pdf", ".doc", ".docx", ".txt", ".zip", ".rar", ".jpg", ".jpeg", ".png"},
	CategorySubmission: {".pdf", ".doc", ".docx", ".txt", ".zip", ".rar", ".jpg", ".jpeg", ".png", ".mp4", ".avi"},
}

// ValidateExtension checks the original filename against the category's
// allow-list. Unknown categories fall back to the project list.
func ValidateExtension(category Category, originalName string) error {
	ext := strings.ToLower(path.Ext(originalName))
	allowed, ok := allowedExtensions[category]
	if !ok {
		allowed = allowedExtensions[CategoryProject]
	}
	for _, a := range allowed {
		if ext == a {
			return nil
		}
	}
	return errors.ErrInvalidFileType
}

// NewKey builds the object key: <category>/<uuid><ext>. The random name
// keeps uploads from colliding or leaking the uploader's filename.
func NewKey(category Category, originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	return string(category) + "/" + uuid.NewString() + ext
}
