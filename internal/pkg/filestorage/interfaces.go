package filestorage

import (
	"mime/multipart"
)

// Purpose-specific subfolders under the storage root. Stored references are
// relative URLs of the form "uploads/<subpath>/<generated name>".
const (
	TeacherImagesPath = "teachers"
	StudentImagesPath = "students"
	SeminarsPath      = "seminars"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFileWithPath saves a file into a purpose subdirectory and returns the
	// relative URL under which it is served
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a file from storage; a missing file is not an error
	DeleteFile(filePath string) error
}
