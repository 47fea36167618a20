package models

import "strings"

// FileRef describes a stored attachment. Locally stored files carry a base64
// data URL and an id of the form local_<unixms>_<rand>; remote files carry a
// server-assigned id and a public HTTP URL.
type FileRef struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"` // MIME type
	Size       int64  `json:"size"` // bytes
	URL        string `json:"url"`
	UploadDate string `json:"uploadDate"`
	NoteID     string `json:"noteId,omitempty"`
}

// IsLocal reports whether the file lives in the local blob store rather than
// in remote object storage.
func (f FileRef) IsLocal() bool {
	return strings.HasPrefix(f.ID, "local_")
}
