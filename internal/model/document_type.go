package model

// DocumentType describes an allowed kind of upload and its policy.
// Types are seeded at schema bootstrap and immutable at runtime.
type DocumentType struct {
	ID               string   `json:"id"`
	TypeName         string   `json:"type_name"`
	DisplayName      string   `json:"display_name"`
	Category         string   `json:"category"`
	AllowedMimeTypes []string `json:"allowed_mime_types"`
	MaxFileSize      int64    `json:"max_file_size"`
	IsActive         bool     `json:"is_active"`
}

// AllowsMime reports whether the given MIME type is in the allow-list.
func (t DocumentType) AllowsMime(mime string) bool {
	for _, m := range t.AllowedMimeTypes {
		if m == mime {
			return true
		}
	}
	return false
}
