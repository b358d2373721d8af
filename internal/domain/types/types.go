// Package types contains common types used across the application
package types

// FileEntry represents one listed solution file
type FileEntry struct {
	Filename string `json:"filename"`
	Rating   *int   `json:"rating"`
}

// Solution is a segmented solution file as served to clients
type Solution struct {
	Filename    string `json:"filename"`
	Description string `json:"description"`
	Code        string `json:"code"`
	Complexity  string `json:"complexity"`
	SourceLink  string `json:"source_link,omitempty"`
	YoutubeLink string `json:"youtube_link,omitempty"`

	// Digest is the hex xxh3 hash of the file bytes, used as an entity tag.
	Digest string `json:"-"`
}

// RatingReceipt acknowledges a stored rating
type RatingReceipt struct {
	Filename string `json:"filename"`
	Rating   int    `json:"rating"`
	Message  string `json:"message"`
}

// Language is the public view of a supported solution language
type Language struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
}

// RatingPtr returns a pointer to r, or nil when ok is false.
func RatingPtr(r int, ok bool) *int {
	if !ok {
		return nil
	}
	return &r
}
