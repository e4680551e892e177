package domain

// Candidate is a catalog match that can be turned into a library book.
// SourceID is the catalog's own volume id and is never reused as a
// local book id.
type Candidate struct {
	SourceID      string
	Title         string
	Author        string
	TotalPages    int
	ISBN          string
	CoverURL      string
	Publisher     string
	PublishedDate string
	Description   string
}
