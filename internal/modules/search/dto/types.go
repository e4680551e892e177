package dto

type CandidateOutput struct {
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

type AddCandidateInput struct {
	Candidate CandidateOutput
	Status    string
}

type AddedOutput struct {
	BookID string
	Title  string
}
