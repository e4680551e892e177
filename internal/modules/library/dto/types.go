package dto

import "time"

type AddBookInput struct {
	Title         string
	Author        string
	TotalPages    int
	CurrentPage   int
	Status        string
	CoverURL      string
	ISBN          string
	Publisher     string
	PublishedDate string
	Description   string
}

type UpdateProgressInput struct {
	BookID string
	Page   int
}

type UpdateMetadataInput struct {
	BookID        string
	Title         *string
	Author        *string
	TotalPages    *int
	CoverURL      *string
	ISBN          *string
	Publisher     *string
	PublishedDate *string
	Description   *string
}

type ConclusionInput struct {
	Takeaway    string
	Advice      string
	Reason      string
	Gains       string
	ReturnLater bool
}

type ChangeStatusInput struct {
	BookID     string
	Status     string
	Conclusion *ConclusionInput
}

type BookOutput struct {
	ID          string
	Title       string
	Author      string
	TotalPages  int
	CurrentPage int
	Progress    int
	Status      string
}

type ConclusionOutput struct {
	Takeaway    string
	Advice      string
	Reason      string
	Gains       string
	ReturnLater bool
}

type BookDetailOutput struct {
	ID             string
	Title          string
	Author         string
	TotalPages     int
	CurrentPage    int
	Progress       int
	PagesRemaining int
	Status         string
	DateAdded      time.Time
	DateCompleted  *time.Time
	CoverURL       string
	ISBN           string
	Publisher      string
	PublishedDate  string
	Description    string
	Conclusion     *ConclusionOutput
}

type DeleteOutput struct {
	Removed         bool
	SessionsRemoved int
}
