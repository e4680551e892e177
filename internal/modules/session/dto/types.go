package dto

import "time"

type StartInput struct {
	BookID string
}

type NotesInput struct {
	WhatStoodOut    *string
	KeyIdeas        *string
	QuestionsRaised *string
}

type CompleteInput struct {
	SessionID string
	EndPage   int
	Notes     NotesInput
}

type SaveNotesInput struct {
	SessionID string
	Notes     NotesInput
}

type NotesOutput struct {
	WhatStoodOut    string
	KeyIdeas        string
	QuestionsRaised string
}

type SessionOutput struct {
	ID           string
	BookID       string
	StartTime    time.Time
	EndTime      *time.Time
	StartPage    int
	EndPage      *int
	PagesRead    int
	DurationMin  int
	ReadingSpeed int
	Active       bool
	HasNotes     bool
	Notes        NotesOutput
	ReviewPath   string
}

type BookStatsOutput struct {
	TotalPages             int
	TotalDurationMin       int
	SessionCount           int
	AveragePagesPerSession int
	AverageSpeed           int
}

type GlobalStatsOutput struct {
	TotalBooks        int
	BooksReading      int
	BooksCompleted    int
	TotalSessions     int
	WeekSessions      int
	TotalPagesRead    int
	WeeklyPagesRead   int
	TotalReadingMin   int
	AverageSessionMin int
}
