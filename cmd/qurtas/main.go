package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"qurtas/internal/bootstrap"
	goaldto "qurtas/internal/modules/goal/dto"
	librarydto "qurtas/internal/modules/library/dto"
	searchdto "qurtas/internal/modules/search/dto"
	sessiondto "qurtas/internal/modules/session/dto"
	"qurtas/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataDir string

	root := &cobra.Command{
		Use:           "qurtas",
		Short:         "Personal reading tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default $QURTAS_DATA or ~/.qurtas)")

	root.AddCommand(newTUICmd(&dataDir))
	root.AddCommand(newBookCmd(&dataDir))
	root.AddCommand(newSessionCmd(&dataDir))
	root.AddCommand(newStatsCmd(&dataDir))
	root.AddCommand(newGoalCmd(&dataDir))
	root.AddCommand(newSettingsCmd(&dataDir))
	root.AddCommand(newSearchCmd(&dataDir))
	root.AddCommand(newBackupCmd(&dataDir))
	root.AddCommand(newReindexCmd(&dataDir))
	return root
}

func loadApp(dataDir string) (*bootstrap.App, error) {
	cfg, err := config.New(dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run qurtas terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newBookCmd(dataDir *string) *cobra.Command {
	book := &cobra.Command{Use: "book", Short: "Manage the book library"}

	var title, author, status, coverURL, isbn, publisher, published, description string
	var pages, page int
	add := &cobra.Command{
		Use:   "add --title <title> --author <author> --pages <n>",
		Short: "Add a book to the library",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.LibraryCLI.Add(context.Background(), librarydto.AddBookInput{
				Title:         title,
				Author:        author,
				TotalPages:    pages,
				CurrentPage:   page,
				Status:        status,
				CoverURL:      coverURL,
				ISBN:          isbn,
				Publisher:     publisher,
				PublishedDate: published,
				Description:   description,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %q by %s (%s)\n", out.Title, out.Author, out.ID)
			return nil
		},
	}
	add.Flags().StringVar(&title, "title", "", "book title")
	add.Flags().StringVar(&author, "author", "", "book author")
	add.Flags().IntVar(&pages, "pages", 0, "total page count")
	add.Flags().IntVar(&page, "page", 0, "current page")
	add.Flags().StringVar(&status, "status", "", "initial status: reading|to-read")
	add.Flags().StringVar(&coverURL, "cover-url", "", "cover image URL")
	add.Flags().StringVar(&isbn, "isbn", "", "ISBN")
	add.Flags().StringVar(&publisher, "publisher", "", "publisher")
	add.Flags().StringVar(&published, "published", "", "published date")
	add.Flags().StringVar(&description, "description", "", "description")
	book.AddCommand(add)

	var listStatus string
	list := &cobra.Command{
		Use:   "list",
		Short: "List books",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			books, err := app.LibraryCLI.List(context.Background(), listStatus)
			if err != nil {
				return err
			}
			if len(books) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no books")
				return nil
			}
			for _, b := range books {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%d/%d (%d%%)\n", b.ID, b.Status, b.Title, b.Author, b.CurrentPage, b.TotalPages, b.Progress)
			}
			return nil
		},
	}
	list.Flags().StringVar(&listStatus, "status", "", "filter by status")
	book.AddCommand(list)

	var bookID string
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show book details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(bookID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			b, err := app.LibraryCLI.Get(context.Background(), bookID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "id: %s\ntitle: %s\nauthor: %s\nstatus: %s\nprogress: %d/%d (%d%%), %d pages left\nadded: %s\n",
				b.ID, b.Title, b.Author, b.Status, b.CurrentPage, b.TotalPages, b.Progress, b.PagesRemaining, b.DateAdded.Format(time.RFC3339))
			if b.DateCompleted != nil {
				_, _ = fmt.Fprintf(out, "completed: %s\n", b.DateCompleted.Format(time.RFC3339))
			}
			if b.ISBN != "" {
				_, _ = fmt.Fprintf(out, "isbn: %s\n", b.ISBN)
			}
			if b.Publisher != "" {
				_, _ = fmt.Fprintf(out, "publisher: %s (%s)\n", b.Publisher, b.PublishedDate)
			}
			if b.Conclusion != nil {
				_, _ = fmt.Fprintf(out, "takeaway: %s\n", b.Conclusion.Takeaway)
			}
			return nil
		},
	}
	show.Flags().StringVar(&bookID, "id", "", "book id")
	book.AddCommand(show)

	var progressID string
	var progressPage int
	progress := &cobra.Command{
		Use:   "progress --id <id> --page <n>",
		Short: "Move the book's bookmark",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(progressID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.LibraryCLI.UpdateProgress(context.Background(), progressID, progressPage)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: page %d/%d (%d%%) status=%s\n", out.Title, out.CurrentPage, out.TotalPages, out.Progress, out.Status)
			return nil
		},
	}
	progress.Flags().StringVar(&progressID, "id", "", "book id")
	progress.Flags().IntVar(&progressPage, "page", 0, "current page")
	book.AddCommand(progress)

	var editID, editTitle, editAuthor, editCover, editISBN, editPublisher, editPublished, editDescription string
	var editPages int
	edit := &cobra.Command{
		Use:   "edit --id <id>",
		Short: "Edit a book's metadata",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(editID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			input := librarydto.UpdateMetadataInput{BookID: editID}
			flags := cmd.Flags()
			if flags.Changed("title") {
				input.Title = &editTitle
			}
			if flags.Changed("author") {
				input.Author = &editAuthor
			}
			if flags.Changed("pages") {
				input.TotalPages = &editPages
			}
			if flags.Changed("cover-url") {
				input.CoverURL = &editCover
			}
			if flags.Changed("isbn") {
				input.ISBN = &editISBN
			}
			if flags.Changed("publisher") {
				input.Publisher = &editPublisher
			}
			if flags.Changed("published") {
				input.PublishedDate = &editPublished
			}
			if flags.Changed("description") {
				input.Description = &editDescription
			}
			out, err := app.LibraryCLI.UpdateMetadata(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %q by %s\n", out.Title, out.Author)
			return nil
		},
	}
	edit.Flags().StringVar(&editID, "id", "", "book id")
	edit.Flags().StringVar(&editTitle, "title", "", "book title")
	edit.Flags().StringVar(&editAuthor, "author", "", "book author")
	edit.Flags().IntVar(&editPages, "pages", 0, "total page count")
	edit.Flags().StringVar(&editCover, "cover-url", "", "cover image URL")
	edit.Flags().StringVar(&editISBN, "isbn", "", "ISBN")
	edit.Flags().StringVar(&editPublisher, "publisher", "", "publisher")
	edit.Flags().StringVar(&editPublished, "published", "", "published date")
	edit.Flags().StringVar(&editDescription, "description", "", "description")
	book.AddCommand(edit)

	var statusID, newStatus, takeaway, advice, reason, gains string
	var returnLater bool
	statusCmd := &cobra.Command{
		Use:   "status --id <id> --to <status>",
		Short: "Change a book's status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(statusID) == "" || strings.TrimSpace(newStatus) == "" {
				return fmt.Errorf("--id and --to are required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			input := librarydto.ChangeStatusInput{BookID: statusID, Status: newStatus}
			if takeaway != "" || advice != "" || reason != "" || gains != "" || returnLater {
				input.Conclusion = &librarydto.ConclusionInput{
					Takeaway:    takeaway,
					Advice:      advice,
					Reason:      reason,
					Gains:       gains,
					ReturnLater: returnLater,
				}
			}
			out, err := app.LibraryCLI.ChangeStatus(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", out.Title, out.Status)
			return nil
		},
	}
	statusCmd.Flags().StringVar(&statusID, "id", "", "book id")
	statusCmd.Flags().StringVar(&newStatus, "to", "", "target status: reading|completed|dropped|shelved|to-read")
	statusCmd.Flags().StringVar(&takeaway, "takeaway", "", "conclusion: main takeaway")
	statusCmd.Flags().StringVar(&advice, "advice", "", "conclusion: advice for others")
	statusCmd.Flags().StringVar(&reason, "reason", "", "conclusion: reason for stopping")
	statusCmd.Flags().StringVar(&gains, "gains", "", "conclusion: what was gained")
	statusCmd.Flags().BoolVar(&returnLater, "return-later", false, "conclusion: plan to return to this book")
	book.AddCommand(statusCmd)

	var deleteID string
	deleteCmd := &cobra.Command{
		Use:   "delete --id <id>",
		Short: "Delete a book and its sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(deleteID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.LibraryCLI.Delete(context.Background(), deleteID)
			if err != nil {
				return err
			}
			if !out.Removed {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no such book")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted book and %d session(s)\n", out.SessionsRemoved)
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&deleteID, "id", "", "book id")
	book.AddCommand(deleteCmd)

	return book
}

func notesInput(stoodOut, keyIdeas, questions *string) sessiondto.NotesInput {
	notes := sessiondto.NotesInput{}
	if *stoodOut != "" {
		notes.WhatStoodOut = stoodOut
	}
	if *keyIdeas != "" {
		notes.KeyIdeas = keyIdeas
	}
	if *questions != "" {
		notes.QuestionsRaised = questions
	}
	return notes
}

func newSessionCmd(dataDir *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Reading session lifecycle"}

	var startBookID string
	start := &cobra.Command{
		Use:   "start --book-id <id>",
		Short: "Start a reading session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(startBookID) == "" {
				return fmt.Errorf("--book-id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Start(context.Background(), startBookID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s started at page %d\n", out.ID, out.StartPage)
			return nil
		},
	}
	start.Flags().StringVar(&startBookID, "book-id", "", "book id")
	session.AddCommand(start)

	var endSessionID, endBookID, endStoodOut, endKeyIdeas, endQuestions string
	var endPage int
	end := &cobra.Command{
		Use:   "end --page <n>",
		Short: "End a session and record the page reached",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			sessionID := endSessionID
			if strings.TrimSpace(sessionID) == "" {
				if strings.TrimSpace(endBookID) == "" {
					return fmt.Errorf("--session-id or --book-id is required")
				}
				active, err := app.SessionCLI.Active(ctx, endBookID)
				if err != nil {
					return err
				}
				sessionID = active.ID
			}
			out, err := app.SessionCLI.Complete(ctx, sessionID, endPage, notesInput(&endStoodOut, &endKeyIdeas, &endQuestions))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session ended: %d pages in %d min", out.PagesRead, out.DurationMin)
			if out.ReadingSpeed > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), " (%d pages/hr)", out.ReadingSpeed)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			if out.ReviewPath != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "review: %s\n", out.ReviewPath)
			}
			return nil
		},
	}
	end.Flags().StringVar(&endSessionID, "session-id", "", "session id (defaults to the book's active session)")
	end.Flags().StringVar(&endBookID, "book-id", "", "book id, used to find the active session")
	end.Flags().IntVar(&endPage, "page", 0, "page reached")
	end.Flags().StringVar(&endStoodOut, "stood-out", "", "note: what stood out")
	end.Flags().StringVar(&endKeyIdeas, "key-ideas", "", "note: key ideas")
	end.Flags().StringVar(&endQuestions, "questions", "", "note: questions raised")
	session.AddCommand(end)

	var noteSessionID, noteStoodOut, noteKeyIdeas, noteQuestions string
	note := &cobra.Command{
		Use:   "note --session-id <id>",
		Short: "Attach or amend session notes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(noteSessionID) == "" {
				return fmt.Errorf("--session-id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.SaveNotes(context.Background(), noteSessionID, notesInput(&noteStoodOut, &noteKeyIdeas, &noteQuestions))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "notes saved for session %s\n", out.ID)
			return nil
		},
	}
	note.Flags().StringVar(&noteSessionID, "session-id", "", "session id")
	note.Flags().StringVar(&noteStoodOut, "stood-out", "", "note: what stood out")
	note.Flags().StringVar(&noteKeyIdeas, "key-ideas", "", "note: key ideas")
	note.Flags().StringVar(&noteQuestions, "questions", "", "note: questions raised")
	session.AddCommand(note)

	var discardSessionID string
	discard := &cobra.Command{
		Use:   "discard --session-id <id>",
		Short: "Discard an active session without saving",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(discardSessionID) == "" {
				return fmt.Errorf("--session-id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.SessionCLI.Discard(context.Background(), discardSessionID); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "session discarded")
			return nil
		},
	}
	discard.Flags().StringVar(&discardSessionID, "session-id", "", "session id")
	session.AddCommand(discard)

	var activeBookID string
	active := &cobra.Command{
		Use:   "active --book-id <id>",
		Short: "Show the book's active session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(activeBookID) == "" {
				return fmt.Errorf("--book-id is required")
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.SessionCLI.Active(context.Background(), activeBookID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session %s started %s at page %d (%d min so far)\n",
				out.ID, out.StartTime.Format(time.RFC3339), out.StartPage, out.DurationMin)
			return nil
		},
	}
	active.Flags().StringVar(&activeBookID, "book-id", "", "book id")
	session.AddCommand(active)

	var listBookID string
	list := &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			sessions, err := app.SessionCLI.List(context.Background(), listBookID)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range sessions {
				state := "done"
				if s.Active {
					state = "active"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%d pages\t%d min\t%s\n",
					s.ID, s.BookID, state, s.PagesRead, s.DurationMin, s.StartTime.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
	list.Flags().StringVar(&listBookID, "book-id", "", "filter by book id")
	session.AddCommand(list)

	return session
}

func newStatsCmd(dataDir *string) *cobra.Command {
	var bookID string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show reading statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if strings.TrimSpace(bookID) != "" {
				s, err := app.SessionCLI.BookStats(context.Background(), bookID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "sessions: %d\npages read: %d\ntime: %d min\navg pages/session: %d\navg speed: %d pages/hr\n",
					s.SessionCount, s.TotalPages, s.TotalDurationMin, s.AveragePagesPerSession, s.AverageSpeed)
				return nil
			}
			s, err := app.SessionCLI.GlobalStats(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "books: %d (%d reading, %d completed)\n", s.TotalBooks, s.BooksReading, s.BooksCompleted)
			_, _ = fmt.Fprintf(out, "sessions: %d total, %d this week\n", s.TotalSessions, s.WeekSessions)
			_, _ = fmt.Fprintf(out, "pages: %d total, %d this week\n", s.TotalPagesRead, s.WeeklyPagesRead)
			_, _ = fmt.Fprintf(out, "time: %d min total, %d min avg session\n", s.TotalReadingMin, s.AverageSessionMin)
			return nil
		},
	}
	stats.Flags().StringVar(&bookID, "book-id", "", "show stats for one book")
	return stats
}

func newGoalCmd(dataDir *string) *cobra.Command {
	goal := &cobra.Command{Use: "goal", Short: "Weekly reading goal"}

	var pagesTarget, sessionsTarget int
	var electiveBooks []string
	var theme string
	set := &cobra.Command{
		Use:   "set --pages <n> --sessions <n>",
		Short: "Set this week's goal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			out, err := app.GoalCLI.SetGoal(context.Background(), goaldto.SetGoalInput{
				PagesTarget:    pagesTarget,
				SessionsTarget: sessionsTarget,
				ElectiveBooks:  electiveBooks,
				WeeklyTheme:    theme,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "goal set for week of %s: %d pages, %d sessions\n",
				out.WeekStart.Format("2006-01-02"), out.PagesTarget, out.SessionsTarget)
			return nil
		},
	}
	set.Flags().IntVar(&pagesTarget, "pages", 0, "pages target for the week")
	set.Flags().IntVar(&sessionsTarget, "sessions", 0, "sessions target for the week")
	set.Flags().StringSliceVar(&electiveBooks, "books", nil, "book ids this goal focuses on")
	set.Flags().StringVar(&theme, "theme", "", "weekly theme")
	goal.AddCommand(set)

	goal.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show this week's goal and progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			p, err := app.GoalCLI.Progress(context.Background())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "week of %s", p.Goal.WeekStart.Format("2006-01-02"))
			if p.Goal.WeeklyTheme != "" {
				_, _ = fmt.Fprintf(out, " (%s)", p.Goal.WeeklyTheme)
			}
			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprintf(out, "pages: %d/%d (%d%%)\n", p.Pages.Current, p.Pages.Target, p.Pages.Percentage)
			_, _ = fmt.Fprintf(out, "sessions: %d/%d (%d%%)\n", p.Sessions.Current, p.Sessions.Target, p.Sessions.Percentage)
			_, _ = fmt.Fprintf(out, "overall: %d%%", p.OverallPercentage)
			if p.AllAchieved {
				_, _ = fmt.Fprint(out, " achieved")
			}
			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprintf(out, "days remaining: %d\n", p.DaysRemaining)
			if p.SuggestedPace != nil {
				_, _ = fmt.Fprintf(out, "pace to finish: %d pages/day, %d sessions/day\n",
					p.SuggestedPace.PagesPerDay, p.SuggestedPace.SessionsPerDay)
			}
			return nil
		},
	})

	return goal
}

func newSettingsCmd(dataDir *string) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "App settings"}

	settings.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			s, err := app.GoalCLI.Settings(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme: %s\nnotifications: %t\ndefault session: %d min\n",
				s.Theme, s.Notifications, s.DefaultSessionMinutes)
			return nil
		},
	})

	var theme, notifications string
	var sessionMinutes int
	set := &cobra.Command{
		Use:   "set",
		Short: "Update settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			input := goaldto.UpdateSettingsInput{}
			if theme != "" {
				input.Theme = &theme
			}
			if notifications != "" {
				enabled, err := strconv.ParseBool(notifications)
				if err != nil {
					return fmt.Errorf("--notifications must be true or false")
				}
				input.Notifications = &enabled
			}
			if cmd.Flags().Changed("session-minutes") {
				input.DefaultSessionMinutes = &sessionMinutes
			}
			s, err := app.GoalCLI.UpdateSettings(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "theme: %s\nnotifications: %t\ndefault session: %d min\n",
				s.Theme, s.Notifications, s.DefaultSessionMinutes)
			return nil
		},
	}
	set.Flags().StringVar(&theme, "theme", "", "UI theme")
	set.Flags().StringVar(&notifications, "notifications", "", "enable notifications: true|false")
	set.Flags().IntVar(&sessionMinutes, "session-minutes", 0, "default session length in minutes")
	settings.AddCommand(set)

	return settings
}

func newSearchCmd(dataDir *string) *cobra.Command {
	var limit, add int
	var status string
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the book catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			ctx := context.Background()
			candidates, err := app.SearchCLI.Search(ctx, strings.Join(args, " "), limit)
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no matches")
				return nil
			}
			if add > 0 {
				if add > len(candidates) {
					return fmt.Errorf("--add %d is out of range, got %d result(s)", add, len(candidates))
				}
				out, err := app.SearchCLI.AddToLibrary(ctx, searchdto.AddCandidateInput{
					Candidate: candidates[add-1],
					Status:    status,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %q (%s)\n", out.Title, out.BookID)
				return nil
			}
			for i, c := range candidates {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s by %s", i+1, c.Title, c.Author)
				if c.TotalPages > 0 {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " (%d pages)", c.TotalPages)
				}
				if c.ISBN != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " isbn=%s", c.ISBN)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	search.Flags().IntVar(&limit, "limit", 0, "max results")
	search.Flags().IntVar(&add, "add", 0, "add the Nth result to the library")
	search.Flags().StringVar(&status, "status", "to-read", "status for the added book: reading|to-read")
	return search
}

func newBackupCmd(dataDir *string) *cobra.Command {
	backup := &cobra.Command{Use: "backup", Short: "Export and import all data"}

	var outPath string
	export := &cobra.Command{
		Use:   "export",
		Short: "Export all collections as one JSON document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			payload, err := app.Backup.Export(context.Background())
			if err != nil {
				return err
			}
			if outPath == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				return nil
			}
			if err := os.WriteFile(outPath, payload, 0o644); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", outPath)
			return nil
		},
	}
	export.Flags().StringVar(&outPath, "out", "", "write to file instead of stdout")
	backup.AddCommand(export)

	backup.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Restore collections from an exported snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.Backup.Import(context.Background(), payload); err != nil {
				return err
			}
			if err := app.LibraryCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "import completed")
			return nil
		},
	})

	return backup
}

func newReindexCmd(dataDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite index from the JSON collections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataDir)
			if err != nil {
				return err
			}
			if err := app.LibraryCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	}
}
