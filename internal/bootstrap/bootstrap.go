package bootstrap

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	goalinadapter "qurtas/internal/modules/goal/adapter/in"
	goaloutadapter "qurtas/internal/modules/goal/adapter/out"
	goalservice "qurtas/internal/modules/goal/service"
	goalusecase "qurtas/internal/modules/goal/usecase"
	libraryinadapter "qurtas/internal/modules/library/adapter/in"
	libraryoutadapter "qurtas/internal/modules/library/adapter/out"
	libraryservice "qurtas/internal/modules/library/service"
	libraryusecase "qurtas/internal/modules/library/usecase"
	searchinadapter "qurtas/internal/modules/search/adapter/in"
	searchoutadapter "qurtas/internal/modules/search/adapter/out"
	searchservice "qurtas/internal/modules/search/service"
	searchusecase "qurtas/internal/modules/search/usecase"
	sessioninadapter "qurtas/internal/modules/session/adapter/in"
	sessionoutadapter "qurtas/internal/modules/session/adapter/out"
	sessionservice "qurtas/internal/modules/session/service"
	sessionusecase "qurtas/internal/modules/session/usecase"
	"qurtas/internal/platform/backup"
	"qurtas/internal/platform/clock"
	"qurtas/internal/platform/config"
	"qurtas/internal/platform/id"
	"qurtas/internal/platform/storage"
	"qurtas/internal/platform/tx"
	uiapp "qurtas/internal/ui/app"
)

type App struct {
	LibraryCLI libraryinadapter.CLIHandler
	SessionCLI sessioninadapter.CLIHandler
	GoalCLI    goalinadapter.CLIHandler
	SearchCLI  searchinadapter.CLIHandler
	Backup     *backup.Manager
}

func New(cfg config.Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	clk := clock.SystemClock{}
	ids := id.UUID{}
	store := storage.NewFileStore(cfg.DataDir)
	txm := tx.NoopManager{}

	sessionStore := sessionoutadapter.NewJSONSessionStore(store)

	bookIndex, err := libraryoutadapter.NewSQLiteBookIndex(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new book index: %w", err)
	}
	librarySvc := libraryservice.NewBookService(
		clk, ids,
		libraryoutadapter.NewJSONBookStore(store),
		sessionStore,
		bookIndex,
		txm,
	)
	libraryUC := libraryusecase.NewInteractor(librarySvc)

	sessionSvc := sessionservice.NewReadingService(
		clk, ids,
		sessionStore,
		sessionoutadapter.NewMarkdownReviewStore(cfg.DataDir),
	)
	sessionUC := sessionusecase.NewInteractor(sessionSvc, libraryUC, clk, txm)

	goalStore := goaloutadapter.NewJSONGoalStore(store)
	goalUC := goalusecase.NewInteractor(
		goalservice.NewGoalService(clk, goalStore, goalStore),
		sessionUC,
	)

	searchUC := searchusecase.NewInteractor(
		searchservice.NewSearchService(
			searchoutadapter.NewGoogleBooksClient(nil, "", cfg.BooksAPIKey),
		),
		libraryUC,
	)

	return &App{
		LibraryCLI: libraryinadapter.NewCLIHandler(libraryUC),
		SessionCLI: sessioninadapter.NewCLIHandler(sessionUC),
		GoalCLI:    goalinadapter.NewCLIHandler(goalUC),
		SearchCLI:  searchinadapter.NewCLIHandler(searchUC),
		Backup:     backup.NewManager(store, clk),
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.LibraryCLI, app.SessionCLI, app.GoalCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
