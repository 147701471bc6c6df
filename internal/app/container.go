// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/infra/config"
	"github.com/runoshun/teamtasks/internal/infra/jsonstore"
	"github.com/runoshun/teamtasks/internal/infra/logging"
	"github.com/runoshun/teamtasks/internal/infra/sqlstore"
	"github.com/runoshun/teamtasks/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	Root       string // Directory holding the .teamtasks directory
	DataDir    string // Path to .teamtasks
	ConfigPath string // Path to .teamtasks/config.toml
	StorePath  string // Path to the store file
}

// FindRoot walks up from dir to the nearest directory containing a
// .teamtasks directory. It returns dir itself when none is found, so
// `teamtasks init` creates the data directory in place.
func FindRoot(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	for cur := abs; ; {
		if info, err := os.Stat(domain.DataDir(cur)); err == nil && info.IsDir() {
			return cur
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return abs
		}
		cur = parent
	}
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Store        domain.Store
	Clock        domain.Clock
	ConfigLoader domain.ConfigLoader
	EventLog     domain.Logger // File logger below .teamtasks/logs

	// Pointer fields
	AppConfig *domain.Config
	Logger    *slog.Logger // Process-level messages on stderr

	closers []io.Closer

	// Configuration
	Config Config
}

// New creates a new Container for the project found from dir.
func New(dir string) (*Container, error) {
	root := FindRoot(dir)
	dataDir := domain.DataDir(root)

	configLoader := config.NewLoader(dataDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := Config{
		Root:       root,
		DataDir:    dataDir,
		ConfigPath: domain.ConfigPath(dataDir),
		StorePath:  appConfig.StorePath(dataDir),
	}

	// Default is the SQLite store; "json" only if explicitly specified
	var store domain.Store
	var closers []io.Closer
	if strings.EqualFold(appConfig.Store.Backend, domain.StoreJSON) {
		store = jsonstore.New(cfg.StorePath)
	} else {
		sqlStore := sqlstore.New(cfg.StorePath)
		store = sqlStore
		closers = append(closers, sqlStore)
	}

	level := logging.ParseLevel(appConfig.Log.Level)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	eventLog := logging.New(dataDir, level)
	closers = append(closers, eventLog)

	return &Container{
		Store:        store,
		Clock:        domain.RealClock{},
		ConfigLoader: configLoader,
		EventLog:     eventLog,
		AppConfig:    appConfig,
		Logger:       logger,
		closers:      closers,
		Config:       cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(cfg Config, store domain.Store, clock domain.Clock, logger *slog.Logger) *Container {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Container{
		Store:     store,
		Clock:     clock,
		EventLog:  domain.NopLogger{},
		AppConfig: domain.NewDefaultConfig(),
		Logger:    logger,
		Config:    cfg,
	}
}

// Close releases the store connection and open log files.
func (c *Container) Close() error {
	var errs []error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// IndentWidth returns the configured spaces per depth level.
func (c *Container) IndentWidth() int {
	return c.AppConfig.Display.IndentWidth
}

// UseCase factory methods

// InitStoreUseCase returns a new InitStore use case.
func (c *Container) InitStoreUseCase() *usecase.InitStore {
	return usecase.NewInitStore(c.Store)
}

// InitStoreInput returns the input that initializes this container's data directory.
func (c *Container) InitStoreInput() usecase.InitStoreInput {
	return usecase.InitStoreInput{
		DataDir:        c.Config.DataDir,
		ConfigPath:     c.Config.ConfigPath,
		ConfigTemplate: config.RenderTemplate(c.AppConfig),
	}
}

// NewProjectUseCase returns a new NewProject use case.
func (c *Container) NewProjectUseCase() *usecase.NewProject {
	return usecase.NewNewProject(c.Store, c.EventLog)
}

// ListProjectsUseCase returns a new ListProjects use case.
func (c *Container) ListProjectsUseCase() *usecase.ListProjects {
	return usecase.NewListProjects(c.Store, c.Store, c.EventLog)
}

// ShowProjectTreeUseCase returns a new ShowProjectTree use case.
func (c *Container) ShowProjectTreeUseCase() *usecase.ShowProjectTree {
	return usecase.NewShowProjectTree(c.Store, c.Store, c.EventLog)
}

// ShowProjectUseCase returns a new ShowProject use case.
func (c *Container) ShowProjectUseCase() *usecase.ShowProject {
	return usecase.NewShowProject(c.Store, c.Store)
}

// AddProjectMemberUseCase returns a new AddProjectMember use case.
func (c *Container) AddProjectMemberUseCase() *usecase.AddProjectMember {
	return usecase.NewAddProjectMember(c.Store, c.Store, c.EventLog)
}

// DeleteProjectUseCase returns a new DeleteProject use case.
func (c *Container) DeleteProjectUseCase() *usecase.DeleteProject {
	return usecase.NewDeleteProject(c.Store, c.EventLog)
}

// NewPersonUseCase returns a new NewPerson use case.
func (c *Container) NewPersonUseCase() *usecase.NewPerson {
	return usecase.NewNewPerson(c.Store, c.EventLog)
}

// ListPeopleUseCase returns a new ListPeople use case.
func (c *Container) ListPeopleUseCase() *usecase.ListPeople {
	return usecase.NewListPeople(c.Store)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Store, c.Store, c.Store, c.Clock, c.EventLog)
}

// ShowTaskUseCase returns a new ShowTask use case.
func (c *Container) ShowTaskUseCase() *usecase.ShowTask {
	return usecase.NewShowTask(c.Store, c.Store, c.Store, c.EventLog)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Store, c.Store, c.Store, c.EventLog)
}

// EditTaskUseCase returns a new EditTask use case.
func (c *Container) EditTaskUseCase() *usecase.EditTask {
	return usecase.NewEditTask(c.Store, c.Store, c.Clock, c.EventLog)
}

// DeleteTaskUseCase returns a new DeleteTask use case.
func (c *Container) DeleteTaskUseCase() *usecase.DeleteTask {
	return usecase.NewDeleteTask(c.Store, c.EventLog)
}

// IndentedTasksUseCase returns a new IndentedTasks use case.
func (c *Container) IndentedTasksUseCase() *usecase.IndentedTasks {
	return usecase.NewIndentedTasks(c.Store, c.Store, c.EventLog, c.IndentWidth())
}

// TaskPickerUseCase returns a new TaskPicker use case.
func (c *Container) TaskPickerUseCase() *usecase.TaskPicker {
	return usecase.NewTaskPicker(c.Store, c.Store, c.EventLog)
}

// ParentChoicesUseCase returns a new ParentChoices use case.
func (c *Container) ParentChoicesUseCase() *usecase.ParentChoices {
	return usecase.NewParentChoices(c.Store, c.EventLog, c.IndentWidth())
}

// ImportTasksUseCase returns a new ImportTasks use case.
func (c *Container) ImportTasksUseCase() *usecase.ImportTasks {
	return usecase.NewImportTasks(c.Store, c.Store, c.Store, c.Clock, c.EventLog)
}

// ExportTasksUseCase returns a new ExportTasks use case.
func (c *Container) ExportTasksUseCase() *usecase.ExportTasks {
	return usecase.NewExportTasks(c.Store, c.Store, c.Store, c.EventLog)
}
