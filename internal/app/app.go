// Package app provides application-level orchestration and dependency injection.
// This package wires together all components and manages the application lifecycle.
package app

import (
	"log/slog"
	"os"
	"sync"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"github.com/tejashwikalptaru/govis/internal/adapter/audio"
	"github.com/tejashwikalptaru/govis/internal/adapter/audio/analyser"
	"github.com/tejashwikalptaru/govis/internal/adapter/audio/file"
	"github.com/tejashwikalptaru/govis/internal/adapter/audio/mock"
	"github.com/tejashwikalptaru/govis/internal/adapter/eventbus"
	fyneui "github.com/tejashwikalptaru/govis/internal/adapter/ui/fyne"
	"github.com/tejashwikalptaru/govis/internal/adapter/ui/fyne/widgets/visualizer"
	"github.com/tejashwikalptaru/govis/internal/domain"
	"github.com/tejashwikalptaru/govis/internal/logger"
	"github.com/tejashwikalptaru/govis/internal/ports"
	"github.com/tejashwikalptaru/govis/internal/service"
)

// SourceMode selects what is visualized at startup.
type SourceMode int

const (
	// SourceNone waits for the user to pick a source
	SourceNone SourceMode = iota

	// SourceFile opens Config.FilePath
	SourceFile

	// SourceMicrophone opens the default capture device
	SourceMicrophone

	// SourceDemo plays a generated tone, no audio devices involved
	SourceDemo
)

// Application is the root application structure that holds all dependencies.
// It follows the Dependency Injection pattern with constructor-based injection.
type Application struct {
	config Config

	// Core dependencies
	logger  *slog.Logger
	fyneApp fyne.App

	// Infrastructure
	eventBus  *eventbus.SyncEventBus
	sources   ports.SourceFactory
	scheduler *fyneui.AnimationScheduler
	surface   *visualizer.Surface

	// Services
	driver        *service.AnimationDriver
	visualization *service.VisualizationService

	// UI
	presenter  *fyneui.Presenter
	mainWindow *fyneui.MainWindow

	shutdownOnce sync.Once
}

// Config holds application configuration.
type Config struct {
	// AppID is the unique application identifier
	AppID string

	// AppName is the display name
	AppName string

	// LogLevel controls logging verbosity
	LogLevel slog.Level

	// LogFormat is "text" or "json"
	LogFormat string

	// InitialOptions are the display options shown at startup
	InitialOptions domain.DisplayOptions

	// Source selects the startup source
	Source SourceMode

	// FilePath is opened when Source is SourceFile
	FilePath string

	// DemoFrequency is the tone frequency in Hz for SourceDemo
	DemoFrequency float64

	// Silent discards file playback instead of using the speakers
	Silent bool

	// Sources overrides the source factory (nil for the real devices)
	Sources ports.SourceFactory

	// TestFyneApp allows injecting a test Fyne app for testing (nil for production)
	TestFyneApp fyne.App
}

// DefaultConfig returns the default application configuration.
func DefaultConfig() Config {
	loggerCfg := logger.DefaultConfig()
	return Config{
		AppID:          "com.govis.app",
		AppName:        "GoVis",
		LogLevel:       loggerCfg.Level,
		LogFormat:      loggerCfg.Format,
		InitialOptions: domain.DefaultDisplayOptions(),
		Source:         SourceNone,
		DemoFrequency:  440,
	}
}

// NewApplication creates a new application with all dependencies wired.
// This is the main dependency injection function.
func NewApplication(config Config) (*Application, error) {
	if err := config.InitialOptions.Validate(); err != nil {
		return nil, err
	}
	if config.Source == SourceFile && config.FilePath == "" {
		return nil, domain.NewValidationError("file", config.FilePath, "a file source needs a path")
	}

	app := &Application{config: config}

	// Step 1: Create Fyne application
	if config.TestFyneApp != nil {
		app.fyneApp = config.TestFyneApp
	} else {
		app.fyneApp = fyneapp.NewWithID(config.AppID)
	}

	// Step 2: Create logger
	app.logger = logger.NewLogger(logger.Config{
		Level:  config.LogLevel,
		Format: config.LogFormat,
		Output: os.Stderr,
	})
	app.logger.Info("initializing application",
		slog.String("app_id", config.AppID),
		slog.String("app_name", config.AppName),
		slog.String("version", GetVersionInfo().FullString()))

	// Step 3: Create an event bus
	app.eventBus = eventbus.NewSyncEventBus()
	app.eventBus.SetLogger(app.logger.With(slog.String("component", "eventbus")))
	app.eventBus.SubscribeAll(func(event domain.Event) {
		app.logger.Debug("event", slog.String("type", string(event.Type())))
	})

	// Step 4: Create the audio source factory
	switch {
	case config.Sources != nil:
		app.sources = config.Sources
	default:
		var dest file.Destination = file.SpeakerDestination{}
		if config.Silent {
			dest = file.DiscardDestination{}
		}
		app.sources = audio.NewFactory(dest, app.logger.With(slog.String("component", "sources")))
	}

	// Step 5: Create the render surface and the display-refresh scheduler
	app.surface = visualizer.NewSurface()
	app.scheduler = fyneui.NewAnimationScheduler()

	// Step 6: Create services (with dependency injection)
	app.driver = service.NewAnimationDriver(
		app.logger.With(slog.String("service", "driver")),
		app.scheduler,
		app.surface,
		analyser.Factory(),
	)

	visualization, err := service.NewVisualizationService(
		app.logger.With(slog.String("service", "visualization")),
		app.eventBus,
		app.sources,
		app.driver,
		config.InitialOptions,
	)
	if err != nil {
		return nil, err
	}
	app.visualization = visualization

	// Step 7: Create UI and presenter
	app.mainWindow = fyneui.NewMainWindow(app.fyneApp, config.AppName, app.surface,
		app.logger.With(slog.String("component", "window")))
	app.presenter = fyneui.NewPresenter(
		app.logger.With(slog.String("component", "presenter")),
		app.visualization,
		app.eventBus,
		app.mainWindow,
	)
	app.mainWindow.SetPresenter(app.presenter)

	// Release devices before the window goes away.
	app.mainWindow.SetOnBeforeClose(func() {
		app.visualization.Shutdown()
	})

	return app, nil
}

// StartSource opens the configured startup source.
// Failures are reported to the user and are not fatal.
func (a *Application) StartSource() error {
	var err error
	switch a.config.Source {
	case SourceFile:
		err = a.visualization.UseFile(a.config.FilePath)
	case SourceMicrophone:
		err = a.visualization.UseMicrophone()
	case SourceDemo:
		tone := mock.NewSource(domain.SourcePlayableMedia, "Demo tone")
		tone.SetInfo(domain.SourceInfo{Name: "demo", Title: "Demo tone", SampleRate: 44100, Channels: 1})
		if err = a.visualization.UseSource(tone); err == nil {
			tone.StartTone(a.config.DemoFrequency, 0.5)
		}
	}
	if err != nil {
		a.logger.Warn("startup source failed", slog.Any("error", err))
	}
	return err
}

// Run starts the application.
// This is called from main.go after the application is created.
func (a *Application) Run() {
	a.logger.Info("GoVis started")
	a.scheduler.Start()
	_ = a.StartSource()

	// Show and run UI (blocks until the window is closed)
	a.mainWindow.Run()
}

// Shutdown gracefully shuts down the application.
// It's safe to call multiple times (idempotent).
func (a *Application) Shutdown() error {
	var err error
	a.shutdownOnce.Do(func() {
		a.logger.Info("shutting down application")

		if a.presenter != nil {
			a.presenter.Shutdown()
		}
		if a.visualization != nil {
			a.visualization.Shutdown()
		}
		if a.scheduler != nil {
			a.scheduler.Stop()
		}
		if a.eventBus != nil {
			err = a.eventBus.Close()
		}

		a.logger.Info("application shutdown complete")
	})
	return err
}

// GetEventBus returns the event bus (for testing).
func (a *Application) GetEventBus() ports.EventBus {
	return a.eventBus
}

// GetVisualizationService returns the visualization service (for testing).
func (a *Application) GetVisualizationService() *service.VisualizationService {
	return a.visualization
}

// GetDriver returns the animation driver (for testing).
func (a *Application) GetDriver() *service.AnimationDriver {
	return a.driver
}

// GetFyneApp returns the Fyne application (for testing).
func (a *Application) GetFyneApp() fyne.App {
	return a.fyneApp
}
