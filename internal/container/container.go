package container

import (
	"context"
	"fmt"

	"gosurvey/adapters/db"
	"gosurvey/adapters/excel"
	"gosurvey/adapters/llm"
	"gosurvey/adapters/sheets"
	"gosurvey/app"
	"gosurvey/domain/survey"
	"gosurvey/internal/config"
	"gosurvey/internal/logging"
	"gosurvey/internal/migration"
	"gosurvey/internal/report"
	"gosurvey/internal/usage"
	"gosurvey/ports"
	"gosurvey/ui"

	"github.com/jmoiron/sqlx"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config

	// Infrastructure
	DB     *sqlx.DB
	Source ports.SheetSource

	// Repositories (data access layer)
	TabRepo ports.TabRepository
	RunRepo ports.RefreshRunRepository

	// Report text
	Summarizer ports.Summarizer
	Usage      *usage.Tracker
	Assembler  *report.Assembler

	// Services
	Snapshots *app.SnapshotService
	Dashboard *app.DashboardService

	logger *logging.Logger
}

// New creates a new dependency injection container
func New(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	return &Container{Config: cfg, logger: logging.Default}, nil
}

// OpenDatabase connects to the cache database and applies the schema
func (c *Container) OpenDatabase(ctx context.Context) error {
	conn, err := db.Open(ctx, c.Config.Database.Driver, c.Config.Database.URL)
	if err != nil {
		return err
	}
	if err := migration.NewRunner().Run(ctx, conn); err != nil {
		conn.Close()
		return err
	}
	return c.InitWithDatabase(conn)
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(conn *sqlx.DB) error {
	if conn == nil {
		return fmt.Errorf("database connection cannot be nil")
	}
	c.DB = conn
	c.TabRepo = db.NewTabRepository(conn)
	c.RunRepo = db.NewRefreshRunRepository(conn)
	return nil
}

// InitServices wires the source, summarizer and services. Without a
// database the snapshot is neither cached nor seeded from the cache.
func (c *Container) InitServices() error {
	c.Source = newSource(c.Config.Sheet)
	c.logger.Info("[Container] survey source: %s", c.Source.Describe())

	if c.Config.AI.Enabled() {
		if err := c.initSummarizer(); err != nil {
			c.logger.Warn("[Container] summarizer disabled: %v", err)
		}
	} else {
		c.logger.Info("[Container] no OPENAI_API_KEY, insight text is truncated instead of summarized")
	}
	c.Assembler = report.NewAssembler(c.Summarizer, report.Band{
		Min: c.Config.Report.MinChars,
		Max: c.Config.Report.MaxChars,
	})

	var tabs ports.TabRepository
	var runs ports.RefreshRunRepository
	if c.DB != nil {
		tabs, runs = c.TabRepo, c.RunRepo
	}
	c.Snapshots = app.NewSnapshotService(c.Source, tabs, runs, app.SnapshotConfig{
		Tabs: map[survey.Stage]string{
			survey.StageIntake: c.Config.Sheet.TabIntake,
			survey.StageCEO:    c.Config.Sheet.TabCEO,
			survey.StageTech:   c.Config.Sheet.TabTech,
			survey.StageStaff:  c.Config.Sheet.TabStaff,
		},
		Fields:          survey.DefaultFieldMaps(),
		FetchTimeout:    c.Config.Sheet.FetchTimeout,
		RefreshInterval: c.Config.Sheet.RefreshInterval,
	})
	c.Dashboard = app.NewDashboardService(c.Snapshots, c.Assembler)
	if c.Usage != nil {
		c.Dashboard.WithUsage(c.Usage)
	}
	return nil
}

// initSummarizer creates the LLM-backed summarizer
func (c *Container) initSummarizer() error {
	client, err := llm.NewClient(llm.Config{
		Model:       c.Config.AI.Model,
		APIKey:      c.Config.AI.OpenAIKey,
		BaseURL:     c.Config.AI.BaseURL,
		Temperature: 0.2,
		MaxTokens:   c.Config.AI.MaxTokens,
		Timeout:     c.Config.AI.Timeout,
	})
	if err != nil {
		return err
	}
	c.Usage = usage.NewTracker()
	c.Summarizer = llm.NewSummarizer(client, c.Config.AI.Model, c.Config.AI.MaxTokens).WithUsage(c.Usage)
	return nil
}

// NewUIServer builds the web server on top of the services
func (c *Container) NewUIServer() (*ui.Server, error) {
	if c.Dashboard == nil {
		return nil, fmt.Errorf("services not initialized")
	}
	return ui.NewServer(c.Dashboard, c.Snapshots, c.Config.Server.GinMode)
}

// newSource picks the spreadsheet reader. A local file is always read as a
// workbook.
func newSource(cfg config.SheetConfig) ports.SheetSource {
	if cfg.File != "" || cfg.Format == "xlsx" {
		return excel.NewWorkbookReader(excel.Config{
			FilePath: cfg.File,
			SheetID:  cfg.ID,
			BaseURL:  cfg.BaseURL,
			Timeout:  cfg.FetchTimeout,
		})
	}
	return sheets.NewCSVReader(sheets.Config{
		SheetID: cfg.ID,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.FetchTimeout,
	})
}

// Shutdown gracefully shuts down all components
func (c *Container) Shutdown(ctx context.Context) error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
