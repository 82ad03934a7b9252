package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/showcase/internal/config"
	"github.com/jask/showcase/internal/database"
	"github.com/jask/showcase/internal/database/repository"
	"github.com/jask/showcase/internal/logging"
	"github.com/jask/showcase/internal/navigate"
	"github.com/jask/showcase/internal/service"
	"github.com/jask/showcase/internal/source"
	"github.com/jask/showcase/internal/tui"
)

var (
	cfgPath  string
	verbose  bool
	noOpener bool
)

var rootCmd = &cobra.Command{
	Use:   "showcase",
	Short: "Promotional carousel for the marketplace home page",
	Long: `showcase shows the home-page promotions as auto-advancing carousels.

Drag a strip sideways with the mouse to swipe, click an item to open its
link, or use the keyboard. Run without arguments to start the home page.`,
	SilenceUsage: true,
	RunE:         runHome,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $SHOWCASE_CONFIG or ~/.config/showcase/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.Flags().BoolVar(&noOpener, "no-open", false, "log activated links instead of opening them")

	rootCmd.AddCommand(itemsCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app is what every command needs once config is loaded.
type app struct {
	cfg        config.Config
	log        *zap.Logger
	db         *sql.DB
	promotions *service.PromotionService
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(cfg.Log, verbose)
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path, cfg.Database.Migrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	log.Debug("database ready", zap.String("path", cfg.Database.Path))
	return &app{
		cfg:        cfg,
		log:        log,
		db:         db,
		promotions: &service.PromotionService{DB: db, Promotions: repository.NewPromotionRepo(db)},
	}, nil
}

func (a *app) Close() {
	_ = a.db.Close()
	_ = a.log.Sync()
}

// itemSource picks the configured source and puts the built-in assets
// behind it.
func (a *app) itemSource() source.Source {
	var primary source.Source = source.DB{Promotions: a.promotions.Promotions}
	if a.cfg.Source.Kind == "file" {
		primary = source.File{Path: a.cfg.Source.File}
	}
	return &source.Fallback{Primary: primary, Static: source.DefaultAssets(), Log: a.log}
}

func runHome(cmd *cobra.Command, _ []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := setup(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	var nav navigate.Navigator = navigate.Opener{Log: a.log}
	if noOpener {
		nav = &navigate.Recorder{Log: a.log}
	}
	deps := tui.Deps{Source: a.itemSource(), Navigator: nav, Logger: a.log}
	if a.cfg.Source.Kind == "file" && a.cfg.Source.Watch {
		ch, err := source.Watch(ctx, a.cfg.Source.File, a.log)
		if err != nil {
			a.log.Warn("items file not watched", zap.Error(err))
		} else {
			deps.Reload = ch
		}
	}

	p := tea.NewProgram(tui.New(ctx, a.cfg, deps),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
