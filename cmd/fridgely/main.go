// fridgely tracks what is in the household's fridges and lists the recipes
// that can be made from it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/fridgely/fridgely/internal/config"
	"github.com/fridgely/fridgely/internal/database"
	"github.com/fridgely/fridgely/internal/database/seed"
	"github.com/fridgely/fridgely/internal/ingest"
	"github.com/fridgely/fridgely/internal/inventory"
	"github.com/fridgely/fridgely/internal/matching"
	"github.com/fridgely/fridgely/internal/models"
	"github.com/fridgely/fridgely/internal/repository"
	"github.com/fridgely/fridgely/internal/tui"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

type options struct {
	configPath  string
	migrateOnly bool
	seed        bool
	seedFile    string
	debug       bool
	fridges     []string
	scan        []string
	scanLabels  string
	confirm     []string
	match       bool
	prefs       models.PreferenceRequest
}

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		migrateOnly = flag.Bool("migrate-only", false, "Run migrations and exit")
		seedData    = flag.Bool("seed", false, "Install the recipe catalog and exit")
		seedFile    = flag.String("seed-file", "", "TOML recipe catalog to install (implies -seed)")
		showVersion = flag.Bool("version", false, "Show version and exit")
		debugMode   = flag.Bool("debug", false, "Enable debug logging")
		fridgeIDs   = flag.String("fridge", "", "Fridge id, or comma separated ids to match against merged")
		scan        = flag.String("scan", "", "Comma separated detected items; set each to present")
		scanLabels  = flag.String("scan-labels", "", "Label file from an external detector; set each label to present")
		confirm     = flag.String("confirm", "", "Comma separated items to mark present without lowering quantities")
		match       = flag.Bool("match", false, "Print the feasible recipes as JSON and exit")

		calorieMin, calorieMax, protein optionalFloat
	)
	flag.Var(&calorieMin, "calorie-min", "Minimum calories (default from config)")
	flag.Var(&calorieMax, "calorie-max", "Maximum calories (default from config)")
	flag.Var(&protein, "protein", "Minimum protein in grams (default from config)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("fridgely version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	opts := options{
		configPath:  *configPath,
		migrateOnly: *migrateOnly,
		seed:        *seedData || *seedFile != "",
		seedFile:    *seedFile,
		debug:       *debugMode,
		fridges:     splitList(*fridgeIDs),
		scan:        splitList(*scan),
		scanLabels:  *scanLabels,
		confirm:     splitList(*confirm),
		match:       *match,
		prefs: models.PreferenceRequest{
			CalorieMin: calorieMin.value,
			CalorieMax: calorieMax.value,
			Protein:    protein.value,
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		slog.Info("received shutdown signal", "signal", sig)
		cancel()

		// Force exit after timeout
		time.AfterFunc(10*time.Second, func() {
			slog.Error("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	if err := run(ctx, opts); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	cfg, cfgPath, err := config.Load(opts.configPath, true)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	closeLog, err := setupLogging(cfg, opts.debug)
	if err != nil {
		return err
	}
	defer closeLog()

	slog.Info("fridgely starting",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cfgPath,
	)

	dbPath, err := config.EnsureDataDir(cfg)
	if err != nil {
		return fmt.Errorf("ensuring data directory: %w", err)
	}

	backupDir, err := config.BackupDir(cfg)
	if err != nil {
		slog.Warn("failed to create backup directory", "error", err)
		backupDir = ""
	}

	db, err := database.Open(dbPath, &cfg.Database, backupDir)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		slog.Info("closing database")
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	result, err := database.Migrate(ctx, db)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if len(result.Applied) > 0 {
		slog.Info("applied migrations",
			"count", len(result.Applied),
			"to_version", result.TargetVersion,
		)
	}

	if opts.migrateOnly {
		slog.Info("migrations complete, exiting")
		return nil
	}

	if opts.seed {
		return seedCatalog(ctx, db, cfg, opts.seedFile)
	}

	store, watchPath, err := openStore(cfg, db)
	if err != nil {
		return err
	}

	adapter := ingest.NewAdapter(store, cfg.Kitchen.DefaultFridge)
	if opts.ingestMode() {
		return applyIngest(ctx, adapter, opts, os.Stdout)
	}

	fridges := opts.fridges
	if len(fridges) == 0 {
		fridges = []string{adapter.DefaultFridge()}
	}

	matcher := matching.NewService(
		repository.NewRecipeRepository(db.DB),
		store,
		cfg.Preferences.Resolved(),
	)

	if opts.match {
		results, err := matcher.MatchFridges(ctx, fridges, opts.prefs)
		if err != nil {
			return fmt.Errorf("matching recipes: %w", err)
		}
		if results == nil {
			results = []models.FeasibilityResult{}
		}
		return printJSON(os.Stdout, results)
	}

	tui.Version = Version
	tui.BuildTime = BuildTime

	slog.Info("starting TUI",
		"backend", cfg.Inventory.Backend,
		"default_fridge", adapter.DefaultFridge(),
		"watch", watchPath != "",
	)

	debounce := time.Duration(cfg.Inventory.WatchDebounceMS) * time.Millisecond
	if err := tui.Run(ctx, tui.New(cfg, store, matcher), watchPath, debounce); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	slog.Info("fridgely shutdown complete")
	return nil
}

// setupLogging installs the default slog logger. Logs go to the configured
// file as JSON; without a file they go to stderr, as text on a terminal and
// JSON otherwise.
func setupLogging(cfg *config.Config, debug bool) (func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	} else {
		switch cfg.Logging.Level {
		case config.LogLevelDebug:
			level = slog.LevelDebug
		case config.LogLevelWarn:
			level = slog.LevelWarn
		case config.LogLevelError:
			level = slog.LevelError
		}
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	logPath, err := config.EnsureLogDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	var handler slog.Handler
	closeFn := func() {}

	switch {
	case logPath != "":
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		closeFn = func() { logFile.Close() }
		handler = slog.NewJSONHandler(logFile, handlerOpts)
	case isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()):
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	default:
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	}

	slog.SetDefault(slog.New(handler))
	return closeFn, nil
}

// seedCatalog installs recipes from path, the configured seed file, or the
// built-in starter catalog, in that order of preference.
func seedCatalog(ctx context.Context, db *database.DB, cfg *config.Config, path string) error {
	if path == "" {
		path = cfg.Catalog.SeedFile
	}

	seeder := seed.NewSeeder(db.DB)

	var (
		res seed.Result
		err error
	)
	if path != "" {
		slog.Info("seeding recipe catalog", "file", path)
		res, err = seeder.SeedFile(ctx, path)
	} else {
		slog.Info("seeding starter recipe catalog")
		res, err = seeder.SeedStarter(ctx)
	}
	if err != nil {
		return fmt.Errorf("seeding catalog: %w", err)
	}

	fmt.Printf("Recipes added: %d, already present: %d\n", res.Inserted, res.Skipped)
	return nil
}

// openStore builds the configured inventory backend. The returned path is
// the file to watch for external changes, or empty when watching is off.
func openStore(cfg *config.Config, db *database.DB) (inventory.Store, string, error) {
	switch cfg.Inventory.Backend {
	case config.InventoryBackendMemory:
		return inventory.NewMemoryStore(), "", nil

	case config.InventoryBackendSQLite:
		return inventory.NewSQLStore(db.DB), "", nil

	default:
		path, err := config.InventoryPath(cfg)
		if err != nil {
			return nil, "", fmt.Errorf("resolving inventory path: %w", err)
		}
		watchPath := ""
		if cfg.Inventory.Watch {
			watchPath = path
		}
		slog.Debug("using file inventory", "path", path)
		return inventory.NewFileStore(path), watchPath, nil
	}
}

// inventoryJSON is the shape printed after -scan and -confirm.
type inventoryJSON struct {
	FridgeID string       `json:"fridge_id"`
	Items    models.Items `json:"items"`
}

func inventoryOutput(inv *models.Inventory) inventoryJSON {
	return inventoryJSON{FridgeID: inv.FridgeID, Items: inv.Items}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
