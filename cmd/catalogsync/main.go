package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	conf "github.com/bartek5186/catalogsync/internal/config"
	"github.com/bartek5186/catalogsync/internal/jobs"
	logs "github.com/bartek5186/catalogsync/internal/logs"
	"github.com/bartek5186/catalogsync/internal/medusa"
	"github.com/bartek5186/catalogsync/internal/runner"
	"github.com/rs/zerolog"
)

// wersję można nadpisać przez: -ldflags "-X 'main.ver=1.0.1'"
var ver = "1.0.0"

const usage = `catalogsync %s

Użycie:
  catalogsync [job ...]                   uruchamia joby (bez argumentów: "jobs" z configa)
  catalogsync fix-product <title> <cents> podmienia warianty jednego produktu
  catalogsync list                        lista jobów
  catalogsync paths                       ścieżki logów i configa
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	appDir := appDataDir("catalogsync")
	logPath := filepath.Join(appDir, "app.log")
	cfgPath := filepath.Join(appDir, "config.json")

	if len(args) > 0 {
		switch args[0] {
		case "help", "-h", "--help":
			fmt.Printf(usage, ver)
			return 0
		case "list":
			fmt.Println(strings.Join(jobs.Names(), "\n"))
			return 0
		case "paths":
			fmt.Println("Logi:", logPath)
			fmt.Println("Config:", cfgPath)
			return 0
		}
	}

	cfg, firstRun, err := conf.LoadOrCreate(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}
	log := logs.New(logPath, true, cfg.LogLevel)
	if firstRun {
		log.Info().Msgf("Utworzono domyślną konfigurację: %s", cfgPath)
	}
	log.Info().Str("version", ver).Msg("catalogsync start")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	env := jobs.NewEnv(cfg, log)
	defer env.Close()

	if len(args) > 0 && args[0] == "fix-product" {
		return fixProduct(ctx, log, env, args[1:])
	}

	names := args
	if len(names) == 0 {
		names = cfg.Jobs
	}
	results, err := runner.New(log, env).Run(ctx, names)
	if err != nil {
		log.Error().Err(err).Msg("run error")
		return 1
	}
	for _, r := range results {
		status := "OK"
		if r.Err != nil {
			status = "BŁĄD: " + r.Err.Error()
		}
		fmt.Printf("%-14s %s\n", r.Job, status)
	}
	// błędy jobów są raportowane, ale nie zmieniają kodu wyjścia
	return 0
}

// fixProduct – jedyna ścieżka kończąca się kodem != 0 przy błędzie
func fixProduct(ctx context.Context, log zerolog.Logger, env *jobs.Env, args []string) int {
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "użycie: catalogsync fix-product <title> <cents>\n")
		return 2
	}
	title := args[0]
	cents, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "niepoprawna cena %q: %v\n", args[1], err)
		return 2
	}

	// pojedynczy produkt: pełny handle w SKU, bez przycinania bazy
	opt := env.StoreOptions()
	opt.SKUBaseMaxLen = 0
	store, err := env.StoreWith(opt)
	if err != nil {
		log.Error().Err(err).Msg("DB open error")
		return 1
	}
	res, err := store.Reconcile(ctx, title, cents)
	if err != nil {
		switch {
		case errors.Is(err, medusa.ErrProductNotFound):
			fmt.Fprintf(os.Stderr, "produkt nie istnieje: %s\n", title)
		case errors.Is(err, medusa.ErrSKUCollision):
			fmt.Fprintf(os.Stderr, "konflikt SKU: %v\n", err)
		}
		log.Error().Err(err).Str("title", title).Msg("fix-product failed")
		return 1
	}

	v, err := store.Verify(ctx, title)
	if err != nil {
		log.Error().Err(err).Str("title", title).Msg("verify failed")
		return 1
	}
	fmt.Printf("%s: %d wariantów (usunięto %d, utworzono %d), cena %d–%d\n",
		title, v.Variants, res.Removed, res.Created, v.MinAmount, v.MaxAmount)
	if !v.OK(len(medusa.SuitSizes())) {
		fmt.Fprintln(os.Stderr, "weryfikacja nie przeszła")
		return 1
	}
	return 0
}

// katalog danych: CATALOGSYNC_HOME albo <UserConfigDir>/catalogsync
func appDataDir(name string) string {
	if p := os.Getenv("CATALOGSYNC_HOME"); p != "" {
		_ = os.MkdirAll(p, 0o755)
		return p
	}
	base, err := os.UserConfigDir()
	if err != nil {
		panic(err)
	}
	p := filepath.Join(base, name)
	_ = os.MkdirAll(p, 0o755)
	return p
}
