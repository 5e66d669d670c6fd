package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"photo-share/migrations"
	"photo-share/pkg/config"
	"photo-share/pkg/logger"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

const usage = `Usage: migrate [flags] COMMAND [ARGS]

Commands:
  up                   apply all pending migrations
  up-by-one            apply the next pending migration
  up-to VERSION        migrate up to VERSION
  down                 roll back the latest migration
  down-to VERSION      roll back down to VERSION
  redo                 roll back and re-apply the latest migration
  status               print the status of every migration
  version              print the current schema version
  create NAME          write a new SQL migration into -dir

Flags:
`

func main() {
	dir := flag.String("dir", "migrations", "directory new migrations are written to by create")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log := logger.New()
	if err := run(context.Background(), *dir, args[0], args[1:]); err != nil {
		log.Error("migrate %s: %v", args[0], err)
		os.Exit(1)
	}
	log.Info("migrate %s: done", args[0])
}

func run(ctx context.Context, dir, command string, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := goose.OpenDBWithDriver("postgres", cfg.PostgresDSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if command == "create" {
		if len(args) == 0 {
			return fmt.Errorf("create requires a migration name")
		}
		// create writes to disk, not to the embedded files
		goose.SetBaseFS(nil)
		return goose.Create(db, dir, args[0], "sql")
	}

	goose.SetBaseFS(migrations.FS)
	return goose.RunContext(ctx, command, db, ".", args...)
}
