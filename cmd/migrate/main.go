// Command migrate manages the posts, comments and likes schema.
//
//	migrate up              apply pending SQL migrations
//	migrate status          list every migration and whether it is applied
//	migrate down [version]  roll back one migration (latest applied by default)
//	migrate auto            GORM AutoMigrate, refused in production
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	"snsapi/internal/config"
	"snsapi/internal/database"

	"gorm.io/gorm"
)

type command struct {
	args string
	help string
	run  func(ctx context.Context, db *gorm.DB, cfg *config.Config, args []string) error
}

var commands = map[string]command{
	"up":     {"", "apply pending SQL migrations", migrateUp},
	"status": {"", "list migrations and their state", migrateStatus},
	"down":   {"[version]", "roll back one migration", migrateDown},
	"auto":   {"", "run GORM AutoMigrate (not in production)", migrateAuto},
}

func main() {
	timeout := flag.Duration("timeout", 2*time.Minute, "deadline for the whole operation")
	flag.Usage = printUsage
	flag.Parse()

	cmd, ok := commands[flag.Arg(0)]
	if !ok {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{})
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := cmd.run(ctx, db, cfg, flag.Args()[1:]); err != nil {
		log.Printf("migrate %s: %v", flag.Arg(0), err)
		cancel()
		os.Exit(1)
	}
}

func printUsage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "usage: migrate [-timeout d] <command>")
	for _, name := range names {
		c := commands[name]
		fmt.Fprintf(w, "  %s %s\t%s\n", name, c.args, c.help)
	}
	_ = w.Flush()
}

func migrateUp(ctx context.Context, db *gorm.DB, _ *config.Config, _ []string) error {
	before, err := database.NewMigrationStore(db).GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(ctx, db); err != nil {
		return err
	}
	after, err := database.NewMigrationStore(db).GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}
	log.Printf("schema up to date: %d applied now, %d total", len(after)-len(before), len(after))
	return nil
}

func migrateStatus(ctx context.Context, db *gorm.DB, cfg *config.Config, _ []string) error {
	status, err := database.GetSchemaStatus(ctx, db, cfg)
	if err != nil {
		return err
	}

	applied := make(map[int]bool, len(status.AppliedVersions))
	for _, v := range status.AppliedVersions {
		applied[v] = true
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "driver %s, env %s, schema mode %s\n\n", cfg.DBDriver, status.Environment, status.Mode)
	fmt.Fprintln(w, "VERSION\tNAME\tSTATE")
	for _, m := range database.GetMigrations() {
		state := "pending"
		if applied[m.Version] {
			state = "applied"
		}
		fmt.Fprintf(w, "%06d\t%s\t%s\n", m.Version, m.Name, state)
	}
	return w.Flush()
}

func migrateDown(ctx context.Context, db *gorm.DB, _ *config.Config, args []string) error {
	var version int
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		version = v
	} else {
		applied, err := database.NewMigrationStore(db).GetAppliedMigrations(ctx)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			return errors.New("nothing to roll back")
		}
		sort.Ints(applied)
		version = applied[len(applied)-1]
	}

	m := database.GetMigrationByVersion(version)
	if m == nil {
		return fmt.Errorf("unknown migration version %d", version)
	}
	if err := database.RollbackMigration(ctx, db, version); err != nil {
		return err
	}
	log.Printf("rolled back %s", m.String())
	return nil
}

func migrateAuto(ctx context.Context, db *gorm.DB, cfg *config.Config, _ []string) error {
	cfg.DBSchemaMode = database.SchemaModeAuto
	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		return err
	}
	log.Printf("auto-migrated %d models", len(database.PersistentModels()))
	return nil
}
