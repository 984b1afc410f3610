// Command adminctl manages admin panel accounts directly in the database.
//
//	adminctl create -username ana -password '...'
//	adminctl check  -username ana -password '...'
//	adminctl list
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/petgroom/petgroom-api/internal/config"
	"github.com/petgroom/petgroom-api/internal/domain/admin"
	"github.com/petgroom/petgroom-api/internal/pkg/database"
	"github.com/petgroom/petgroom-api/internal/pkg/logger"
	"github.com/petgroom/petgroom-api/internal/pkg/password"
)

func main() {
	cfg := config.Load()
	logCloser := logger.Init(logger.Config{Level: "warn", Environment: "development"})
	defer logCloser.Close()

	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	if cfg.StorageDriver == config.StorageMemory {
		log.Fatal().Msg("adminctl needs a persistent STORAGE_DRIVER (postgres or sqlite)")
	}

	db, err := database.Open(cfg.StorageDriver, cfg.DatabaseURL, cfg.SQLitePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close(db)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure schema")
	}

	if err := run(ctx, db, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, db *sqlx.DB, cmd string, args []string, out io.Writer) error {
	repo := admin.NewRepository(db)

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	username := fs.String("username", "", "admin username")
	pwd := fs.String("password", "", "admin password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	switch cmd {
	case "create":
		if *username == "" || *pwd == "" {
			return fmt.Errorf("-username and -password are required")
		}
		existing, err := repo.GetByUsername(ctx, *username)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("admin %q already exists", existing.Username)
		}
		// EnsureDefaultAdmin creates exactly one account when it is missing
		svc := admin.NewService(repo, nil, admin.NewMemoryRevocationStore())
		if err := svc.EnsureDefaultAdmin(ctx, *username, *pwd); err != nil {
			return err
		}
		fmt.Fprintf(out, "Admin %s created\n", *username)

	case "check":
		u, err := repo.GetByUsername(ctx, *username)
		if err != nil {
			return err
		}
		if u == nil {
			return fmt.Errorf("admin %q not found", *username)
		}
		if u.PasswordHash == "" {
			return fmt.Errorf("admin %q has an empty password hash", u.Username)
		}
		fmt.Fprintf(out, "Admin found: %s (%s)\n", u.Username, u.ID)
		fmt.Fprintf(out, "Password verification result: %v\n", password.Verify(*pwd, u.PasswordHash))

	case "list":
		var rows []struct {
			ID        string    `db:"id"`
			Username  string    `db:"username"`
			CreatedAt time.Time `db:"created_at"`
		}
		if err := db.SelectContext(ctx, &rows, `SELECT id, username, created_at FROM admin_users ORDER BY username`); err != nil {
			return fmt.Errorf("list admins: %w", err)
		}
		for _, r := range rows {
			fmt.Fprintf(out, "%s | %s | %s\n", r.ID, r.Username, r.CreatedAt.Format(time.RFC3339))
		}
		fmt.Fprintf(out, "Total admins: %d\n", len(rows))

	default:
		usage(out)
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: adminctl <create|check|list> [-username name] [-password pass]")
}
