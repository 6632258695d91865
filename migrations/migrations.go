// Package migrations embeds the SQL schema for the snapshot store.
package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"strings"

	"github.com/cmlabs-hris/hris-duty-report/internal/pkg/database"
)

//go:embed *.sql
var files embed.FS

// Up applies every *.up.sql file in name order. Statements are idempotent, so
// running Up on an already migrated database is a no-op.
func Up(ctx context.Context, db *database.DB) error {
	names, err := fs.Glob(files, "*.up.sql")
	if err != nil {
		return err
	}
	sort.Strings(names)

	for _, name := range names {
		sql, err := files.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := db.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("apply migration %s: %w", name, err)
		}
		slog.Info("Migration applied", "name", strings.TrimSuffix(name, ".up.sql"))
	}
	return nil
}
