package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/showcase/internal/database"
)

// MaintenanceService houses destructive actions surfaced through the CLI.
type MaintenanceService struct {
	DB *sql.DB
}

// Reset wipes all promotions. It keeps the schema intact; the next start
// seeds the defaults again.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	if s.DB == nil {
		return fmt.Errorf("maintenance: db not configured")
	}
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM promotions"); err != nil {
			return fmt.Errorf("reset promotions: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return nil
}
