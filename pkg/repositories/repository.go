package repositories

import (
	"context"
	"strings"

	"github.com/cbodonnell/lockstep/pkg/repositories/models"
)

type Repository interface {
	Close(ctx context.Context) error
	SaveMatch(ctx context.Context, match *models.Match) error
	// ListMatches returns the most recent matches first
	ListMatches(ctx context.Context, limit int) ([]*models.Match, error)
	GetMatch(ctx context.Context, id string) (*models.Match, error)
}

// NewRepository opens a postgres repository for postgres:// URLs and a sqlite
// repository at the given path otherwise.
func NewRepository(ctx context.Context, dsn string) (Repository, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return NewPostgresRepository(ctx, dsn)
	}
	return NewSQLiteRepository(ctx, dsn)
}
