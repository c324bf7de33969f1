package service

import (
	"context"
	"fmt"

	"inkblog/internal/repository"
)

type TablesService interface {
	// Health pings the database and returns the number of public tables.
	Health(ctx context.Context) (int, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{tablesRepo: tablesRepo}
}

func (t *tablesService) Health(ctx context.Context) (int, error) {
	if err := t.tablesRepo.Ping(ctx); err != nil {
		return 0, fmt.Errorf("ping database: %w", err)
	}

	countTables, err := t.tablesRepo.CountTablesDB(ctx)
	if err != nil {
		return 0, err
	}

	return countTables, nil
}
