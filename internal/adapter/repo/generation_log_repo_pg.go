package repo

import (
	"context"
	"fmt"

	"productstudio/internal/domain"
	"productstudio/internal/infra"
	"productstudio/internal/sqlinline"
)

// GenerationLogRepositoryPG implements domain.GenerationLogRepository using PostgreSQL.
type GenerationLogRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewGenerationLogRepositoryPG(sql infra.SQLExecutor) *GenerationLogRepositoryPG {
	return &GenerationLogRepositoryPG{sql: sql}
}

func (r *GenerationLogRepositoryPG) Append(ctx context.Context, e *domain.GenerationLog) error {
	if _, err := r.sql.Exec(ctx, sqlinline.QInsertGeneratedImage, e.ID, e.Prompt, e.ImageURL, e.Model, e.Size, e.CreatedAt); err != nil {
		return fmt.Errorf("%w: insert generation log: %v", domain.ErrPersistFailed, err)
	}
	return nil
}

func (r *GenerationLogRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.GenerationLog, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListGeneratedImages, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list generation logs: %v", domain.ErrPersistFailed, err)
	}
	defer rows.Close()

	var items []domain.GenerationLog
	for rows.Next() {
		var e domain.GenerationLog
		if err := rows.Scan(&e.ID, &e.Prompt, &e.ImageURL, &e.Model, &e.Size, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan generation log: %v", domain.ErrPersistFailed, err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list generation logs: %v", domain.ErrPersistFailed, err)
	}
	return items, nil
}

var _ domain.GenerationLogRepository = (*GenerationLogRepositoryPG)(nil)
