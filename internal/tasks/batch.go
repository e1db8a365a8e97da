package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"fleet_datagen/internal/database"
)

// writeInBatches upserts records in chunks of at most batchSize, one
// transaction per chunk. Chunk boundaries carry no meaning beyond bounding the
// size of a single write. A failed chunk aborts the write; earlier chunks stay committed.
func writeInBatches[T any](ctx context.Context, repo database.Repository[T], records []T, batchSize int) error {
	if batchSize <= 0 {
		return fmt.Errorf("batch size must be greater than 0, got %d", batchSize)
	}

	for start := 0; start < len(records); start += batchSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(start+batchSize, len(records))
		if err := repo.UpsertBatch(ctx, records[start:end]); err != nil {
			return fmt.Errorf("failed to write batch [%d, %d): %w", start, end, err)
		}

		slog.Debug("Wrote batch of records",
			"batch_start", start,
			"batch_size", end-start,
			"total", len(records),
		)
	}

	return nil
}
