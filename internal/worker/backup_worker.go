package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"bakecost/internal/service"

	"github.com/rs/zerolog/log"
)

// BackupWorker executes snapshot jobs dequeued from the backup queue.
type BackupWorker struct {
	backup service.BackupService
}

func NewBackupWorker(backup service.BackupService) *BackupWorker {
	return &BackupWorker{backup: backup}
}

func (w *BackupWorker) Process(ctx context.Context, payload json.RawMessage) error {
	var p BackupJobPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("backup job payload: %w", err)
	}

	result, err := w.backup.Create(ctx, p.Description)
	if err != nil {
		log.Error().Err(err).Msg("backup_worker: snapshot failed")
		return err
	}

	log.Info().Str("path", result.Path).Msg("backup_worker: snapshot written")
	return nil
}
