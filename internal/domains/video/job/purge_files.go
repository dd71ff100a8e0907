package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"videocatalog-backend/internal/shared/upload"
)

const TypePurgeFiles = "video:purge_files"

// Enqueuer is the subset of asynq.Client the services need, kept small
// so tests can capture enqueued tasks.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// PurgeFilesPayload lists replaced or orphaned blob names to remove
// after the owning row has committed.
type PurgeFilesPayload struct {
	Dir   string   `json:"dir"`
	Names []string `json:"names"`
}

func NewPurgeFilesTask(dir string, names []string) (*asynq.Task, error) {
	payload, err := json.Marshal(PurgeFilesPayload{Dir: dir, Names: names})
	if err != nil {
		return nil, fmt.Errorf("marshal purge payload: %w", err)
	}
	return asynq.NewTask(TypePurgeFiles, payload, asynq.MaxRetry(5)), nil
}

// PurgeFilesHandler deletes stale video files from the blob store.
type PurgeFilesHandler struct {
	files *upload.Manager
}

func NewPurgeFilesHandler(files *upload.Manager) *PurgeFilesHandler {
	return &PurgeFilesHandler{files: files}
}

func (h *PurgeFilesHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p PurgeFilesPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal purge payload: %w: %w", err, asynq.SkipRetry)
	}

	for _, name := range p.Names {
		if err := h.files.Delete(ctx, p.Dir, name); err != nil {
			return fmt.Errorf("purge %s/%s: %w", p.Dir, name, err)
		}
		log.Info().
			Str("dir", p.Dir).
			Str("name", name).
			Msg("Purged stale video file")
	}

	return nil
}
