package index

import (
	"log/slog"

	"github.com/starford/dagaz/internal/activity"
)

// Sync brings the index in line with the store, which is the source of
// truth: rows without a live activity are removed, then every activity
// is upserted. Stale rows go first so a record that changed ID cannot
// collide with its old row on the (date, type) unique constraint.
func Sync(db *DB, store *activity.Store, logger *slog.Logger) error {
	indexed, err := db.AllIDs()
	if err != nil {
		return err
	}

	all := store.All()
	live := make(map[string]struct{}, len(all))
	for _, a := range all {
		live[a.ID] = struct{}{}
	}

	for id := range indexed {
		if _, ok := live[id]; !ok {
			if err := db.Delete(id); err != nil {
				logger.Warn("sync: delete failed",
					slog.String("id", id),
					slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("id", id))
			}
		}
	}

	for _, a := range all {
		if err := db.Upsert(a); err != nil {
			logger.Warn("sync: upsert failed",
				slog.String("id", a.ID),
				slog.String("error", err.Error()))
		}
	}

	return nil
}
