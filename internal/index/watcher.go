package index

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/dagaz/internal/activity"
	"github.com/starford/dagaz/internal/checksum"
	"github.com/starford/dagaz/internal/ledger"
	"github.com/starford/dagaz/internal/storage"
)

// ReloadCallback is called after the watcher reloads the store from an
// out-of-band ledger rewrite.
type ReloadCallback func()

// Watch starts an fsnotify watcher on the data directory and reacts to
// ledger file changes until ctx is cancelled. Writes made by this process
// are recognised by checksum and skipped; anything else (another process,
// a manual edit, a restore from backup) reloads the store, resyncs the
// index, and calls cb (if non-nil).
//
// Events are debounced, since editors and atomic renames produce bursts of
// notifications for a single logical change.
func Watch(ctx context.Context, db *DB, store *activity.Store, files storage.Provider, dataRoot string, logger *slog.Logger, cb ReloadCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dataRoot); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", dataRoot))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(200 * time.Millisecond)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reloadCh:
			reloadLedger(db, store, files, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != ledger.FileName {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			scheduleReload()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reloadLedger re-reads the ledger and resyncs the index, unless the
// current file contents match the store's own last write.
func reloadLedger(db *DB, store *activity.Store, files storage.Provider, logger *slog.Logger, cb ReloadCallback) {
	if data, err := files.Read(ledger.FileName); err == nil {
		if checksum.Sum(data) == store.LastChecksum() {
			logger.Debug("watcher: own write, skipping reload")
			return
		}
	}

	store.Reload()
	if err := Sync(db, store, logger); err != nil {
		logger.Warn("watcher: resync failed", slog.String("error", err.Error()))
		return
	}
	logger.Info("watcher: ledger reloaded from disk")
	if cb != nil {
		cb()
	}
}
