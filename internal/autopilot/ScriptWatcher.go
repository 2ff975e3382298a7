package autopilot

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// ScriptWatcher reloads a Pilot whenever its script file changes on disk.
type ScriptWatcher struct {
	path    string
	pilot   *Pilot
	watcher *fsnotify.Watcher
}

// NewScriptWatcher starts watching before it returns, so changes made right
// after the call are not missed.
func NewScriptWatcher(path string, pilot *Pilot) (*ScriptWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create script watcher: %w", err)
	}

	// The directory is watched so that files replaced by rename are seen too.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	return &ScriptWatcher{
		path:    filepath.Clean(path),
		pilot:   pilot,
		watcher: watcher,
	}, nil
}

// Run blocks until ctx is done or the watcher is closed.
func (sw *ScriptWatcher) Run(ctx context.Context) {
	defer sw.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != sw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if err := sw.pilot.ReloadFile(sw.path); err != nil {
				log.Warn("Autopilot reload failed, keeping previous script", "path", sw.path, "error", err)
				continue
			}
			log.Info("Autopilot script reloaded", "path", sw.path)
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			log.Error("Autopilot watcher error", "error", err)
		}
	}
}

// DefaultScriptName selects the embedded script in Open.
const DefaultScriptName = "default"

// Open returns a pilot for path. A real file is watched and hot reloaded
// until ctx is done; DefaultScriptName loads the embedded script.
func Open(ctx context.Context, path string) (*Pilot, error) {
	if path == DefaultScriptName {
		return NewDefault()
	}

	pilot, err := Load(path)
	if err != nil {
		return nil, err
	}

	watcher, err := NewScriptWatcher(path, pilot)
	if err != nil {
		pilot.Close()
		return nil, err
	}
	go watcher.Run(ctx)

	log.Info("Autopilot loaded", "path", path)
	return pilot, nil
}
