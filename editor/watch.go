package editor

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// startWatching begins watching the open file's directory. Watching the
// directory instead of the file itself survives write-via-rename, which
// most editors and build tools use.
func (e *Editor) startWatching() {
	if e.buf.Path == "" {
		return
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	if err := watcher.Add(filepath.Dir(e.buf.Path)); err != nil {
		watcher.Close()
		return
	}
	e.fileWatcher = watcher

	target := e.buf.Path
	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != target {
					continue
				}
				we := &FileWatchEvent{Path: ev.Name, Op: ev.Op}
				we.SetEventNow()
				e.screen.PostEvent(we)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

func (e *Editor) stopWatching() {
	if e.fileWatcher != nil {
		e.fileWatcher.Close()
		e.fileWatcher = nil
	}
}
