package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/pictree/pictree/internal/logging"
)

// inboxDebounce coalesces the burst of events a single file drop
// produces (create, one write per chunk) into one sweep.
const inboxDebounce = 300 * time.Millisecond

// StartInboxWatcher watches the inbox directory and nudges the program
// with an InboxChangedMsg whenever files land there. The returned stop
// function shuts the watcher down.
func StartInboxWatcher(dir string, p *tea.Program) (func(), error) {
	log := logging.New("inbox")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})

	go func() {
		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
					continue
				}
				if strings.HasPrefix(lastPathElement(event.Name), ".") {
					continue
				}
				log.Debug("inbox changed", "path", event.Name, "op", event.Op.String())
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(inboxDebounce, func() {
					p.Send(InboxChangedMsg{})
				})

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("inbox watch error", "error", err)

			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		watcher.Close()
	}
	return stop, nil
}

func lastPathElement(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
