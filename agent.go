package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"keypaste/cancel"
	"keypaste/clipmon"
	"keypaste/command"
	"keypaste/config"
	"keypaste/platform"
	"keypaste/storage"
	"keypaste/systray"
	"keypaste/typing"
)

// Agent wires the clipboard monitor, the emergency-stop hotkey, the tray
// menu and the command surface together and runs the main event loop.
type Agent struct {
	cfg     *config.Config
	surface *command.Surface
	coord   *cancel.Coordinator
	monitor *clipmon.Monitor
	hotkey  platform.Hotkey
	tray    *systray.Manager
	db      *storage.DB

	speed       typing.Speed
	monitorOn   bool
	monitorCtx  context.CancelFunc
	monitorDone chan struct{}
}

// dbRecorder adapts storage.DB to the command surface's Recorder and
// refreshes the tray stats line after each recorded job.
type dbRecorder struct {
	db      *storage.DB
	onSaved func()
}

func (r dbRecorder) SaveJob(jobID int64, speed string, charCount, typedCount, chunkCount int, duration time.Duration, outcome string) error {
	err := r.db.SavePaste(&storage.Paste{
		JobID:      jobID,
		Speed:      speed,
		CharCount:  charCount,
		TypedCount: typedCount,
		ChunkCount: chunkCount,
		DurationMs: duration.Milliseconds(),
		Outcome:    outcome,
	})
	if err == nil && r.onSaved != nil {
		r.onSaved()
	}
	return err
}

// NewAgent creates a new agent instance
func NewAgent(cfg *config.Config, tray *systray.Manager) (*Agent, error) {
	clip, err := platform.NewClipboard()
	if err != nil {
		return nil, fmt.Errorf("failed to open clipboard: %w", err)
	}

	typist, err := platform.NewTypist()
	if err != nil {
		return nil, fmt.Errorf("failed to create synthetic-input driver: %w", err)
	}

	coord := cancel.New(time.Duration(cfg.Hotkey.DoublePressMs) * time.Millisecond)
	engine := typing.NewEngine(typist, coord, cfg.Typing.ChunkSize)

	// Job metrics are auxiliary; a broken database disables recording but
	// never the pipeline.
	var db *storage.DB
	if dir, err := config.Dir(); err == nil {
		if db, err = storage.Open(dir); err != nil {
			slog.Warn("job metrics disabled", "error", err)
			db = nil
		}
	}

	interval := time.Duration(cfg.Monitor.PollIntervalMs) * time.Millisecond

	a := &Agent{
		cfg:     cfg,
		coord:   coord,
		monitor: clipmon.New(clip, interval),
		hotkey:  platform.NewHotkey(),
		tray:    tray,
		db:      db,
		speed:   cfg.Typing.Speed,
	}

	var rec command.Recorder
	if db != nil {
		rec = dbRecorder{db: db, onSaved: a.refreshStats}
	}
	a.surface = command.New(clip, engine, coord, rec)

	return a, nil
}

// refreshStats rewrites the tray's read-only stats line from the job
// metrics of the last seven days.
func (a *Agent) refreshStats() {
	stats, err := a.db.GetOverallStats(7)
	if err != nil {
		slog.Warn("failed to load job stats", "error", err)
		return
	}
	if stats.TotalJobs == 0 {
		a.tray.SetStats("No jobs yet")
		return
	}
	a.tray.SetStats(fmt.Sprintf("7 days: %d jobs, %d chars typed",
		stats.TotalJobs, stats.TotalTyped))
}

// Run starts the agent's main event loop
func (a *Agent) Run(ctx context.Context) error {
	defer a.close()

	combo, err := config.ParseHotkey(a.cfg.Hotkey.Cancel)
	if err != nil {
		return fmt.Errorf("failed to parse cancel hotkey: %w", err)
	}

	hotkeyEvents, err := a.hotkey.Listen(ctx, platform.KeyCombo{
		Ctrl:  combo.Ctrl,
		Shift: combo.Shift,
		Alt:   combo.Alt,
		Win:   combo.Win,
		Key:   combo.Key,
	})
	if err != nil {
		return fmt.Errorf("failed to start hotkey listener: %w", err)
	}

	if a.cfg.Monitor.Enabled {
		a.startMonitor(ctx)
	}
	if a.db != nil {
		a.refreshStats()
	}

	slog.Info("keypaste started",
		"cancel_hotkey", a.cfg.Hotkey.Cancel,
		"speed", a.speed.String(),
		"monitoring", a.cfg.Monitor.Enabled)

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-a.tray.WaitForQuit():
			return nil

		case evt := <-hotkeyEvents:
			if evt.Type == platform.Pressed && a.coord.Activate() {
				slog.Info("emergency stop signalled via hotkey")
			}

		case ev := <-a.monitor.Events():
			slog.Debug("clipboard changed",
				"bytes", ev.Size, "fingerprint", fmt.Sprintf("%016x", ev.Fingerprint))

		case act := <-a.tray.Actions():
			a.handleTrayAction(ctx, act)
		}
	}
}

func (a *Agent) handleTrayAction(ctx context.Context, act systray.Action) {
	switch act.Kind {
	case systray.ActionPaste:
		id, err := a.surface.PasteNow(a.speed)
		switch {
		case err == nil:
			slog.Info("paste accepted", "job", id, "speed", a.speed.String())
		case err == command.ErrBusy:
			slog.Warn("paste rejected, job already running")
		case err == command.ErrEmptyClipboard:
			slog.Info("paste skipped, clipboard empty")
		default:
			slog.Error("paste failed", "error", err)
		}

	case systray.ActionCancel:
		a.surface.CancelCurrent()
		slog.Info("cancel requested from tray", "state", a.surface.QueryState().String())

	case systray.ActionSetSpeed:
		a.speed = act.Speed
		a.cfg.Typing.Speed = act.Speed
		if err := a.cfg.Save(); err != nil {
			slog.Warn("failed to persist typing speed", "error", err)
		}

	case systray.ActionToggleMonitor:
		if a.monitorOn {
			a.stopMonitor()
		} else {
			a.startMonitor(ctx)
		}
		a.cfg.Monitor.Enabled = a.monitorOn
		if err := a.cfg.Save(); err != nil {
			slog.Warn("failed to persist monitor setting", "error", err)
		}
	}
}

func (a *Agent) startMonitor(ctx context.Context) {
	monCtx, stop := context.WithCancel(ctx)
	done := make(chan struct{})
	a.monitorCtx = stop
	a.monitorDone = done
	a.monitorOn = true
	go func() {
		a.monitor.Run(monCtx)
		close(done)
	}()
	slog.Info("clipboard monitoring started")
}

// stopMonitor cancels the polling loop and waits for it to exit, so a
// toggle off/on never leaves two loops polling the same monitor.
func (a *Agent) stopMonitor() {
	if a.monitorCtx != nil {
		a.monitorCtx()
		<-a.monitorDone
		a.monitorCtx = nil
		a.monitorDone = nil
	}
	a.monitorOn = false
	slog.Info("clipboard monitoring stopped")
}

func (a *Agent) close() {
	a.stopMonitor()
	if a.db != nil {
		a.db.Close()
	}
}
