package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/streamalong/cli/internal/config"
	"github.com/streamalong/cli/internal/media"
	"github.com/streamalong/cli/internal/room"
	"github.com/streamalong/cli/internal/signaling"
	"github.com/streamalong/cli/internal/transcript"
	"github.com/streamalong/cli/internal/ui"
)

// ConnectionContext bundles everything a live session needs.
type ConnectionContext struct {
	Client     *signaling.Client
	Controller *room.Controller
	Supervisor *room.Supervisor
	Config     *config.Config
}

func NewConnectionContext(cfg *config.Config) (*ConnectionContext, error) {
	client := signaling.NewClient(cfg.WebSocketURL)
	if err := client.Connect(); err != nil {
		return nil, room.NewError("connect to relay", err)
	}

	acquire := func(q media.Quality, withVideo bool) (media.Capture, error) {
		return media.NewSampleCapture(q, withVideo)
	}

	ctrl := room.NewController(client, media.NewLinkFactory(cfg), acquire, media.Quality(cfg.Quality))

	dial := func() (room.Transport, error) {
		c := signaling.NewClient(cfg.WebSocketURL)
		if err := c.Connect(); err != nil {
			return nil, err
		}
		return c, nil
	}

	return &ConnectionContext{
		Client:     client,
		Controller: ctrl,
		Supervisor: room.NewSupervisor(ctrl, client, dial),
		Config:     cfg,
	}, nil
}

func (c *ConnectionContext) Close() {
	if c.Client != nil {
		c.Client.Close()
	}
}

func LoadConfig(opts config.Options) (*config.Config, error) {
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, room.NewError("load config", err)
	}

	if cfg.ForceRelay && cfg.GetTURNServers() == nil {
		return nil, fmt.Errorf("cannot force relay mode without TURN server configured")
	}

	return cfg, nil
}

// runSession drives the interactive UI until the user leaves or the
// room ends, then prints the session summary.
func runSession(ctx *ConnectionContext, saveTranscript bool) error {
	defer ctx.Close()

	supervisorDone := make(chan error, 1)
	go func() {
		supervisorDone <- ctx.Supervisor.Run()
	}()

	model := ui.NewSessionModel(ctx.Controller)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return room.NewError("run session", err)
	}

	ctx.Controller.Leave()
	ctx.Supervisor.Stop()
	supervisorErr := <-supervisorDone

	printSummary(ctx, saveTranscript)

	if supervisorErr != nil {
		return supervisorErr
	}
	if err := ctx.Controller.LastError(); err != nil {
		return err
	}
	return nil
}

func printSummary(ctx *ConnectionContext, saveTranscript bool) {
	ctrl := ctx.Controller
	stats := ctrl.Stats()
	chat := ctrl.ChatEntries()

	summary := ui.SessionSummary{
		RoomID:      ctrl.RoomID(),
		Role:        string(ctrl.Role()),
		Duration:    fmt.Sprintf("%.0f seconds", stats.Duration().Seconds()),
		PeakViewers: stats.PeakViewers(),
		Messages:    len(chat),
	}

	if saveTranscript && summary.RoomID != "" {
		t := transcript.Build(summary.RoomID, ctrl.Role(), stats, chat)
		name, err := t.Save()
		if err != nil {
			ui.PrintWarning(fmt.Sprintf("transcript not saved: %v", err))
		} else {
			summary.Transcript = name
		}
	}

	ui.RenderSessionSummary("📊 Session Summary", summary)
}
