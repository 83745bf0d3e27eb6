package cmd

import (
	"github.com/spf13/cobra"

	"github.com/streamalong/cli/internal/config"
	"github.com/streamalong/cli/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:     "watch <room-id>",
	Aliases: []string{"w"},
	Short:   "Watch a live room",
	Long: `Join an existing room as a viewer. Chat and react right away;
press 's' to ask the host for permission to stream your own feed.

Examples:
  streamalong watch movie-night
  streamalong watch movie-night --name Bob
  streamalong watch movie-night --domain custom.example.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchRoom(args[0])
	},
}

func watchRoom(roomID string) error {
	cfg, err := LoadConfig(config.Options{
		Domain:     flagDomain,
		STUNServer: flagSTUN,
		TURNServer: flagTURN,
		TURNUser:   flagTURNUser,
		TURNPass:   flagTURNPass,
		ForceRelay: flagRelay,
		Quality:    flagQuality,
	})
	if err != nil {
		return err
	}

	spinner := ui.NewConnectionSpinner("Connecting to relay...")
	spinner.Start()
	ctx, err := NewConnectionContext(cfg)
	if err != nil {
		spinner.Stop()
		return err
	}
	spinner.Stop()

	if err := ctx.Controller.JoinRoom(roomID, displayName()); err != nil {
		ctx.Close()
		return err
	}

	return runSession(ctx, flagTranscript)
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&flagDomain, "domain", "d", "", "Custom relay domain")
	watchCmd.Flags().StringVar(&flagSTUN, "stun", "", "Custom STUN server")
	watchCmd.Flags().StringVar(&flagTURN, "turn", "", "Custom TURN server")
	watchCmd.Flags().StringVarP(&flagTURNUser, "turn-user", "u", "", "TURN username")
	watchCmd.Flags().StringVarP(&flagTURNPass, "turn-pass", "p", "", "TURN password")
	watchCmd.Flags().BoolVarP(&flagRelay, "relay", "r", false, "Force relay mode")
	watchCmd.Flags().StringVarP(&flagName, "name", "n", "", "Display name")
	watchCmd.Flags().StringVarP(&flagQuality, "quality", "q", "", "Video quality (720p or 480p)")
	watchCmd.Flags().BoolVar(&flagTranscript, "transcript", false, "Save the chat transcript on exit")
}
