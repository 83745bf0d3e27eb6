package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/streamalong/cli/internal/config"
	"github.com/streamalong/cli/internal/ui"
)

var (
	flagDomain     string
	flagSTUN       string
	flagTURN       string
	flagTURNUser   string
	flagTURNPass   string
	flagRelay      bool
	flagName       string
	flagQuality    string
	flagTranscript bool
)

var hostCmd = &cobra.Command{
	Use:     "host <room-id>",
	Aliases: []string{"h"},
	Short:   "Host a live room",
	Long: `Create a room and stream to everyone who joins it.

Examples:
  streamalong host movie-night
  streamalong host movie-night --name Alice --quality 480p
  streamalong host movie-night --relay --transcript`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return hostRoom(args[0])
	},
}

func hostRoom(roomID string) error {
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

	if err := ctx.Controller.CreateRoom(roomID, displayName()); err != nil {
		ctx.Close()
		return err
	}

	fmt.Println(ui.NewRoomBanner(roomID, cfg.GetRoomLink(roomID)).View())
	fmt.Println()

	return runSession(ctx, flagTranscript)
}

// displayName resolves the participant name from the flag, falling
// back to the OS username.
func displayName() string {
	if name := strings.TrimSpace(flagName); name != "" {
		return name
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	host, err := os.Hostname()
	if err != nil {
		return "anonymous"
	}
	return host
}

func init() {
	rootCmd.AddCommand(hostCmd)

	hostCmd.Flags().StringVarP(&flagDomain, "domain", "d", "", "Custom relay domain")
	hostCmd.Flags().StringVar(&flagSTUN, "stun", "", "Custom STUN server")
	hostCmd.Flags().StringVar(&flagTURN, "turn", "", "Custom TURN server")
	hostCmd.Flags().StringVarP(&flagTURNUser, "turn-user", "u", "", "TURN username")
	hostCmd.Flags().StringVarP(&flagTURNPass, "turn-pass", "p", "", "TURN password")
	hostCmd.Flags().BoolVarP(&flagRelay, "relay", "r", false, "Force relay mode")
	hostCmd.Flags().StringVarP(&flagName, "name", "n", "", "Display name")
	hostCmd.Flags().StringVarP(&flagQuality, "quality", "q", "", "Video quality (720p or 480p)")
	hostCmd.Flags().BoolVar(&flagTranscript, "transcript", false, "Save the chat transcript on exit")
}
