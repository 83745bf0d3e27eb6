package cmd

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/streamalong/cli/internal/ui"
	"github.com/streamalong/cli/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "streamalong",
	Short:   "Terminal livestream rooms over WebRTC, with chat, reactions and viewer streaming",
	Long:    `StreamAlong is a command-line client for hosting and watching live rooms over WebRTC. A host streams audio and video directly to viewers without a media server, viewers chat and react in real time, and the host can invite a viewer to stream back into the room.`,
	Version: version.Version,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		<-sig
		os.Exit(0)
	}()

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
