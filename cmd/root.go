package cmd

import (
	"github.com/jsphweid/mididiff/config"
	"github.com/jsphweid/mididiff/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg config.Config
	log *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "mididiff",
	Short: "Compares the notes of two MIDI files",
	Long: `Compares the notes of two MIDI files and draws a piano roll of each,
black for unchanged notes, red for removed notes and green for added notes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("log-level") {
			cfg.LogLevel, _ = flags.GetString("log-level")
		}
		if flags.Changed("width") {
			cfg.Width, _ = flags.GetInt("width")
		}
		if flags.Changed("height") {
			cfg.Height, _ = flags.GetInt("height")
		}
		log, err = logger.New(cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "debug, info, warn or error")
	rootCmd.PersistentFlags().Int("width", 1500, "image width in pixels")
	rootCmd.PersistentFlags().Int("height", 1200, "image height in pixels")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// ExecuteArgs runs the command line given by args.
func ExecuteArgs(args []string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}
