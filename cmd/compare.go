package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsphweid/mididiff/util"
	"github.com/spf13/cobra"
)

var compareChannel string
var compareOut string

func init() {
	compareCmd.Flags().StringVarP(&compareChannel, "channel", "c", "", "only compare this channel (0-15)")
	compareCmd.Flags().StringVarP(&compareOut, "out", "o", "", "output png (default $MIDIDIFF_OUT_DIR/diff.png)")
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare OLD NEW",
	Short: "Compares two files once and draws the diff",
	Long:  `Compares two files once, every channel unless --channel is given, and writes a single piano roll.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return compareOnce(args[0], args[1])
	},
}

func compareOnce(oldPath, newPath string) error {
	f, err := channelFilter(compareChannel)
	if err != nil {
		return err
	}
	s, err := loadSession(oldPath, newPath)
	if err != nil {
		return err
	}

	out := compareOut
	if out == "" {
		out = filepath.Join(cfg.OutDir, "diff.png")
	}
	if err := util.EnsureDir(filepath.Dir(out)); err != nil {
		return err
	}

	r, err := runAndSave(s, f, out)
	if err != nil {
		return err
	}
	printCounts(os.Stdout, r)
	fmt.Printf("Wrote %v\n", out)
	return nil
}
