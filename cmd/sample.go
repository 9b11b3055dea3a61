package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/jsphweid/mididiff/midi"
	"github.com/jsphweid/mididiff/sample"
	"github.com/jsphweid/mididiff/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var excerptNotes int

func init() {
	excerptCmd.Flags().IntVarP(&excerptNotes, "notes", "n", 10, "note messages to keep per track, 0 keeps all")
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(excerptCmd)
}

var sampleCmd = &cobra.Command{
	Use:   "sample OUT_DIR",
	Short: "Writes a pair of demo files",
	Long:  `Writes old.mid and new.mid, two short passages that differ by a moved and an added note.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeSamples(args[0])
	},
}

var excerptCmd = &cobra.Command{
	Use:   "excerpt FILE TICKS OUT",
	Short: "Cuts a passage out of a file",
	Long:  `Copies the notes of FILE starting at absolute tick TICKS into OUT.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		offset, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "bad tick offset %q", args[1])
		}
		return writeExcerpt(args[0], offset, args[2])
	},
}

func writeSamples(dir string) error {
	if err := util.EnsureDir(dir); err != nil {
		return err
	}
	old, new := sample.Pair()
	for name, notes := range map[string][]sample.Note{"old.mid": old, "new.mid": new} {
		path := filepath.Join(dir, name)
		if err := sample.Create(notes, 96, 120).WriteFile(path); err != nil {
			return errors.Wrapf(err, "could not write %v", path)
		}
		fmt.Printf("Wrote %v\n", path)
	}
	return nil
}

func writeExcerpt(path string, offset uint64, out string) error {
	mf, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}
	if err := sample.Excerpt(mf, offset, excerptNotes).WriteFile(out); err != nil {
		return errors.Wrapf(err, "could not write %v", out)
	}
	fmt.Printf("Wrote %v\n", out)
	return nil
}
