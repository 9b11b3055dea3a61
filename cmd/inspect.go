package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/mididiff/interval"
	"github.com/jsphweid/mididiff/midi"
	"github.com/jsphweid/mididiff/model"
	"github.com/spf13/cobra"
)

var inspectChannel string

func init() {
	inspectCmd.Flags().StringVarP(&inspectChannel, "channel", "c", "", "only show this channel (0-15)")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Lists the notes of a file",
	Long:  `Lists the note intervals of a file along with any malformed or unclosed notes.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := midi.Load(args[0])
		if err != nil {
			return err
		}
		return inspect(os.Stdout, f, inspectChannel)
	},
}

func inspect(w io.Writer, f *model.File, channel string) error {
	filter, err := channelFilter(channel)
	if err != nil {
		return err
	}
	res, err := interval.Extract(f)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "file: %v\n", f.Name)
	fmt.Fprintf(w, "ticks per beat: %v, tempo: %v, length: %v ticks (%.2fs)\n",
		f.TicksPerBeat, f.Tempo, f.TotalTicks(), f.Seconds(f.TotalTicks()))
	for _, i := range res.Intervals {
		if filter.Allows(i.Channel) {
			fmt.Fprintf(w, "channel %v pitch %v: %v-%v\n", i.Channel, i.Pitch, i.Start, i.End)
		}
	}
	for _, a := range res.Anomalies {
		if filter.Allows(a.Channel) {
			fmt.Fprintf(w, "%v: channel %v pitch %v at tick %v\n", a.Kind, a.Channel, a.Pitch, a.Time)
		}
	}
	return nil
}
