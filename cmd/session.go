package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jsphweid/mididiff/compare"
	"github.com/jsphweid/mididiff/constants"
	"github.com/jsphweid/mididiff/diff"
	"github.com/jsphweid/mididiff/util"
	"github.com/spf13/cobra"
)

var sessionOutDir string

func init() {
	sessionCmd.Flags().StringVar(&sessionOutDir, "out-dir", "", "where to write the rolls (default $MIDIDIFF_OUT_DIR)")
	rootCmd.AddCommand(sessionCmd)
}

var sessionCmd = &cobra.Command{
	Use:   "session OLD NEW",
	Short: "Compares two files one channel at a time",
	Long: `Asks for a channel, draws the diff of that channel and asks again.
Enter q, quit or an empty line to stop.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(args[0], args[1])
		if err != nil {
			return err
		}
		dir := sessionOutDir
		if dir == "" {
			dir = cfg.OutDir
		}
		if err := util.EnsureDir(dir); err != nil {
			return err
		}
		return runSession(os.Stdin, cmd.OutOrStdout(), s, dir)
	},
}

func channelPath(dir string, channel int) string {
	return filepath.Join(dir, fmt.Sprintf("channel-%02d.png", channel))
}

// runSession loops until the input ends or the operator quits. A bad
// channel or a failed comparison is reported and the loop goes on.
func runSession(in io.Reader, out io.Writer, s *compare.Session, dir string) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintln(out, constants.ChannelPrompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line == "q" || line == "quit" {
			break
		}

		ch, err := parseChannel(line)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}

		path := channelPath(dir, ch)
		r, err := runAndSave(s, diff.OnlyChannel(ch), path)
		if err != nil {
			log.Errorw("could not compare channel", "channel", ch, "error", err)
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}
		printCounts(out, r)
		fmt.Fprintf(out, "Wrote %v\n", path)
	}
	fmt.Fprintln(out, "Exiting.")
	return scanner.Err()
}
