package cmd

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chriserin/gherkinstub/internal/ui"
)

const defaultFeatureDir = "features"

var syncFlags ConvertFlags

var syncCmd = &cobra.Command{
	Use:   "sync [dir]",
	Short: "Convert every .feature file below dir (default features/)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := defaultFeatureDir
		if len(args) == 1 {
			dir = args[0]
		}
		log := newLogger(cmd.ErrOrStderr(), verboseFlag)
		return RunSync(cmd.OutOrStdout(), log, dir, syncFlags)
	},
}

func init() {
	addConvertFlags(syncCmd, &syncFlags)
	rootCmd.AddCommand(syncCmd)
}

func RunSync(w io.Writer, log logrus.FieldLogger, dir string, flags ConvertFlags) error {
	c, err := newConverter(log, flags)
	if err != nil {
		return err
	}

	matches, err := featureFiles(dir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}

	var added, skipped int
	for _, path := range matches {
		res, err := c.ConvertFile(path)
		if err != nil {
			return err
		}
		a, s := printResult(w, res)
		added += a
		skipped += s
	}

	ui.SummaryLine(w, added, skipped)
	return nil
}

func featureFiles(dir string) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".feature" {
			matches = append(matches, path)
		}
		return nil
	})
	sort.Strings(matches)
	return matches, err
}
