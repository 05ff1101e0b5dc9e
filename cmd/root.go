package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	stateDir = ".gherkinstub"
	dbPath   = ".gherkinstub/tickets.db"
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:          "gherkinstub",
	Short:        "gherkinstub turns Gherkin requirements into Go test skeletons",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log every step to stderr")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func requireInit() error {
	if _, err := os.Stat(stateDir); os.IsNotExist(err) {
		return fmt.Errorf("run `gherkinstub init` first")
	}
	return nil
}
