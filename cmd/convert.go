package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/chriserin/gherkinstub/internal/config"
	"github.com/chriserin/gherkinstub/internal/converter"
	"github.com/chriserin/gherkinstub/internal/merger"
	"github.com/chriserin/gherkinstub/internal/ui"
)

// ConvertFlags override .gherkinstub.yaml. Empty strings leave the file
// value in place.
type ConvertFlags struct {
	Package  string
	Location string
	Format   string
	Strict   bool
	Ticket   string
}

func (f ConvertFlags) apply(cfg *config.Config) {
	if f.Package != "" {
		cfg.Package = f.Package
	}
	if f.Location != "" {
		cfg.Location = f.Location
	}
	if f.Format != "" {
		cfg.MethodFormat = f.Format
	}
	if f.Strict {
		cfg.StrictNames = true
	}
}

var convertFlags ConvertFlags

var convertCmd = &cobra.Command{
	Use:   "convert [file|-]",
	Short: "Write or extend the test skeleton for one feature",
	Long: `Reads Gherkin from a file, from stdin when the argument is "-" or
missing, or from a stored ticket with --ticket. Methods already present in
the target file are left alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := ""
		if len(args) == 1 {
			input = args[0]
		}
		log := newLogger(cmd.ErrOrStderr(), verboseFlag)
		return RunConvert(cmd.OutOrStdout(), cmd.InOrStdin(), log, input, convertFlags)
	},
}

func init() {
	addConvertFlags(convertCmd, &convertFlags)
	convertCmd.Flags().StringVar(&convertFlags.Ticket, "ticket", "", "Convert the description of a stored ticket")
	rootCmd.AddCommand(convertCmd)
}

func addConvertFlags(cmd *cobra.Command, f *ConvertFlags) {
	cmd.Flags().StringVarP(&f.Package, "package", "p", "", "Dotted target package, e.g. acceptance.login")
	cmd.Flags().StringVarP(&f.Location, "location", "l", "", "Target source directory")
	cmd.Flags().StringVarP(&f.Format, "format", "f", "", "Method name format: camel or snake")
	cmd.Flags().BoolVar(&f.Strict, "strict", false, "Fail when two scenarios produce the same method name")
}

func RunConvert(w io.Writer, in io.Reader, log logrus.FieldLogger, input string, flags ConvertFlags) error {
	c, err := newConverter(log, flags)
	if err != nil {
		return err
	}

	text, err := readFeature(in, input, flags.Ticket)
	if err != nil {
		return err
	}

	res, err := c.Convert(text)
	if err != nil {
		return err
	}
	added, skipped := printResult(w, res)
	ui.SummaryLine(w, added, skipped)
	return nil
}

func newConverter(log logrus.FieldLogger, flags ConvertFlags) (*converter.Converter, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, err
	}
	flags.apply(cfg)
	opts, err := cfg.ConverterOptions()
	if err != nil {
		return nil, err
	}
	return converter.New(opts, log), nil
}

func readFeature(in io.Reader, input, ticket string) (string, error) {
	if ticket != "" {
		if input != "" {
			return "", fmt.Errorf("use either a file or --ticket, not both")
		}
		store, closeStore, err := openStore()
		if err != nil {
			return "", err
		}
		defer closeStore()
		t, err := store.Get(context.Background(), ticket)
		if err != nil {
			return "", err
		}
		return t.Description, nil
	}

	if input == "" || input == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", input, err)
	}
	return string(data), nil
}

// printResult writes one line for the file and one per method.
func printResult(w io.Writer, res *merger.Result) (added, skipped int) {
	switch {
	case res.Created:
		ui.NewLine(w, res.Path)
	case res.Untouched:
		ui.KeepLine(w, res.Path, "declares no "+res.Class)
	case len(res.Added) > 0:
		ui.ModLine(w, res.Path)
	default:
		ui.KeepLine(w, res.Path, "up to date")
	}
	for _, m := range res.Added {
		ui.AddLine(w, m)
	}
	for _, m := range res.Skipped {
		ui.SkipLine(w, m)
	}
	return len(res.Added), len(res.Skipped)
}
