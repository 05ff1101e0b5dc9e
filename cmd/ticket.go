package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/chriserin/gherkinstub/internal/db"
	"github.com/chriserin/gherkinstub/internal/tickets"
	"github.com/chriserin/gherkinstub/internal/ui"
)

var (
	ticketTitleFlag string
	ticketFileFlag  string
)

var ticketCmd = &cobra.Command{
	Use:   "ticket",
	Short: "Keep requirement texts until they are converted",
}

var ticketAddCmd = &cobra.Command{
	Use:   "add <key>",
	Short: "Store a ticket from --file or stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunTicketAdd(cmd.OutOrStdout(), cmd.InOrStdin(), args[0], ticketTitleFlag, ticketFileFlag)
	},
}

var ticketListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored tickets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunTicketList(cmd.OutOrStdout())
	},
}

var ticketShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Print a stored ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunTicketShow(cmd.OutOrStdout(), args[0])
	},
}

var ticketRmCmd = &cobra.Command{
	Use:   "rm <key>",
	Short: "Remove a stored ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return RunTicketRm(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	ticketAddCmd.Flags().StringVarP(&ticketTitleFlag, "title", "t", "", "Ticket title")
	ticketAddCmd.Flags().StringVar(&ticketFileFlag, "file", "", "Read the description from a file instead of stdin")
	ticketCmd.AddCommand(ticketAddCmd, ticketListCmd, ticketShowCmd, ticketRmCmd)
	rootCmd.AddCommand(ticketCmd)
}

func openStore() (*tickets.Store, func(), error) {
	if err := requireInit(); err != nil {
		return nil, nil, err
	}
	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return tickets.NewStore(sqlDB), func() { sqlDB.Close() }, nil
}

func RunTicketAdd(w io.Writer, in io.Reader, key, title, file string) error {
	var data []byte
	var err error
	if file != "" {
		data, err = os.ReadFile(file)
	} else {
		data, err = io.ReadAll(in)
	}
	if err != nil {
		return fmt.Errorf("reading description: %w", err)
	}

	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	t := tickets.Ticket{Key: key, Title: title, Description: string(data), Source: file}
	if err := store.Put(context.Background(), t); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s saved\n", key)
	return nil
}

func RunTicketList(w io.Writer) error {
	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	all, err := store.List(context.Background())
	if err != nil {
		return err
	}

	keyWidth := 0
	for _, t := range all {
		keyWidth = max(keyWidth, len(t.Key))
	}
	for _, t := range all {
		ui.TicketRow(w, t.Key, t.Title, keyWidth)
	}
	return nil
}

func RunTicketShow(w io.Writer, key string) error {
	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	t, err := store.Get(context.Background(), key)
	if err != nil {
		return err
	}
	ui.ShowHeader(w, t.Key, t.Title)
	if t.Source != "" {
		ui.SourceLine(w, t.Source)
	}
	fmt.Fprintln(w)
	ui.ShowGherkin(w, t.Description)
	return nil
}

func RunTicketRm(w io.Writer, key string) error {
	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Delete(context.Background(), key); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s removed\n", key)
	return nil
}
