package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseOpts holds the command-line flags for the browse command.
type browseOpts struct {
	backend  string // store backend: memory, file, or mongo
	mongoURI string // mongo connection string
}

// browseCommand creates the browse command for interactive library browsing.
func (c *CLI) browseCommand() *cobra.Command {
	var opts browseOpts

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the molecule library interactively",
		Long: `Browse the molecule library interactively.

Navigate the saved molecules with the arrow keys and press enter to
show a molecule's details.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.backend, "store", "", "library backend: file (default), memory, mongo")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection string (mongo backend)")

	return cmd
}

// runBrowse lists the library and runs the interactive selector.
func (c *CLI) runBrowse(ctx context.Context, opts *browseOpts) error {
	st, err := c.newStore(ctx, opts.backend, opts.mongoURI)
	if err != nil {
		return err
	}
	defer st.Close(context.Background())

	records, err := st.List(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		printInfo("Library is empty")
		printNextStep("Save a molecule", "moltext serve  # then POST /v1/molecules")
		return nil
	}

	program := tea.NewProgram(NewMoleculeListModel(records))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("run browser: %w", err)
	}

	model, ok := final.(MoleculeListModel)
	if !ok || model.Selected == nil {
		return nil
	}

	rec := model.Selected
	printNewline()
	printKeyValue("Name", rec.Name)
	printKeyValue("SMILES", rec.Notation)
	printKeyValue("ID", rec.ID)
	printKeyValue("Created", rec.CreatedAt.Format("2006-01-02 15:04:05"))
	printKeyValue("Updated", rec.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}
