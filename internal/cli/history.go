package cli

import (
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/procview/internal/workspace"
	"github.com/matzehuels/procview/pkg/document"
	perrors "github.com/matzehuels/procview/pkg/errors"
)

// reportHistory prints where an editor stands after a history command.
func reportHistory(op string, ed *document.Editor) {
	h := ed.History()
	printSuccess("%s", op)
	printDetail("%d undoable, %d redoable", len(h.Past), len(h.Future))
}

// historyOp builds a command that runs op against one stored document.
func (c *CLI) historyOp(use, short, done string, op func(*cobra.Command, *workspace.Service, []string) (*document.Editor, error), args cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, argv []string) error {
			svc, closeStore, err := c.newService(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeStore()
			ed, err := op(cmd, svc, argv)
			if err != nil {
				return err
			}
			reportHistory(done, ed)
			return nil
		},
	}
}

func (c *CLI) undoCommand() *cobra.Command {
	return c.historyOp("undo <id>", "Undo the last recorded action", "Undone",
		func(cmd *cobra.Command, svc *workspace.Service, args []string) (*document.Editor, error) {
			return svc.Undo(cmd.Context(), args[0])
		}, cobra.ExactArgs(1))
}

func (c *CLI) redoCommand() *cobra.Command {
	return c.historyOp("redo <id>", "Re-apply the last undone action", "Redone",
		func(cmd *cobra.Command, svc *workspace.Service, args []string) (*document.Editor, error) {
			return svc.Redo(cmd.Context(), args[0])
		}, cobra.ExactArgs(1))
}

func (c *CLI) clearCommand() *cobra.Command {
	return c.historyOp("clear <id>", "Forget the history and keep the current document", "History cleared",
		func(cmd *cobra.Command, svc *workspace.Service, args []string) (*document.Editor, error) {
			return svc.Clear(cmd.Context(), args[0])
		}, cobra.ExactArgs(1))
}

func (c *CLI) jumpCommand() *cobra.Command {
	cmd := c.historyOp("jump <id> past|future <index>", "Jump to a position in the history", "Jumped",
		func(cmd *cobra.Command, svc *workspace.Service, args []string) (*document.Editor, error) {
			dir, err := workspace.ParseDirection(args[1])
			if err != nil {
				return nil, err
			}
			index, err := strconv.Atoi(args[2])
			if err != nil {
				return nil, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "index %q is not a number", args[2])
			}
			return svc.Jump(cmd.Context(), args[0], dir, index)
		}, cobra.ExactArgs(3))
	cmd.Long = `Jump to a position in the history.

"past N" keeps the first N+1 recorded actions and moves the rest to the
future; "past -1" returns to the base document (pass it after "--", as in
"procview jump <id> past -- -1"). "future N" re-applies the
first N+1 undone actions. Indexes are clamped to the available history.`
	return cmd
}

func (c *CLI) historyCommand() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "history <id>",
		Short: "Browse the history and jump to any point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, closeStore, err := c.newService(ctx, nil)
			if err != nil {
				return err
			}
			defer closeStore()

			h, err := svc.History(ctx, args[0])
			if err != nil {
				return err
			}
			if plain || !isTerminal(os.Stdout) {
				printHistory(h)
				return nil
			}

			final, err := tea.NewProgram(NewHistoryModel(h), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			m := final.(HistoryModel)
			if m.Selected == nil {
				return nil
			}
			ed, err := svc.Jump(ctx, args[0], m.Selected.Direction, m.Selected.Index)
			if err != nil {
				return err
			}
			reportHistory("Jumped", ed)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print the history instead of opening the browser")
	return cmd
}

func printHistory(h workspace.HistoryView) {
	rows := historyRows(h)
	table := make([][]string, len(rows))
	current := make([]bool, len(rows))
	for i, r := range rows {
		pos := strings.ToLower(string(r.target.Direction)) + " " + strconv.Itoa(r.target.Index)
		table[i] = []string{pos, r.label, r.kind}
		current[i] = r.current
	}
	printTable([]string{"Jump", "Action", "Type"}, table, current)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
