package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for procview. Document ids of the
configured store complete as well.

  $ source <(procview completion bash)
  $ procview completion zsh > "${fpath[1]}/_procview"
  $ procview completion fish > ~/.config/fish/completions/procview.fish
  PS> procview completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(stdout, true)
			case "zsh":
				return root.GenZshCompletion(stdout)
			case "fish":
				return root.GenFishCompletion(stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(stdout)
			}
		},
	}
}

// registerIDCompletion completes the first argument of every command whose
// usage starts with "<id>" with the ids of stored documents.
func (c *CLI) registerIDCompletion(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		c.registerIDCompletion(sub)
	}
	if fields := strings.Fields(cmd.Use); len(fields) > 1 && fields[1] == "<id>" && cmd.ValidArgsFunction == nil {
		cmd.ValidArgsFunction = c.completeDocumentIDs
	}
}

func (c *CLI) completeDocumentIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	svc, closeStore, err := c.newService(cmd.Context(), nil)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer closeStore()

	list, err := svc.List(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var ids []string
	for _, s := range list {
		if strings.HasPrefix(s.ID, toComplete) {
			ids = append(ids, s.ID+"\t"+s.ProcessID)
		}
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
