package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "checkgate",
		Short:         "Checkgate runs an ordered gate of validation commands",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          runExecute,
	}

	persistent := cmd.PersistentFlags()
	persistent.StringP("config", "c", "", "pipeline file to use (default checkgate.yml)")
	persistent.String("policy", "", "failure policy (fail-fast|run-all)")
	persistent.StringArray("step", nil, "restrict to named steps (repeatable, /regex/ allowed)")
	persistent.Int("timeout", 0, "per-step timeout in seconds")
	persistent.String("format", "", "output format (pretty|json)")
	persistent.Bool("dry-run", false, "print commands without executing them")
	persistent.BoolP("verbose", "v", false, "stream command output in real time")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
