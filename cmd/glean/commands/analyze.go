package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/glean/internal/app"
)

func (c *CLI) newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <transcript>",
		Short: "Run the analysis pipeline on a transcript file (or - for stdin)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			outputs, _ := cmd.Flags().GetStringSlice("outputs")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			instruction, _ := cmd.Flags().GetString("instruction")
			return c.app.Analyze(cmd.Context(), args[0], app.RunOptions{
				Outputs:     outputs,
				NoCache:     noCache,
				Instruction: instruction,
			})
		},
	}
	cmd.Flags().StringSliceP("outputs", "o", nil,
		"Outputs to produce (classify, summarize, analyze, action_plan, report, blog_post, linkedin_post, tweet)")
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass cached results and force regeneration")
	cmd.Flags().StringP("instruction", "i", "", "Custom instruction threaded into every task")
	return cmd
}
