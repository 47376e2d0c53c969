// Command planctl inspects plan generation from the command line: the prompt
// a profile produces, the fallback document, or a live generation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	profilePath string
	contextPath string
	variantName string
	configDir   string
)

var rootCmd = &cobra.Command{
	Use:   "planctl",
	Short: "Inspect and run wellness plan generation",
	Long: `planctl works on a profile JSON file (the same shape the API accepts as
"userProfile") and one of the plan variants:

  two-day-plan, plan-options, schedule-plans, health-score, plan-activities`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "", "path to a profile JSON file (default: empty profile)")
	rootCmd.PersistentFlags().StringVarP(&contextPath, "context", "x", "", "path to a prompt context JSON file")
	rootCmd.PersistentFlags().StringVarP(&variantName, "variant", "v", "two-day-plan", "plan variant")
	rootCmd.AddCommand(promptCmd, fallbackCmd, generateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
