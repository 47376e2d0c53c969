package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"wellness/planner/internal/completion"
	"wellness/planner/internal/config"
	"wellness/planner/internal/logger"
	"wellness/planner/internal/planning"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print the system and user prompt for a profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, err := lookupRunner(variantName)
		if err != nil {
			return err
		}
		p, pc, err := loadInputs(profilePath, contextPath)
		if err != nil {
			return err
		}
		prompt := r.prompt(p, pc)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "--- system ---\n%s\n\n--- user ---\n%s\n", prompt.System, prompt.User)
		return nil
	},
}

var fallbackCmd = &cobra.Command{
	Use:   "fallback",
	Short: "Print the fallback document for a profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, err := lookupRunner(variantName)
		if err != nil {
			return err
		}
		p, pc, err := loadInputs(profilePath, contextPath)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), r.fallback(p, pc, time.Now()))
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run one generation against the configured completion provider",
	Long: `Runs one generation with the server's configuration (config.yaml in
--config, or COMPLETION_* environment variables). Failures of the provider
or of its output print the fallback document with source "fallback".`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, err := lookupRunner(variantName)
		if err != nil {
			return err
		}
		p, pc, err := loadInputs(profilePath, contextPath)
		if err != nil {
			return err
		}
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log := logger.Nop()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			if log, err = logger.New(cfg.Log.Mode); err != nil {
				return err
			}
			defer log.Sync()
		}

		gen := planning.NewGenerator(completion.NewRouterFromConfig(cfg.Completion), log)
		res, err := r.generate(cmd.Context(), gen, p, pc)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&configDir, "config", "c", ".", "directory holding config.yaml")
	generateCmd.Flags().Bool("verbose", false, "log generation stages to stderr")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
