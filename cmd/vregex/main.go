// Command vregex compiles patterns in the vregex dialect, answers
// membership queries against them, and generates standalone Go matchers.
//
// Note that in this dialect '+' is alternation, not one-or-more:
//
//	vregex match "a+b" a b ab
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agnltson/vregex/pkg/vregex"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vregex:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "vregex",
		Short:         "NFA engine for a small regex dialect where '+' means alternation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace automaton construction")
	root.AddCommand(newMatchCmd(&verbose), newGenCmd(&verbose))
	return root
}

func newMatchCmd(verbose *bool) *cobra.Command {
	var bestEffort bool

	cmd := &cobra.Command{
		Use:   "match PATTERN [STRING...]",
		Short: "Report whether each string belongs to the pattern's language",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := vregex.Strict
			if bestEffort {
				mode = vregex.BestEffort
			}
			engine, err := vregex.CompileWithOptions(vregex.Options{
				Pattern:   args[0],
				Mode:      mode,
				Verbose:   *verbose,
				LogOutput: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			for _, s := range args[1:] {
				fmt.Fprintf(cmd.OutOrStdout(), "%q\t%v\n", s, engine.Matches(s))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&bestEffort, "best-effort", false,
		"swallow construction failures and return an always-rejecting engine")
	return cmd
}

func newGenCmd(verbose *bool) *cobra.Command {
	var (
		name       string
		pkg        string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "gen PATTERN",
		Short: "Generate a standalone Go matcher for a pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := vregex.CompileWithOptions(vregex.Options{
				Pattern:   args[0],
				Verbose:   *verbose,
				LogOutput: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}
			if err := engine.Generate(vregex.GenerateOptions{
				Name:       name,
				Package:    pkg,
				OutputFile: outputFile,
			}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", outputFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "Pattern", "type name for the generated matcher")
	cmd.Flags().StringVar(&pkg, "package", "main", "package name for the generated file")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "pattern_matcher.go", "output file path")
	return cmd
}
