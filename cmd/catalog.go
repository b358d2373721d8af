package main

import (
	"encoding/json"
	"fmt"
	"path"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/okian/leetview/internal/adapters/terminal"
	lang "github.com/okian/leetview/internal/domain/language"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	var (
		language string
		asJSON   bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List solution files with their ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			svc, err := rt.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			entries, err := svc.ListSolutions(ctx, language)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, entries)
			}
			return terminal.NewRenderer(cmd.OutOrStdout()).Files(entries)
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "language directory to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newShowCmd(flags *rootFlags) *cobra.Command {
	var (
		language string
		theme    string
		asJSON   bool
		plain    bool
	)
	cmd := &cobra.Command{
		Use:   "show <path>",
		Short: "Print a solution split into description, code and complexity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			svc, err := rt.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			sol, err := svc.GetSolution(ctx, language, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, sol)
			}

			lexer := ""
			if spec, ok := svc.LanguageSpec(language); ok {
				lexer = spec.Lexer
			} else if spec, ok := lang.Default().ByExtension(path.Ext(args[0])); ok {
				lexer = spec.Lexer
			}
			r := terminal.NewRenderer(cmd.OutOrStdout(),
				terminal.WithTheme(theme),
				terminal.WithHighlight(!plain),
			)
			return r.Solution(sol, lexer)
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "language directory the path is relative to")
	cmd.Flags().StringVar(&theme, "theme", terminal.DefaultTheme, "chroma style for code")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable syntax highlighting")
	return cmd
}

func newRateCmd(flags *rootFlags) *cobra.Command {
	var language string
	cmd := &cobra.Command{
		Use:   "rate <path> <1-5>",
		Short: "Store a rating for a solution",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("rating must be an integer: %q", args[1])
			}
			rt, err := loadRuntime(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			svc, err := rt.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			receipt, err := svc.SaveRating(ctx, language, args[0], rating)
			if err != nil {
				return err
			}
			return terminal.NewRenderer(cmd.OutOrStdout()).Receipt(receipt)
		},
	}
	cmd.Flags().StringVarP(&language, "language", "l", "", "language directory the path is relative to")
	return cmd
}

func newLanguagesCmd(flags *rootFlags) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the language directories present in the solutions tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			svc, err := rt.startService(ctx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			langs, err := svc.Languages(ctx)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, langs)
			}
			return terminal.NewRenderer(cmd.OutOrStdout()).Languages(langs)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
