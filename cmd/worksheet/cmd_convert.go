package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tsawler/worksheet"
	"github.com/tsawler/worksheet/export"
	"github.com/tsawler/worksheet/model"
)

func newConvertCmd() *cobra.Command {
	var (
		flags      extractFlags
		output     string
		sqlitePath string
		strict     bool
		quiet      bool
	)

	cmd := &cobra.Command{
		Use:   "convert <file>...",
		Short: "Convert worksheets to delimited text",
		Long: `Convert one or more budget worksheets into rows.

Each input is written next to itself with a .tsv extension unless --output
is given. An output path ending in .csv selects comma separated values and
a trailing .xz compresses the result. Use "-" to write to standard output.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" && len(args) > 1 {
				return fmt.Errorf("--output requires a single input file")
			}

			var db *export.SQLite
			if sqlitePath != "" {
				var err error
				db, err = export.OpenSQLite(sqlitePath)
				if err != nil {
					return err
				}
				defer db.Close()
			}

			failed := 0
			for _, path := range args {
				e, err := flags.extractor(cmd, path)
				if err != nil {
					return err
				}

				out := output
				if out == "" {
					out = path + ".tsv"
				}

				var doc *model.Document
				var warnings []worksheet.Warning
				if out == "-" {
					doc, warnings, err = e.Document()
					if err == nil {
						w := export.NewWriter(cmd.OutOrStdout(), export.Tab)
						err = w.WriteAll(doc.Rows)
					}
				} else {
					doc, warnings, err = e.WriteFile(out)
				}
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				if !quiet {
					report(cmd, path, out, doc, warnings)
				}
				if len(doc.Failures) > 0 {
					failed++
				}

				if db != nil {
					opts, err := e.Settings()
					if err != nil {
						return err
					}
					if err := db.StoreFundSources(cmd.Context(), opts.Tables.FundSources); err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					id, err := db.Store(cmd.Context(), doc)
					if err != nil {
						return fmt.Errorf("%s: %w", path, err)
					}
					if !quiet {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: stored as run %s\n", path, id)
					}
				}
			}

			if strict && failed > 0 {
				return fmt.Errorf("%d of %d files had unparseable pages", failed, len(args))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default <file>.tsv)")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "also store rows in this SQLite database")
	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any page fails")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print a summary")

	return cmd
}

// report prints a one-line summary of doc followed by its failures and
// warnings.
func report(cmd *cobra.Command, path, out string, doc *model.Document, warnings []worksheet.Warning) {
	w := cmd.ErrOrStderr()
	dest := out
	if out == "-" {
		dest = "stdout"
	}
	fmt.Fprintf(w, "%s: %d pages, %d rows -> %s\n", path, len(doc.Pages), len(doc.Rows), dest)

	if len(doc.Failures) > 0 {
		nums := make([]string, len(doc.Failures))
		for i, f := range doc.Failures {
			nums[i] = fmt.Sprint(f.Number)
		}
		fmt.Fprintf(w, "  bad pages: %s\n", strings.Join(nums, ", "))
		for _, f := range doc.Failures {
			fmt.Fprintf(w, "    %v\n", f)
		}
	}
	for _, warn := range warnings {
		fmt.Fprintf(w, "  warning: %s\n", warn)
	}
}

