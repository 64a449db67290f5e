package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tsawler/worksheet/spans"
	"github.com/tsawler/worksheet/text"
)

func newSpansCmd() *cobra.Command {
	var (
		flags   extractFlags
		page    int
		perLine bool
	)

	cmd := &cobra.Command{
		Use:   "spans <file>",
		Short: "Print a page under a column ruler with its text spans",
		Long: `Print the converted text of one page under a column ruler.

Every line is followed by its text spans when --lines is set. The union of
all spans on the page is printed last. Use this to find the columns a page
disagrees on when it is rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := flags.source(cmd, args[0])
			if err != nil {
				return err
			}
			if page < 1 || page > len(src.Pages) {
				return fmt.Errorf("page %d out of range (1-%d)", page, len(src.Pages))
			}

			lines := strings.Split(src.Pages[page-1], "\n")
			width := 0
			for _, line := range lines {
				width = max(width, text.Width(line))
			}

			w := cmd.OutOrStdout()
			tens, units := text.Ruler(width)
			fmt.Fprintf(w, "     %s\n     %s\n", tens, units)
			for i, line := range lines {
				fmt.Fprintf(w, "%4d %s\n", i+1, line)
				if perLine && strings.TrimSpace(line) != "" {
					fmt.Fprintf(w, "     %v\n", spans.FromText(line))
				}
			}
			fmt.Fprintf(w, "\nspans: %v\n", spans.FromLines(lines))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page to print")
	cmd.Flags().BoolVarP(&perLine, "lines", "l", false, "print the spans of every line")

	return cmd
}
