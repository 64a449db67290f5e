package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tsawler/worksheet/model"
)

func newInspectCmd() *cobra.Command {
	var (
		flags extractFlags
		page  int
	)

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the parsed attributes of worksheet pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := flags.extractor(cmd, args[0])
			if err != nil {
				return err
			}
			doc, _, err := e.DocumentContext(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			found := false
			for _, p := range doc.Pages {
				if page != 0 && p.Number != page {
					continue
				}
				found = true
				dumpPage(w, p)
				fmt.Fprintln(w)
			}
			for _, f := range doc.Failures {
				if page != 0 && f.Number != page {
					continue
				}
				found = true
				fmt.Fprintf(w, "FAILED %v\n\n", f)
			}
			if !found {
				return fmt.Errorf("page %d not found", page)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&page, "page", "p", 0, "only show this page number")

	return cmd
}

// dumpPage writes the header attributes of p followed by every sequence
// with its explanation and line items.
func dumpPage(w io.Writer, p *model.Page) {
	attrs := []struct {
		name  string
		value any
	}{
		{"datetime", p.Printed.Format(model.TimeLayout)},
		{"pagenum", p.Number},
		{"pages", p.Total},
		{"kind", p.Kind},
		{"detail_type", p.DetailType},
		{"department_code", p.DepartmentCode},
		{"department", p.Department},
		{"program_id", p.ProgramID},
		{"program_name", p.ProgramName},
		{"structure_number", p.StructureNumber},
		{"subject_committee_code", p.SubjectCommitteeCode},
		{"subject_committee_name", p.SubjectCommitteeName},
		{"year0", p.Year0},
		{"year1", p.Year1},
		{"spans", p.Spans},
	}
	for _, a := range attrs {
		fmt.Fprintf(w, "%s=%v\n", a.name, a.value)
	}

	for _, b := range p.Blocks {
		fmt.Fprintf(w, "\nSequence ID=%s\n", b.ID)
		fmt.Fprintln(w, "Explanation:")
		for _, r := range p.Rows {
			if r.SequenceNum == b.ID && r.Explanation != "" {
				fmt.Fprintln(w, r.Explanation)
			}
		}
		fmt.Fprintln(w, "Line Items:")
		for _, r := range p.Rows {
			if r.SequenceNum == b.ID {
				fmt.Fprintf(w, "  [%s]\n", strings.Join(r.Numbers(), " | "))
			}
		}
	}
	for _, msg := range p.Warnings {
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
}
