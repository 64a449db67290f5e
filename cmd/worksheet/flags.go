package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tsawler/worksheet"
	"github.com/tsawler/worksheet/config"
	"github.com/tsawler/worksheet/layout"
	"github.com/tsawler/worksheet/reader"
)

// extractFlags holds the flags shared by commands that parse worksheets.
type extractFlags struct {
	configPath string
	lineBreak  string
	policy     string
	maxShift   int
	pdftotext  string
}

func (f *extractFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVar(&f.lineBreak, "line-break", "", "separator used to join explanation lines")
	cmd.Flags().StringVar(&f.policy, "policy", "", "consensus anomaly policy (reject or ignore)")
	cmd.Flags().IntVar(&f.maxShift, "max-shift", -1, "maximum column shift accepted by the consensus (0 = unbounded)")
	cmd.Flags().StringVar(&f.pdftotext, "pdftotext", "", "path of the pdftotext binary")
}

// extractor builds an Extractor for path with the flags applied on top of
// the configuration file.
func (f *extractFlags) extractor(cmd *cobra.Command, path string) (*worksheet.Extractor, error) {
	e := worksheet.Open(path)
	if f.configPath != "" {
		e = e.ConfigFile(f.configPath)
	}
	if cmd.Flags().Changed("line-break") {
		e = e.LineBreak(f.lineBreak)
	}
	if f.policy != "" {
		p, ok := layout.ParsePolicy(f.policy)
		if !ok {
			return nil, fmt.Errorf("unknown policy %q", f.policy)
		}
		e = e.Policy(p)
	}
	if f.maxShift >= 0 {
		e = e.MaxShift(f.maxShift)
	}
	if f.pdftotext != "" {
		e = e.Converter(f.converter())
	}
	return e, nil
}

// converter returns the converter selected by the flags.
func (f *extractFlags) converter() reader.Converter {
	return reader.PDFToText{Binary: f.pdftotext}
}

// source reads the page texts of path without parsing them.
func (f *extractFlags) source(cmd *cobra.Command, path string) (*reader.Source, error) {
	conv := reader.Converter(reader.PDFToText{})
	if f.configPath != "" {
		s, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		conv = s.Converter
	}
	if f.pdftotext != "" {
		conv = f.converter()
	}
	return reader.OpenContext(cmd.Context(), path, reader.Options{Converter: conv})
}
