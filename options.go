package worksheet

import (
	"time"

	"github.com/tsawler/worksheet/config"
	"github.com/tsawler/worksheet/layout"
	"github.com/tsawler/worksheet/patches"
	"github.com/tsawler/worksheet/reader"
	"github.com/tsawler/worksheet/refdata"
	"github.com/tsawler/worksheet/tables"
)

// Options holds configuration for processing one document.
type Options struct {
	// Layout configures column inference.
	// Default: layout.DefaultConfig()
	Layout layout.Config

	// Tables supplies departments, fund sources, captions and sub-header
	// labels.
	// Default: refdata.Default()
	Tables *refdata.Tables

	// Patches are applied to page bodies before parsing.
	// Default: patches.Global()
	Patches *patches.Table

	// LineBreak joins the lines of multi-line explanations.
	// Default: the two characters `\n`
	LineBreak string

	// Converter turns PDF files into text.
	// Default: reader.PDFToText{}
	Converter reader.Converter
}

// DefaultOptions returns the default processing options.
func DefaultOptions() Options {
	return Options{
		Layout:    layout.DefaultConfig(),
		Tables:    refdata.Default(),
		Patches:   patches.Global(),
		LineBreak: tables.DefaultOptions().LineBreak,
		Converter: reader.PDFToText{},
	}
}

// OptionsFrom returns the options described by resolved configuration
// settings.
func OptionsFrom(s *config.Settings) Options {
	return Options{
		Layout:    s.Layout,
		Tables:    s.Tables,
		Patches:   s.Patches,
		LineBreak: s.LineBreak,
		Converter: s.Converter,
	}
}

// withDefaults fills unset fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Layout.ProgramExplanationWidth <= 0 {
		o.Layout.ProgramExplanationWidth = d.Layout.ProgramExplanationWidth
	}
	if o.Layout.DepartmentExplanationWidth <= 0 {
		o.Layout.DepartmentExplanationWidth = d.Layout.DepartmentExplanationWidth
	}
	if o.Tables == nil {
		o.Tables = d.Tables
	}
	if o.Patches == nil {
		o.Patches = d.Patches
	}
	if o.LineBreak == "" {
		o.LineBreak = d.LineBreak
	}
	if o.Converter == nil {
		o.Converter = d.Converter
	}
	return o
}

// clone creates a copy of Options that shares no layout rules with o.
func (o Options) clone() Options {
	newOpts := o
	newOpts.Layout.Fillers = append([]layout.FillerRule(nil), o.Layout.Fillers...)
	newOpts.Layout.Markers = append([]layout.MarkerRule(nil), o.Layout.Markers...)
	return newOpts
}

// sourceOptions returns the reader options for opening a file.
func (o Options) sourceOptions(created time.Time) reader.Options {
	return reader.Options{Converter: o.Converter, Created: created}
}
