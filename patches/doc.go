// Package patches holds the table of known converter defects and the text
// transforms that repair them.
//
// A patch is registered under a [Key], the creation timestamp of a source
// document plus a page number, and is applied to the body lines of that page
// before sequence blocks and columns are inferred:
//
//	table := patches.NewTable()
//	table.Register(patches.Key{Timestamp: "2015-01-05 16:33:12", Page: 12},
//	    patches.InsertSpaceAt{Line: 0, Column: 81})
//
// Patches can also be loaded from YAML with [Load]. A package-level table is
// available through [Register] and [Global] for fixes compiled into a
// program.
package patches
