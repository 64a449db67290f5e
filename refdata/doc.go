// Package refdata holds the static reference tables used while parsing
// worksheets: department names, means of financing codes, the vocabulary of
// special sequence captions and the labels of the column sub-header.
//
// [Default] returns the built-in tables. [Load] and [Parse] overlay entries
// from YAML onto them:
//
//	departments:
//	  XYZ: Department of Examples
//	special_captions:
//	  - BASE APPROPRIATIONS
//	  - GRAND TOTAL
package refdata
