// Package timeline recovers a chronological list of career events from the
// free-form biography text stored on a fighter record.
//
// The accepted grammar is deliberately loose. Blocks are separated by one fully
// blank line, and each block opens with a header of the form
//
//	[<date>] <title>
//
// followed by any number of body lines. Blocks that do not start with a usable
// header are skipped rather than reported, so Parse never fails.
package timeline
