package main

import (
	"fmt"
	"io"

	"ddd/internal/diag"
	"ddd/internal/diagfmt"
	"ddd/internal/driver"
	"ddd/internal/source"
)

func printBag(w io.Writer, bag *diag.Bag, fs *source.FileSet, s *settings) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	bag.Sort()
	_ = diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   1,
		PathMode:  diagfmt.PathModeAuto,
		BaseDir:   s.root,
		ShowNotes: true,
	})
}

// printFileResult prints the diagnostics of one build result, or the plain
// error when the file never reached the compiler.
func printFileResult(w io.Writer, fr driver.FileResult, s *settings) {
	if fr.Result != nil && fr.Result.Bag.Len() > 0 {
		printBag(w, fr.Result.Bag, fr.Result.FileSet, s)
		return
	}
	if fr.Err != nil {
		fmt.Fprintf(w, "error: %v\n", fr.Err)
	}
}
