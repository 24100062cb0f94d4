// Package render turns a semantic model into output text through a set of
// named templates. Templates are compiled by a pluggable Engine; the model
// walk itself never changes between engines.
package render
