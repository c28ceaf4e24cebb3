// Package renderer builds markdown documents out of blingslang reports.
// The strings it returns are plain GFM; callers decide how to display them
// (raw, or through a terminal renderer).
package renderer
