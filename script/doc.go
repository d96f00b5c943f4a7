// Package script turns positioned text fragments from a printed
// audio-description script into an ordered sequence of timed entries.
//
// The pipeline runs strictly forward: fragments are clustered into visual
// lines by vertical proximity, lines that consist of nothing but a numeric
// timecode become anchors, every remaining line is assigned to the region of
// the nearest preceding anchor on its page, region content is split into
// bracketed instructions and spoken narration, and one entry is emitted per
// anchor. Structural problems that do not invalidate the document (orphaned
// lines, duplicate anchors) are collected as diagnostics and returned
// alongside the entries.
package script
