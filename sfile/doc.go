// Package sfile reads and writes the "SF" program container.
//
// A container is a fixed header, followed by the little-endian instruction
// word count and the little-endian instruction words:
//
//	offset  size  field
//	0       2     magic "SF"
//	2       1     file type (executable, shared)
//	3       1     architecture tag
//	4       1     format version
//	5       4     word count
//	9       4*n   instruction words
//
// The CPU never sees the container; it only executes the decoded words.
package sfile
