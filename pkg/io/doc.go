// Package io reads source images and writes the composed output.
//
// # Reading
//
// [ReadSources] reads every input file concurrently and records a content
// digest for each, which keys the artifact cache. [DecodeSources] decodes
// them, again concurrently, with EXIF auto-orientation applied. Results are
// always returned in input order regardless of completion order, so the
// grid assignment stays row-major by input position.
//
// Decoders are registered for JPEG, PNG, GIF, TIFF, BMP and WebP.
//
// # Writing
//
// The output encoder is chosen from the file extension of the output path
// (.jpg, .jpeg, .png, .gif, .tif, .tiff, .bmp). [DebugPath] derives the
// path of the debug overlay by inserting "_debug" before the extension:
//
//	DebugPath("out/grid.png") // "out/grid_debug.png"
//
// Every failure is a structured error naming the offending path: IMAGE_LOAD
// when reading or decoding, ENCODE when writing.
package io
