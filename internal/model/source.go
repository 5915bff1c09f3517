// Package model defines the data structures shared by the extraction engine,
// the dataset adapters and the UI.
package model

// Path represents a file system path.
type Path string

// File represents a file on disk together with its content fingerprint.
type File struct {
	Path Path
	Hash string
}

// Source is one input test class. Class is the file name without extension
// and doubles as the test class name.
type Source struct {
	Origin *File
	Class  string
}
