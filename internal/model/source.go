// Package model defines the data structures shared by the mutation engine.
package model

// Path represents a file system path.
type Path string

// File represents a corpus file on disk. Hash is the SHA-256 of its content
// and is recorded with every report of a run.
type File struct {
	FullPath  Path
	ShortPath Path
	Hash      string
}

// Payload strips the terminator from a null-terminated mutation result.
func Payload(result []byte) []byte {
	if len(result) == 0 {
		return result
	}

	return result[:len(result)-1]
}
