package domain

import (
	"os"
)

// FileSystemAdapter defines the file operations commands need.
type FileSystemAdapter interface {
	ReadFile(path string) ([]byte, error)
	Stat(path string) (os.FileInfo, error)
	UserHomeDir() (string, error)
}
