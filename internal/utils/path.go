package utils

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// PathResolver locates files relative to the running binary.
type PathResolver struct {
	executablePath string
	executableDir  string
}

// NewPathResolver creates a new path resolver that determines the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}

	// Resolve any symlinks to get the actual binary location
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
	}
	log.Debugf("PathResolver initialized: exec=%s, execDir=%s", execPath, pr.executableDir)
	return pr, nil
}

// GetConfigPath returns the config file path. An explicit path wins;
// otherwise the file is expected next to the executable, falling back to the
// working directory when only that copy exists (handy under `go run`).
func (pr *PathResolver) GetConfigPath(explicit, filename string) string {
	if explicit != "" {
		return GetAbsolutePath(explicit)
	}
	execPath := filepath.Join(pr.executableDir, filename)
	if FileExists(execPath) {
		return execPath
	}
	if cwd, err := os.Getwd(); err == nil {
		cwdPath := filepath.Join(cwd, filename)
		if FileExists(cwdPath) {
			log.Debugf("Using config from working directory: %s", cwdPath)
			return cwdPath
		}
	}
	return execPath
}
