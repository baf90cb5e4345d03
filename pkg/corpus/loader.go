package corpus

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Loader reads markdown documents from a folder tree
type Loader struct {
	rootPath string
	logger   *log.Logger
}

// NewLoader creates a loader for the given knowledge-base root
func NewLoader(rootPath string, logger *log.Logger) *Loader {
	return &Loader{
		rootPath: rootPath,
		logger:   logger,
	}
}

// Load walks the root path recursively and returns every .md file as a
// Document. Unreadable files are skipped with a warning; a missing root
// yields an empty (valid) corpus, since "no knowledge yet" is a normal
// startup state.
func (l *Loader) Load() ([]Document, error) {
	var documents []Document

	if _, err := os.Stat(l.rootPath); os.IsNotExist(err) {
		l.logger.Printf("[WARN] Knowledge base path does not exist: %s", l.rootPath)
		return documents, nil
	}

	err := filepath.WalkDir(l.rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			l.logger.Printf("[WARN] Skipping %s: %v", path, err)
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			l.logger.Printf("[WARN] Failed to read %s: %v", path, readErr)
			return nil
		}

		relPath, relErr := filepath.Rel(l.rootPath, path)
		if relErr != nil {
			relPath = d.Name()
		}
		relPath = filepath.ToSlash(relPath)

		documents = append(documents, Document{
			ID:         relPath,
			Filename:   d.Name(),
			FolderPath: folderOf(relPath),
			Content:    string(content),
			FullPath:   path,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Printf("[INFO] Loaded %d documents from %s", len(documents), l.rootPath)
	return documents, nil
}

// folderOf extracts the folder component of a relative document path.
// Documents at the root get the sentinel RootFolder value.
func folderOf(relPath string) string {
	dir := filepath.ToSlash(filepath.Dir(relPath))
	if dir == "." || dir == "" {
		return RootFolder
	}
	return dir
}
