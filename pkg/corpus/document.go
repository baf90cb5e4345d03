package corpus

// RootFolder is the folder path assigned to documents living directly
// under the knowledge-base root.
const RootFolder = "root"

// Document is one markdown file loaded from the knowledge-base tree.
// Documents are immutable once loaded; a reload replaces the whole
// snapshot instead of mutating documents in place.
type Document struct {
	ID         string `json:"id"`          // relative path from the corpus root
	Filename   string `json:"filename"`    // base name of the file
	FolderPath string `json:"folder_path"` // relative folder, or RootFolder
	Content    string `json:"content"`
	FullPath   string `json:"-"` // absolute path on disk
}
