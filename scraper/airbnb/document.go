package airbnb

import (
	"fmt"
	"io"
	"os"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DocumentSource loads a saved page from local storage as a navigable tree.
type DocumentSource interface {
	Load(path string) (*goquery.Document, error)
}

// Ensure FileSource implements DocumentSource at compile time.
var _ DocumentSource = (*FileSource)(nil)

// FileSource reads saved pages straight from disk.
type FileSource struct{}

// NewFileSource creates a FileSource.
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Load opens path and parses it. The file is closed on every return path.
func (s *FileSource) Load(path string) (*goquery.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("airbnb: open %q: %w", path, err)
	}
	defer f.Close()

	doc, err := ParseDocument(f)
	if err != nil {
		return nil, fmt.Errorf("airbnb: parse %q: %w", path, err)
	}
	return doc, nil
}

// ParseDocument parses UTF-8 markup, dropping a leading byte order mark if
// present. Invalid byte sequences are replaced rather than rejected.
func ParseDocument(r io.Reader) (*goquery.Document, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	return goquery.NewDocumentFromReader(decoded)
}
