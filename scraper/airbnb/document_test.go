package airbnb

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentStripsByteOrderMark(t *testing.T) {
	t.Parallel()

	html := "\xef\xbb\xbf<html><head><title>Condo · ★4.9</title></head><body><h2 class=\"_14i3z6h\">Entire condo</h2></body></html>"

	doc, err := ParseDocument(strings.NewReader(html))

	require.NoError(t, err)
	assert.Equal(t, "Condo · ★4.9", doc.Find("title").Text())
	assert.Equal(t, "Entire condo", doc.Find("h2._14i3z6h").Text())
}

func TestParseDocumentToleratesInvalidBytes(t *testing.T) {
	t.Parallel()

	doc, err := ParseDocument(strings.NewReader("<html><body><p>caf\xe9</p></body></html>"))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc.Find("p").Text(), "caf"))
}

func TestFileSourceLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads a saved page", func(t *testing.T) {
		t.Parallel()

		doc, err := NewFileSource().Load(filepath.Join(fixtureDir, "listing_467507.html"))

		require.NoError(t, err)
		assert.Equal(t, "Entire guest suite hosted by Jess", doc.Find("h2._14i3z6h").Text())
	})

	t.Run("wraps missing file errors", func(t *testing.T) {
		t.Parallel()

		_, err := NewFileSource().Load(filepath.Join(t.TempDir(), "missing.html"))

		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("releases the file handle after loading", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<p>ok</p>"), 0644))

		_, err := NewFileSource().Load(path)
		require.NoError(t, err)

		assert.NoError(t, os.Remove(path))
	})
}
