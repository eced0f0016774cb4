package manager

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitflow/transitflow/pkg/dataimporter/datasets"
	"github.com/transitflow/transitflow/pkg/pipelineerror"
)

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()

	var buffer bytes.Buffer
	writer := zip.NewWriter(&buffer)
	for name, content := range entries {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	path := filepath.Join(t.TempDir(), "bundle.zip")
	require.NoError(t, os.WriteFile(path, buffer.Bytes(), 0o644))

	return path
}

func TestCollectFilesSingleDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stops.xml")
	require.NoError(t, os.WriteFile(path, []byte("<NaPTAN/>"), 0o644))

	files, err := collectFiles(path, datasets.BundleFormatNone)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "stops.xml", files[0].Name)
	assert.Equal(t, []byte("<NaPTAN/>"), files[0].Content)
}

func TestCollectFilesZipBundle(t *testing.T) {
	path := writeZip(t, map[string]string{
		"routes/a.xml": "<TransXChange/>",
		"routes/b.xml": "<TransXChange/>",
		"readme.txt":   "not a document",
	})

	files, err := collectFiles(path, datasets.BundleFormatZIP)
	require.NoError(t, err)
	require.Len(t, files, 2)

	names := []string{files[0].Name, files[1].Name}
	assert.ElementsMatch(t, []string{"a.xml", "b.xml"}, names)
}

func TestCollectFilesRefusesNestedZip(t *testing.T) {
	path := writeZip(t, map[string]string{
		"a.xml":      "<TransXChange/>",
		"nested.zip": "zipception",
	})

	_, err := collectFiles(path, datasets.BundleFormatZIP)
	require.Error(t, err)

	var pipelineErr *pipelineerror.Error
	require.True(t, errors.As(err, &pipelineErr))
	assert.Equal(t, pipelineerror.CodeNestedZipForbidden, pipelineErr.Code)
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, isValidURL("https://data.bus-data.dft.gov.uk/timetable/download/bulk_archive"))
	assert.True(t, isValidURL("http://localhost:8080/file.zip"))
	assert.False(t, isValidURL("/var/data/file.zip"))
	assert.False(t, isValidURL("file.xml"))
}
