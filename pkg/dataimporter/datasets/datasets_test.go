package datasets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisteredDatasets(t *testing.T) {
	registered, err := Registered()
	require.NoError(t, err)
	require.NotEmpty(t, registered)

	for _, dataset := range registered {
		assert.NotEmpty(t, dataset.Identifier)
		assert.NotEmpty(t, dataset.Source)
		assert.Contains(t, []Format{FormatNaPTAN, FormatTransXChange, FormatNeTExFares}, dataset.Format)
		assert.NotEqual(t, BundleFormat(""), dataset.UnpackBundle)
	}
}

func TestGetDataset(t *testing.T) {
	dataset, err := Get("gb-bods-timetables")
	require.NoError(t, err)
	assert.Equal(t, FormatTransXChange, dataset.Format)
	assert.Equal(t, BundleFormatZIP, dataset.UnpackBundle)

	_, err = Get("does-not-exist")
	assert.Error(t, err)
}
