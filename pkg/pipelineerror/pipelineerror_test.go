package pipelineerror

import (
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyXMLSyntax(t *testing.T) {
	d := xml.NewDecoder(strings.NewReader("<a><b></a>"))
	var err error
	for err == nil {
		_, err = d.Token()
	}

	classified := Classify(err)
	assert.Equal(t, CodeXMLSyntaxError, classified.Code)
}

func TestClassifySchema(t *testing.T) {
	classified := Classify(Schemaf("missing %s", "PublicationTimestamp"))
	assert.Equal(t, CodeSchemaError, classified.Code)
	assert.Contains(t, classified.Error(), "PublicationTimestamp")
}

func TestClassifyPostSchema(t *testing.T) {
	classified := Classify(PostSchemaf("dangling route link ref"))
	assert.Equal(t, CodePostSchemaError, classified.Code)
}

func TestClassifyFallback(t *testing.T) {
	classified := Classify(errors.New("disk on fire"))
	assert.Equal(t, CodeSystemError, classified.Code)
}

func TestClassifyPreservesExistingCode(t *testing.T) {
	original := New(CodeDatasetExpired, errors.New("too old"))
	assert.Equal(t, original, Classify(original))
}
