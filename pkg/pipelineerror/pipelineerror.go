// Package pipelineerror defines the ETL error codes surfaced on task result
// rows and the mapping from parser failures onto them.
package pipelineerror

import (
	"encoding/xml"
	"errors"
	"fmt"
)

type Code string

const (
	CodeFileTooLarge              Code = "fileTooLarge"
	CodeZipTooLarge               Code = "zipTooLarge"
	CodeNestedZipForbidden        Code = "nestedZipForbidden"
	CodeNoDataFound               Code = "noDataFound"
	CodeXMLSyntaxError            Code = "xmlSyntaxError"
	CodeDangerousXML              Code = "dangerousXmlError"
	CodeSchemaVersionMissing      Code = "schemaVersionMissing"
	CodeSchemaVersionNotSupported Code = "schemaVersionNotSupported"
	CodeSchemaError               Code = "schemaError"
	CodePostSchemaError           Code = "postSchemaError"
	CodeDatasetExpired            Code = "datasetExpired"
	CodeSuspiciousFile            Code = "suspiciousFile"
	CodeNoValidFileToProcess      Code = "noValidFileToProcess"
	CodeAntivirusFailure          Code = "antivirusFailure"
	CodeAVConnectionError         Code = "avConnectionError"
	CodeSystemError               Code = "systemError"
)

// Error attaches an ETL error code to an underlying cause.
type Error struct {
	Code  Code
	Cause error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(code Code, cause error) *Error {
	return &Error{Code: code, Cause: cause}
}

// SchemaError marks a missing required element or attribute that schema
// validation would have caught.
type SchemaError struct {
	Message string
}

func (e *SchemaError) Error() string {
	return e.Message
}

func Schemaf(format string, args ...any) *SchemaError {
	return &SchemaError{Message: fmt.Sprintf(format, args...)}
}

// PostSchemaError marks a semantic invariant violation in a document that is
// schema-conformant.
type PostSchemaError struct {
	Message string
}

func (e *PostSchemaError) Error() string {
	return e.Message
}

func PostSchemaf(format string, args ...any) *PostSchemaError {
	return &PostSchemaError{Message: fmt.Sprintf(format, args...)}
}

// Classify maps an arbitrary parser failure onto the ETL code taxonomy.
func Classify(err error) *Error {
	var pipelineErr *Error
	if errors.As(err, &pipelineErr) {
		return pipelineErr
	}

	var xmlErr *xml.SyntaxError
	if errors.As(err, &xmlErr) {
		return New(CodeXMLSyntaxError, err)
	}

	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		return New(CodeSchemaError, err)
	}

	var postSchemaErr *PostSchemaError
	if errors.As(err, &postSchemaErr) {
		return New(CodePostSchemaError, err)
	}

	return New(CodeSystemError, err)
}
