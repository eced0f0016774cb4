// Package repository provides session-scoped access to the relational
// catalog: a generic base repository plus the specialised domain
// repositories built on it.
package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/transitflow/transitflow/pkg/pipelineerror"
	"github.com/transitflow/transitflow/pkg/util"
)

// Kind classifies a repository failure.
type Kind string

const (
	KindNotFound       Kind = "notFound"
	KindUpdateConflict Kind = "updateConflict"
	KindClientError    Kind = "clientError"
)

// statementTrimLength caps how much of a statement or parameter list is
// carried on an error.
const statementTrimLength = 200

// Site is one call-site pushed onto an error as it crosses a repository
// layer.
type Site struct {
	File     string
	Line     int
	Function string
}

func (s Site) String() string {
	return fmt.Sprintf("%s:%d %s", s.File, s.Line, s.Function)
}

// Error wraps a backend failure with its kind, the offending statement and
// the call sites it passed through. The root cause is always preserved.
type Error struct {
	Kind      Kind
	Cause     error
	Statement string
	Params    string
	Sites     []Site
}

func (e *Error) Error() string {
	cause := ""
	if e.Cause != nil {
		cause = strings.SplitN(e.Cause.Error(), "\n", 2)[0]
	}

	if e.Statement == "" {
		return fmt.Sprintf("%s: %s", e.Kind, cause)
	}

	return fmt.Sprintf("%s: %s (statement %q)", e.Kind, cause, e.Statement)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// pushSite records the caller's caller on the error, so each decorator layer
// adds exactly one frame.
func (e *Error) pushSite() *Error {
	if pc, file, line, ok := runtime.Caller(2); ok {
		function := ""
		if f := runtime.FuncForPC(pc); f != nil {
			function = f.Name()
		}
		e.Sites = append(e.Sites, Site{File: file, Line: line, Function: function})
	}

	return e
}

// wrap classifies err and annotates it with the statement and parameters,
// both trimmed. An err that is already a repository error gains a call site
// and keeps its classification.
func wrap(err error, statement string, params ...any) *Error {
	var repoErr *Error
	if errors.As(err, &repoErr) {
		return repoErr.pushSite()
	}

	wrapped := &Error{
		Kind:      classify(err),
		Cause:     err,
		Statement: util.TrimString(statement, statementTrimLength),
	}
	if len(params) > 0 {
		wrapped.Params = util.TrimString(fmt.Sprintf("%v", params), statementTrimLength)
	}

	return wrapped.pushSite()
}

func classify(err error) Kind {
	if errors.Is(err, sql.ErrNoRows) {
		return KindNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Serialization failures and deadlocks surface as update conflicts.
		if pgErr.Code == "40001" || pgErr.Code == "40P01" {
			return KindUpdateConflict
		}
	}

	return KindClientError
}

// IsNotFound reports whether err is a repository not-found.
func IsNotFound(err error) bool {
	var repoErr *Error
	return errors.As(err, &repoErr) && repoErr.Kind == KindNotFound
}

// NotFoundError is the domain-specific missing-entity failure produced by the
// require* methods. It carries the ETL error code recorded on the task row.
type NotFoundError struct {
	Entity    string
	ID        any
	ErrorCode pipelineerror.Code
	Cause     error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return e.Cause
}
