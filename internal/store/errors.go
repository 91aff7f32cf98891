package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Error kinds. Every error returned by Store matches exactly one of these
// under errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrInternal   = errors.New("internal error")
)

// kindError is a fixed, user-facing error belonging to one of the kinds above.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

var (
	ErrExhibitorNotFound = &kindError{kind: ErrNotFound, msg: "exhibitor not found"}
	ErrPrototypeNotFound = &kindError{kind: ErrNotFound, msg: "prototype not found"}
	ErrEmailTaken        = &kindError{kind: ErrConflict, msg: "email already registered"}
	ErrDuplicateTitle    = &kindError{kind: ErrConflict, msg: "a prototype with this title is already registered for this exhibitor"}
	ErrValueTooLong      = &kindError{kind: ErrValidation, msg: "value too long"}
)

// ValidationError lists the required fields that were missing or blank and
// the fields that exceed their column size, in struct order.
type ValidationError struct {
	Missing []string
	TooLong []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.TooLong) > 0 {
		parts = append(parts, "fields too long: "+strings.Join(e.TooLong, ", "))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func internalErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
}

type violation int

const (
	noViolation violation = iota
	uniqueViolation
	foreignKeyViolation
	valueTooLong
)

// classify recognises constraint violations raised by any of the supported
// database drivers. SQLite does not enforce column sizes, so it never reports
// valueTooLong.
func classify(err error) violation {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return uniqueViolation
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return foreignKeyViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return uniqueViolation
		case "23503":
			return foreignKeyViolation
		case "22001":
			return valueTooLong
		}
		return noViolation
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return uniqueViolation
		case 1452:
			return foreignKeyViolation
		case 1406:
			return valueTooLong
		}
		return noViolation
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return uniqueViolation
		case sqlite3.ErrConstraintForeignKey:
			return foreignKeyViolation
		}
	}
	return noViolation
}

// translateWrite maps a failed insert/update to onUnique or onForeignKey when
// the database rejected it on a constraint, to ErrValueTooLong when a value
// did not fit its column, and to ErrInternal otherwise.
func translateWrite(err error, op string, onUnique, onForeignKey error) error {
	switch classify(err) {
	case valueTooLong:
		return ErrValueTooLong
	case uniqueViolation:
		if onUnique != nil {
			return onUnique
		}
	case foreignKeyViolation:
		if onForeignKey != nil {
			return onForeignKey
		}
	}
	return internalErr(op, err)
}
