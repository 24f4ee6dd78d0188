// Package dberr классифицирует ошибки хранилища по видам,
// понятным слоям представления (CLI, HTTP).
package dberr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Kind string

const (
	KindConnection Kind = "connection_failure"
	KindConstraint Kind = "constraint_violation"
	KindMalformed  Kind = "malformed_query"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// New создаёт ошибку заданного вида без обращения к хранилищу.
func New(op string, kind Kind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap классифицирует err и оборачивает его. nil остаётся nil,
// уже классифицированная ошибка не переоборачивается.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return err
	}
	return &Error{Op: op, Kind: Classify(err), Err: err}
}

// KindOf возвращает вид ошибки; неклассифицированные считаются внутренними.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Classify сопоставляет ошибку pgx/pgconn виду по SQLSTATE.
func Classify(err error) Kind {
	if errors.Is(err, pgx.ErrNoRows) {
		return KindNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindConnection
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyCode(pgErr.Code)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return KindConnection
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindConnection
	}
	return KindInternal
}

func classifyCode(code string) Kind {
	switch {
	case strings.HasPrefix(code, "23"):
		// unique_violation, foreign_key_violation, check_violation, not_null_violation
		return KindConstraint
	case strings.HasPrefix(code, "42"), strings.HasPrefix(code, "22"):
		// неизвестная колонка, синтаксис, несовпадение типов
		return KindMalformed
	case strings.HasPrefix(code, "08"),
		strings.HasPrefix(code, "28"),
		strings.HasPrefix(code, "57P"),
		code == "3D000":
		return KindConnection
	default:
		return KindInternal
	}
}

// ConstraintName возвращает имя нарушенного ограничения, если оно известно.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
