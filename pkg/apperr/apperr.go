// Package apperr 定义业务错误分类及其到 HTTP 状态码的映射。
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误类别，可直接用于 errors.Is
type Kind string

const (
	NotFound           Kind = "not found"
	InvalidOperation   Kind = "invalid operation"
	InvalidState       Kind = "invalid state"
	AlreadyExists      Kind = "already exists"
	ValidationFailed   Kind = "validation failed"
	Unauthorized       Kind = "unauthorized"
	Timeout            Kind = "timeout"
	StorageUnavailable Kind = "storage unavailable"
	Inconsistent       Kind = "graph inconsistent"
)

func (k Kind) Error() string { return string(k) }

// Error 携带类别、对外消息、可选字段名与底层错误
type Error struct {
	Kind    Kind
	Message string
	Field   string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is 使 errors.Is(err, apperr.NotFound) 成立
func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

func New(kind Kind, msg string) *Error { return &Error{Kind: kind, Message: msg} }

func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func Field(field, msg string) *Error {
	return &Error{Kind: ValidationFailed, Message: msg, Field: field}
}

func NotFoundf(format string, args ...any) *Error {
	return New(NotFound, fmt.Sprintf(format, args...))
}

// FromStorage 把存储层错误归类：超时、已分类错误原样返回，其余视为存储不可用
func FromStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(Timeout, op+" timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return Wrap(StorageUnavailable, op+" failed", err)
}

// KindOf 返回错误类别，未分类错误返回空串
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	var k Kind
	if errors.As(err, &k) {
		return k
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Timeout
	}
	return ""
}

// Status 错误类别对应的 HTTP 状态码
func Status(err error) int {
	switch KindOf(err) {
	case NotFound:
		return http.StatusNotFound
	case InvalidOperation, InvalidState, AlreadyExists, ValidationFailed:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage 对外可见的错误消息，5xx 不暴露内部细节
func PublicMessage(err error) string {
	if Status(err) >= http.StatusInternalServerError {
		return "internal server error"
	}
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return string(KindOf(err))
}

// FieldOf 返回校验失败的字段名
func FieldOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Field
	}
	return ""
}
