// Package assert provides comparison helpers for testers. Each helper reports
// through core.TestContext.Assert: a failed check records an assertion error
// and stops the tester, unless NoAbort is given.
//
//	func testDiv(t core.TestContext) {
//		assert.Eq(t, div(6, 3), 2)
//		assert.Lt(t, div(1, 3), 1, assert.Message("rounds down"), assert.NoAbort())
//	}
package assert

import (
	"cmp"
	"fmt"

	"utester/pkg/utester/core"
)

type options struct {
	message string
	noAbort bool
}

type Option func(*options)

// Message replaces the default failure message.
func Message(msg string) Option {
	return func(o *options) {
		o.message = msg
	}
}

// NoAbort keeps the tester running after a failed check.
func NoAbort() Option {
	return func(o *options) {
		o.noAbort = true
	}
}

func check(t core.TestContext, ok bool, want any, got any, defaultMessage func() string, opts []Option) bool {
	if ok {
		return true
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.message == "" {
		o.message = defaultMessage()
	}

	return t.Assert(false, core.Assertion{
		Want:     want,
		Got:      got,
		Message:  o.message,
		Continue: o.noAbort,
	})
}

func True(t core.TestContext, got bool, opts ...Option) bool {
	return check(t, got, true, got, func() string {
		return fmt.Sprintf("want True value, got %v", got)
	}, opts)
}

func False(t core.TestContext, got bool, opts ...Option) bool {
	return check(t, !got, false, got, func() string {
		return fmt.Sprintf("want False value, got %v", got)
	}, opts)
}

func Eq[T comparable](t core.TestContext, got T, want T, opts ...Option) bool {
	return check(t, got == want, want, got, func() string {
		return fmt.Sprintf("want %v, got %v", want, got)
	}, opts)
}

func Neq[T comparable](t core.TestContext, got T, want T, opts ...Option) bool {
	return check(t, got != want, want, got, func() string {
		return fmt.Sprintf("not want %v, but got same value", want)
	}, opts)
}

func Lt[T cmp.Ordered](t core.TestContext, got T, want T, opts ...Option) bool {
	return check(t, cmp.Less(got, want), want, got, func() string {
		return fmt.Sprintf("want less than %v, got %v", want, got)
	}, opts)
}

func Le[T cmp.Ordered](t core.TestContext, got T, want T, opts ...Option) bool {
	return check(t, cmp.Compare(got, want) <= 0, want, got, func() string {
		return fmt.Sprintf("want less or equal than %v, got %v", want, got)
	}, opts)
}

func Gt[T cmp.Ordered](t core.TestContext, got T, want T, opts ...Option) bool {
	return check(t, cmp.Compare(got, want) > 0, want, got, func() string {
		return fmt.Sprintf("want greater than %v, got %v", want, got)
	}, opts)
}

func Ge[T cmp.Ordered](t core.TestContext, got T, want T, opts ...Option) bool {
	return check(t, cmp.Compare(got, want) >= 0, want, got, func() string {
		return fmt.Sprintf("want greater or equal than %v, got %v", want, got)
	}, opts)
}

// Is checks that got and want point to the same value.
func Is[T any](t core.TestContext, got *T, want *T, opts ...Option) bool {
	return check(t, got == want, want, got, func() string {
		return "want two same reference"
	}, opts)
}

// IsNot checks that got and want point to different values.
func IsNot[T any](t core.TestContext, got *T, want *T, opts ...Option) bool {
	return check(t, got != want, want, got, func() string {
		return "want two different reference"
	}, opts)
}
