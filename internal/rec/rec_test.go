package rec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errBoom = errors.New("boom")

func TestError(t *testing.T) {
	f := func() (err error) {
		defer Error(&err)
		panic(errBoom)
	}
	err := f()
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "recovered panic")
}

func TestErrorNoPanic(t *testing.T) {
	f := func() (err error) {
		defer Error(&err)
		return errBoom
	}
	assert.Same(t, errBoom, f())
}

func TestWrap(t *testing.T) {
	f := func(p bool) (err error) {
		defer Wrap(&err, "file %q: %w", "a.txt")
		if p {
			panic("bad digit")
		}
		return errBoom
	}

	err := f(false)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), `file "a.txt"`)

	err = f(true)
	assert.Contains(t, err.Error(), "bad digit")
}

func TestFunc(t *testing.T) {
	err := Func(func() error { panic("worker") })()
	assert.ErrorContains(t, err, "worker")

	assert.NoError(t, Func(func() error { return nil })())
}
