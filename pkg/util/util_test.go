package util

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapErrorf(t *testing.T) {
	orig := fmt.Errorf("disk on fire")
	err := WrapErrorf(orig, ErrNotFound, "node %d is gone", 42)

	assert.Equal(t, "node 42 is gone", err.Error())

	var werr *Error
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, ErrNotFound, werr.Code())
	assert.Equal(t, orig, errors.Unwrap(err))
}

func TestWrapErrorfNilOrig(t *testing.T) {
	err := WrapErrorf(nil, ErrBadParamInput, "bad input")

	var werr *Error
	require.True(t, errors.As(err, &werr))
	assert.Equal(t, ErrBadParamInput, werr.Code())
	assert.Nil(t, errors.Unwrap(err))
}

func TestReverseG(t *testing.T) {
	arr := []int{1, 2, 3, 4}
	got := ReverseG(arr)

	assert.Equal(t, []int{4, 3, 2, 1}, got)
	// the input slice stays untouched
	assert.Equal(t, []int{1, 2, 3, 4}, arr)

	assert.Equal(t, []string{"y", "x"}, ReverseG([]string{"x", "y"}))
	assert.Empty(t, ReverseG([]int{}))
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 3, Min(3, 7))
	assert.Equal(t, 7, Max(3, 7))
	assert.Equal(t, 1.5, Min(2.5, 1.5))
	assert.Equal(t, "b", Max("a", "b"))
}

func TestReadLine(t *testing.T) {
	br := bufio.NewReader(strings.NewReader("first line\r\nsecond\n"))

	line, err := ReadLine(br)
	require.NoError(t, err)
	assert.Equal(t, "first line", line)

	line, err = ReadLine(br)
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	_, err = ReadLine(br)
	assert.ErrorIs(t, err, io.EOF)
}

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 3.14, RoundFloat(3.14159, 2))
	assert.Equal(t, 3.0, RoundFloat(2.5001, 0))
}
