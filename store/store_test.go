package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanName(t *testing.T) {
	for _, tc := range []struct {
		Name, Want string
	}{
		{"foo", "foo"},
		{"dir/foo.txt", "dir/foo.txt"},
		{"dir//foo", "dir/foo"},
		{"./foo", "foo"},
		{"dir/./foo", "dir/foo"},
		{"dir/", "dir"},
		{"..foo", "..foo"},
		{"foo..", "foo.."},
	} {
		got, err := CleanName(tc.Name)
		require.NoError(t, err, tc.Name)
		require.Equal(t, tc.Want, got, tc.Name)
	}

	for _, name := range []string{
		"",
		".",
		"/etc/passwd",
		"..",
		"../secret",
		"dir/../../secret",
		"dir/..",
		"a\\..\\b",
		"foo\x00bar",
	} {
		_, err := CleanName(name)
		require.ErrorIs(t, err, ErrInvalidName, name)
	}
}

func TestNothing(t *testing.T) {
	_, err := Nothing{}.Read(context.Background(), "foo")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, Nothing{}.Close())
}
