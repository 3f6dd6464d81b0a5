package common

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWipeByteArray_ZeroesContents(t *testing.T) {
	b := []byte("secret")
	WipeByteArray(b)
	for i, v := range b {
		require.Zero(t, v, "byte %d not wiped", i)
	}
}

func TestWipeByteArray_NilIsNoop(t *testing.T) {
	require.NotPanics(t, func() { WipeByteArray(nil) })
}
