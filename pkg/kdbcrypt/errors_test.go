package kdbcrypt

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindClassifiesTaxonomy(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorKind
	}{
		{ErrNoCredential, KindPass},
		{ErrKeyFile, KindFile},
		{ErrKeyFileRead, KindRead},
		{ErrDecrypt, KindDecrypt},
		{ErrContentHash, KindHash},
		{ErrResource, KindResource},
		{fmt.Errorf("wrap: %w", ErrKeyFile), KindFile},
		{nil, KindNone},
		{fmt.Errorf("unrelated"), KindNone},
	}
	for _, c := range cases {
		require.Equal(t, c.want, Kind(c.err))
	}
}
