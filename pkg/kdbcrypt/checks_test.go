package kdbcrypt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckDecryptionSuccessEmptyDatabaseRule(t *testing.T) {
	require.NoError(t, checkDecryptionSuccess(&Header{NumGroups: 0}, nil))
	require.ErrorIs(t, checkDecryptionSuccess(&Header{NumGroups: 1}, nil), ErrDecrypt)
}

func TestCheckDecryptionSuccessRejectsOversizedPlaintext(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping multi-gigabyte allocation in -short mode")
	}
	big := make([]byte, maxPlaintextLen+1)
	require.ErrorIs(t, checkDecryptionSuccess(&Header{}, big), ErrDecrypt)
}

func TestCheckContentHash(t *testing.T) {
	plaintext := []byte("the quick brown fox")
	header := &Header{ContentHash: ContentHash(plaintext)}

	require.NoError(t, checkContentHash(header, plaintext))

	header.ContentHash[0] ^= 0xFF
	require.ErrorIs(t, checkContentHash(header, plaintext), ErrContentHash)
}
