package kdbcrypt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newFinalKey(t *testing.T) *SecretBuffer {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i * 3)
	}
	sb, err := fromMoved(key)
	require.NoError(t, err)
	return sb
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	header := testHeader(1)
	cfg := NewConfig()

	plain, err := fromMoved([]byte("hello, keepass"))
	require.NoError(t, err)

	ciphertext, err := encryptRaw(header, plain, newFinalKey(t))
	require.NoError(t, err)
	require.Equal(t, 0, len(ciphertext)%blockSize)

	decrypted, err := decryptRaw(header, ciphertext, newFinalKey(t), cfg)
	require.NoError(t, err)
	defer decrypted.Release()

	require.Equal(t, []byte("hello, keepass"), decrypted.Bytes())
}

func TestEncryptPadsToBlockBoundary(t *testing.T) {
	header := testHeader(1)
	// Exactly one block: PKCS#7 still appends a full padding block.
	plain, err := fromMoved(make([]byte, blockSize))
	require.NoError(t, err)

	ciphertext, err := encryptRaw(header, plain, newFinalKey(t))
	require.NoError(t, err)
	require.Equal(t, 2*blockSize, len(ciphertext))
}

func TestDecryptRejectsInvalidPadByteWhenStrict(t *testing.T) {
	header := testHeader(1)
	cfg := NewConfig(WithStrictPadding(true))

	// "x" pads to a single block ending in 0x0F. Flipping the last ciphertext
	// byte of that only block garbles the whole decrypted block under CBC, so
	// the recovered pad byte is no longer a valid 1..16 value.
	plain, err := fromMoved([]byte("x"))
	require.NoError(t, err)
	ciphertext, err := encryptRaw(header, plain, newFinalKey(t))
	require.NoError(t, err)

	ciphertext[len(ciphertext)-1] ^= 0xFF

	_, err = decryptRaw(header, ciphertext, newFinalKey(t), cfg)
	require.Error(t, err)
}

func TestDecryptRejectsNonBlockAlignedCiphertext(t *testing.T) {
	header := testHeader(1)
	cfg := NewConfig()

	_, err := decryptRaw(header, []byte("not16bytes"), newFinalKey(t), cfg)
	require.ErrorIs(t, err, ErrDecrypt)
}

func TestDecryptReleasesFinalKeyEvenOnError(t *testing.T) {
	header := testHeader(1)
	cfg := NewConfig()
	fk := newFinalKey(t)

	_, err := decryptRaw(header, []byte("bad"), fk, cfg)
	require.Error(t, err)
	require.Equal(t, 0, fk.Len())
}
