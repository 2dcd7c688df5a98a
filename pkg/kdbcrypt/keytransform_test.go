package kdbcrypt

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func testHeader(rounds uint32) *Header {
	h := &Header{KeyTransfRounds: rounds}
	for i := range h.TransfRandomSeed {
		h.TransfRandomSeed[i] = byte(i)
	}
	for i := range h.FinalRandomSeed {
		h.FinalRandomSeed[i] = byte(i)
	}
	for i := range h.IV {
		h.IV[i] = byte(i)
	}
	return h
}

func newMaster(t *testing.T) *SecretBuffer {
	t.Helper()
	master := make([]byte, 32)
	for i := range master {
		master[i] = byte(255 - i)
	}
	sb, err := fromMoved(master)
	require.NoError(t, err)
	return sb
}

func TestTransformKeyZeroRoundsFormula(t *testing.T) {
	master := newMaster(t)
	masterCopy := append([]byte(nil), master.Bytes()...)
	header := testHeader(0)

	finalkey, err := transformKey(master, header)
	require.NoError(t, err)
	defer finalkey.Release()

	mixed := sha256.Sum256(masterCopy)
	h := sha256.New()
	h.Write(header.FinalRandomSeed[:])
	h.Write(mixed[:])
	want := h.Sum(nil)

	require.Equal(t, want, finalkey.Bytes())
}

func TestTransformKeyMasterIsReleased(t *testing.T) {
	master := newMaster(t)
	header := testHeader(1)

	finalkey, err := transformKey(master, header)
	require.NoError(t, err)
	defer finalkey.Release()

	require.Equal(t, 0, master.Len())
}

func TestTransformKeyRoundsAffectOutput(t *testing.T) {
	header1 := testHeader(1)
	header2 := testHeader(2)

	fk1, err := transformKey(newMaster(t), header1)
	require.NoError(t, err)
	defer fk1.Release()

	fk2, err := transformKey(newMaster(t), header2)
	require.NoError(t, err)
	defer fk2.Release()

	require.NotEqual(t, fk1.Bytes(), fk2.Bytes())
}

func TestTransformKeyRejectsWrongSizedMaster(t *testing.T) {
	sb, err := newZeroed(16)
	require.NoError(t, err)

	_, err = transformKey(sb, testHeader(1))
	require.ErrorIs(t, err, ErrDecrypt)
}
