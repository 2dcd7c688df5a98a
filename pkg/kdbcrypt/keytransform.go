package kdbcrypt

import (
	"crypto/aes"
	"crypto/sha256"
	"fmt"
)

// blockSize is the AES block size; the key-transform state is always two
// AES blocks (32 bytes), with no padding block and no IV (spec.md §4.5).
const blockSize = aes.BlockSize

// transformKey implements spec.md §4.5: iterate an AES-256-ECB
// self-application of master keyed by header.TransfRandomSeed, then mix in
// header.FinalRandomSeed via SHA-256 to produce the domain-separated final
// key. master is consumed: it is zeroed and released before return,
// regardless of outcome.
func transformKey(master *SecretBuffer, header *Header) (*SecretBuffer, error) {
	defer master.Release()

	if master.Len() != 32 {
		return nil, fmt.Errorf("%w: master key must be 32 bytes, got %d", ErrDecrypt, master.Len())
	}

	block, err := aes.NewCipher(header.TransfRandomSeed[:])
	if err != nil {
		return nil, fmt.Errorf("%w: build ECB cipher: %v", ErrDecrypt, err)
	}

	state := master.BytesMut()
	tmp := make([]byte, blockSize)
	defer zeroizeBytes(tmp)

	for i := uint32(0); i < header.KeyTransfRounds; i++ {
		block.Encrypt(tmp, state[:blockSize])
		copy(state[:blockSize], tmp)
		block.Encrypt(tmp, state[blockSize:])
		copy(state[blockSize:], tmp)
	}

	mixed := sha256.Sum256(state)

	h := sha256.New()
	h.Write(header.FinalRandomSeed[:])
	h.Write(mixed[:])
	final := h.Sum(nil)

	finalkey, err := fromMoved(final)
	if err != nil {
		return nil, err
	}
	return finalkey, nil
}
