package kdbcrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// maxPadByte is the largest PKCS#7 pad value this package trusts when
// Config.StrictPadding is enabled (spec.md §9, "Padding validation").
const maxPadByte = 16

// decryptRaw implements spec.md §4.6: AES-256-CBC-decrypt ciphertext under
// finalkey and header.IV, strip the PKCS#7-style trailing padding, and
// return the plaintext as a SecretBuffer. finalkey is consumed: zeroed and
// released before return, regardless of outcome.
func decryptRaw(header *Header, ciphertext []byte, finalkey *SecretBuffer, cfg Config) (*SecretBuffer, error) {
	defer finalkey.Release()

	if len(ciphertext) == 0 || len(ciphertext)%blockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a positive multiple of the block size", ErrDecrypt, len(ciphertext))
	}

	block, err := aes.NewCipher(finalkey.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: build CBC cipher: %v", ErrDecrypt, err)
	}

	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, header.IV[:]).CryptBlocks(plain, ciphertext)

	pad := int(plain[len(plain)-1])
	if cfg.StrictPadding && (pad == 0 || pad > maxPadByte) {
		zeroizeBytes(plain)
		return nil, fmt.Errorf("%w: invalid PKCS#7 pad byte %d", ErrDecrypt, pad)
	}
	if pad > len(plain) {
		zeroizeBytes(plain)
		return nil, fmt.Errorf("%w: pad byte %d exceeds plaintext length %d", ErrDecrypt, pad, len(plain))
	}

	sb, err := fromMoved(plain)
	if err != nil {
		return nil, err
	}
	if err := sb.Truncate(len(plain) - pad); err != nil {
		sb.Release()
		return nil, err
	}
	return sb, nil
}

// encryptRaw implements spec.md §4.7: AES-256-CBC-encrypt plaintext under
// finalkey and header.IV with PKCS#7 padding, returning the ciphertext (not
// a secret). Both finalkey and plaintext are consumed: zeroed and released
// before return.
func encryptRaw(header *Header, plaintext *SecretBuffer, finalkey *SecretBuffer) ([]byte, error) {
	defer finalkey.Release()
	defer plaintext.Release()

	block, err := aes.NewCipher(finalkey.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: build CBC cipher: %v", ErrDecrypt, err)
	}

	padded := pkcs7Pad(plaintext.Bytes())
	defer zeroizeBytes(padded)

	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, header.IV[:]).CryptBlocks(out, padded)
	return out, nil
}

// pkcs7Pad returns a copy of src padded to a multiple of blockSize using the
// PKCS#7 convention (pad value equals pad length; a full extra block of
// blockSize is appended when len(src) is already a multiple of blockSize).
func pkcs7Pad(src []byte) []byte {
	pad := blockSize - len(src)%blockSize
	out := make([]byte, len(src)+pad)
	copy(out, src)
	for i := len(src); i < len(out); i++ {
		out[i] = byte(pad)
	}
	return out
}
