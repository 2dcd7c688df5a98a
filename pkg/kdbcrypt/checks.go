package kdbcrypt

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
)

// maxPlaintextLen is the KeePass v1 serialized-size cap (spec.md §4.8):
// 2 GiB minus the header's own serialized size.
const maxPlaintextLen = 2_147_483_446

// checkDecryptionSuccess implements spec.md §4.8's first integrity check:
// reject an implausible plaintext length, and reject a zero-length
// plaintext unless the header claims the database is legitimately empty.
func checkDecryptionSuccess(header *Header, plaintext []byte) error {
	if len(plaintext) > maxPlaintextLen {
		return fmt.Errorf("%w: plaintext length %d exceeds %d byte cap", ErrDecrypt, len(plaintext), maxPlaintextLen)
	}
	if len(plaintext) == 0 && header.NumGroups > 0 {
		return fmt.Errorf("%w: empty plaintext but header claims %d groups", ErrDecrypt, header.NumGroups)
	}
	return nil
}

// ContentHash computes the SHA-256 of plaintext. It is exported (following
// the Rust original's public get_content_hash, see SPEC_FULL.md) so a
// caller can recompute a header's ContentHash field after editing the
// decrypted tree, before calling Crypter.Encrypt.
func ContentHash(plaintext []byte) [32]byte {
	return sha256.Sum256(plaintext)
}

// checkContentHash implements spec.md §4.8's second integrity check: the
// format has no MAC, so this plaintext SHA-256 comparison is the primary
// authenticity witness. The comparison runs in constant time via
// crypto/subtle, not ==, per the internalcheck policy tests.
func checkContentHash(header *Header, plaintext []byte) error {
	got := ContentHash(plaintext)
	if subtle.ConstantTimeCompare(got[:], header.ContentHash[:]) != 1 {
		return fmt.Errorf("%w", ErrContentHash)
	}
	return nil
}
