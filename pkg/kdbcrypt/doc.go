// Package kdbcrypt implements the cryptographic core of a KeePass v1
// (.kdb) database codec: key derivation from a passphrase and/or key
// file, the iterated AES-256-ECB key transform, and AES-256-CBC payload
// encryption with PKCS#7 padding and a SHA-256 integrity check.
//
// Every derived key and the decrypted payload are carried as a SecretBuffer:
// page-locked for its lifetime and zeroed before release, on every path,
// success or error. Intermediate bytes (key-file read buffers, digests, the
// padded CBC input) are held in plain, unlocked []byte slices for a few
// statements before they are moved into a SecretBuffer or wiped.
package kdbcrypt
