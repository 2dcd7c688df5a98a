package kdbcrypt

import "github.com/awnumar/memguard"

// zeroizeBytes overwrites buf with zeros using memguard.WipeBytes, which is
// implemented so the optimizer cannot elide the write. SecretBuffer.Release
// does not call it (memguard's Destroy wipes the locked pages itself); it is
// for one-off scrubs of bytes outside a SecretBuffer's lifetime, e.g. the
// dropped tail in SecretBuffer.Truncate or a plain read buffer.
func zeroizeBytes(buf []byte) {
	memguard.WipeBytes(buf)
}
