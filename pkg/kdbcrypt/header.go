package kdbcrypt

// Header is the read-only contract consumed from the on-disk parser
// (spec.md §3, §6). The parser and the group/entry tree it produces are
// out of scope for this package; Header names only the six fields the
// crypto core touches.
type Header struct {
	// TransfRandomSeed is the 32-byte ECB key used by the key-transform
	// stage (spec.md §4.5).
	TransfRandomSeed [32]byte

	// KeyTransfRounds is the number of ECB self-iterations to run. Zero
	// rounds is legal at this layer (spec.md §4.5 note); callers may
	// reject it via Config.MinRounds.
	KeyTransfRounds uint32

	// FinalRandomSeed is mixed into the SHA-256 that produces the final
	// key (spec.md §4.5).
	FinalRandomSeed [16]byte

	// IV is the CBC initialization vector for the payload cipher.
	IV [16]byte

	// ContentHash is the SHA-256 of the plaintext payload, the primary
	// integrity witness (spec.md §4.8).
	ContentHash [32]byte

	// NumGroups distinguishes a legitimately empty database from a
	// failed decryption (spec.md §4.8).
	NumGroups uint32
}
