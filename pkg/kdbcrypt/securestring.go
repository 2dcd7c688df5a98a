package kdbcrypt

import (
	"fmt"

	"github.com/awnumar/memguard"
)

// SecureString is the external collaborator spec.md §6 describes: a
// utf-8 credential holder with an unlock/bytes/delete lifecycle. This
// package only consumes the interface — it never stores a long-lived
// reference to the plaintext it returns from Bytes, and it always calls
// Delete once it has extracted what it needs, on every path.
//
// The data model and its lifecycle (§3) live outside this package in the
// real caller; SimpleSecureString below is a minimal, concrete
// implementation used by this package's own tests, examples, and the demo
// CLI so the core can be exercised without depending on a specific
// credential-manager library.
type SecureString interface {
	// Unlock makes the plaintext readable. It must be safe to call more
	// than once.
	Unlock()
	// Bytes borrows the plaintext byte slice. The slice is only valid
	// between Unlock and Delete.
	Bytes() []byte
	// Delete zeroes the plaintext and returns the instance to a
	// locked-unreadable state.
	Delete()
}

// SimpleSecureString is a minimal SecureString backed by a memguard
// LockedBuffer. It is not a general-purpose credential manager — it exists
// so this package's tests and examples can construct credentials without a
// circular dependency on an external SecureString implementation.
type SimpleSecureString struct {
	buf *memguard.LockedBuffer
}

// NewSimpleSecureString takes ownership of plaintext and locks it in place.
// The caller must not retain plaintext after this call: like fromMoved,
// memguard.NewImmutableFromBytes wipes it as part of the move, so there is
// never a second, unlocked copy of the credential.
func NewSimpleSecureString(plaintext []byte) (*SimpleSecureString, error) {
	lb, err := memguard.NewImmutableFromBytes(plaintext)
	if err != nil {
		return nil, fmt.Errorf("%w: lock credential: %v", ErrResource, err)
	}
	return &SimpleSecureString{buf: lb}, nil
}

// Unlock implements SecureString.
func (s *SimpleSecureString) Unlock() {
	if s == nil || s.buf == nil {
		return
	}
	s.buf.Melt()
}

// Bytes implements SecureString.
func (s *SimpleSecureString) Bytes() []byte {
	if s == nil || s.buf == nil {
		return nil
	}
	return s.buf.Bytes()
}

// Delete implements SecureString.
func (s *SimpleSecureString) Delete() {
	if s == nil || s.buf == nil {
		return
	}
	s.buf.Destroy()
	s.buf = nil
}
