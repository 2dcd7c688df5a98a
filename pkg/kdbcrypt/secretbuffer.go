package kdbcrypt

import (
	"fmt"
	"sync"

	"github.com/awnumar/memguard"
)

// SecretBuffer is a variable-length byte container whose storage is
// page-locked for its lifetime and zeroed before release. Every transient
// secret named in spec.md §3 (passwordkey, keyfilekey, masterkey, finalkey,
// the decrypted payload) is carried as one of these once derived.
// Intermediate values on the way there (a read buffer, a digest, the padded
// CBC input) sit in ordinary, unlocked []byte slices for a few statements
// before they are moved into a SecretBuffer or wiped with zeroizeBytes.
//
// A SecretBuffer has a single owner at a time. Handing one to another
// component (e.g. passing masterkey into transformKey) is a move: the
// receiving function takes responsibility for calling Release, and the
// sender must not touch it again.
type SecretBuffer struct {
	mu  sync.Mutex
	buf *memguard.LockedBuffer
}

// newZeroed allocates n zero-filled, page-locked bytes. It fails with
// ErrResource if the OS refuses to lock the pages.
func newZeroed(n int) (*SecretBuffer, error) {
	lb, err := memguard.NewImmutableFromBytes(make([]byte, n))
	if err != nil {
		return nil, fmt.Errorf("%w: lock %d bytes: %v", ErrResource, n, err)
	}
	lb.Melt()
	return &SecretBuffer{buf: lb}, nil
}

// fromMoved takes ownership of an already-allocated byte slice, locks it,
// and returns it as a SecretBuffer. The caller must not retain src after
// this call: memguard.NewImmutableFromBytes wipes it as part of the move.
func fromMoved(src []byte) (*SecretBuffer, error) {
	lb, err := memguard.NewImmutableFromBytes(src)
	if err != nil {
		return nil, fmt.Errorf("%w: lock %d bytes: %v", ErrResource, len(src), err)
	}
	lb.Melt()
	return &SecretBuffer{buf: lb}, nil
}

// NewSecretBuffer allocates n zero-filled, page-locked bytes for a caller
// outside this package (e.g. to build a plaintext buffer before calling
// Crypter.Encrypt). It fails with ErrResource if the OS refuses to lock the
// pages.
func NewSecretBuffer(n int) (*SecretBuffer, error) {
	return newZeroed(n)
}

// NewSecretBufferFromBytes takes ownership of an already-allocated byte
// slice, locks it, and returns it as a SecretBuffer. The caller must not
// retain src after this call.
func NewSecretBufferFromBytes(src []byte) (*SecretBuffer, error) {
	return fromMoved(src)
}

// Len reports the current length of the secret.
func (s *SecretBuffer) Len() int {
	if s == nil || s.buf == nil {
		return 0
	}
	return s.buf.Size()
}

// Bytes borrows the contents for reading. The returned slice is only valid
// until the next call to Release or Truncate; it must not escape the
// caller's operation scope.
func (s *SecretBuffer) Bytes() []byte {
	if s == nil || s.buf == nil {
		return nil
	}
	return s.buf.Bytes()
}

// BytesMut borrows the contents for in-place mutation, e.g. the repeated
// ECB self-application in transformKey.
func (s *SecretBuffer) BytesMut() []byte {
	return s.Bytes()
}

// Truncate zeros the bytes being dropped and then shortens the buffer to n.
// n must not exceed the current length.
func (s *SecretBuffer) Truncate(n int) error {
	if s == nil || s.buf == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.buf.Bytes()
	if n < 0 || n > len(cur) {
		return fmt.Errorf("%w: truncate(%d) out of range [0,%d]", ErrDecrypt, n, len(cur))
	}

	// Allocate the shrunk buffer first and copy straight into its locked
	// backing memory; the surviving bytes never transit a plain Go slice.
	shrunk, err := memguard.NewBuffer(n)
	if err != nil {
		return fmt.Errorf("%w: re-lock truncated buffer: %v", ErrResource, err)
	}
	shrunk.Melt()
	copy(shrunk.Bytes(), cur[:n])
	zeroizeBytes(cur[n:])

	old := s.buf
	s.buf = shrunk
	old.Destroy()
	return nil
}

// Release overwrites every byte with zero via a write the optimizer may not
// elide, unlocks the pages, and frees the storage. It is idempotent and
// safe to call on every path, success or error — this is the scope-exit
// discipline spec.md §4.1 requires in place of per-variable munlock calls.
func (s *SecretBuffer) Release() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buf == nil {
		return
	}
	s.buf.Destroy()
	s.buf = nil
}
