package kdbcrypt

import (
	"context"
	"fmt"
	"sync"
)

// Crypter holds the credential state for a single decrypt or encrypt
// operation, the way the teacher's Job2P holds mutable per-call state
// (spec.md §5). Decrypt and Encrypt hold an internal mutex for the
// duration of the call, so calls on a shared instance run one at a time.
type Crypter struct {
	mu       sync.Mutex
	password SecureString
	keyfile  SecureString
	cfg      Config
}

// NewCrypter constructs a Crypter from an optional password and an
// optional key file. At least one must be non-nil; both nil is rejected
// immediately rather than deferred to the first call, so a misconfigured
// caller fails fast.
func NewCrypter(password, keyfile SecureString, opts ...Option) (*Crypter, error) {
	if password == nil && keyfile == nil {
		return nil, ErrNoCredential
	}
	return &Crypter{
		password: password,
		keyfile:  keyfile,
		cfg:      NewConfig(opts...),
	}, nil
}

// getFinalKey implements spec.md §2's "get_finalkey" step: derive the
// master key per §4.4, then run it through the key transform (§4.5).
func (c *Crypter) getFinalKey(ctx context.Context, header *Header) (*SecretBuffer, error) {
	if header.KeyTransfRounds < c.cfg.MinRounds {
		return nil, fmt.Errorf("%w: key_transf_rounds %d below configured minimum %d", ErrDecrypt, header.KeyTransfRounds, c.cfg.MinRounds)
	}

	master, err := masterKey(ctx, c.password, c.keyfile, c.cfg)
	if err != nil {
		return nil, err
	}
	return transformKey(master, header)
}

// Decrypt implements the control flow from spec.md §2: get_finalkey ->
// transform_key -> decrypt_raw -> check_decryption_success ->
// check_content_hash -> return plaintext. The returned SecretBuffer is
// owned by the caller, who is responsible for calling Release once the
// plaintext has been consumed (spec.md §6, "Produced to the parser").
func (c *Crypter) Decrypt(ctx context.Context, header *Header, ciphertext []byte) (*SecretBuffer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	finalkey, err := c.getFinalKey(ctx, header)
	if err != nil {
		return nil, err
	}

	plaintext, err := decryptRaw(header, ciphertext, finalkey, c.cfg)
	if err != nil {
		return nil, err
	}

	if err := checkDecryptionSuccess(header, plaintext.Bytes()); err != nil {
		plaintext.Release()
		return nil, err
	}
	if err := checkContentHash(header, plaintext.Bytes()); err != nil {
		plaintext.Release()
		return nil, err
	}
	return plaintext, nil
}

// Encrypt is the mirror image of Decrypt, without the post-decryption
// checks (spec.md §2). plaintext is consumed: ownership moves into this
// call, and it is zeroed and released before return regardless of outcome.
func (c *Crypter) Encrypt(ctx context.Context, header *Header, plaintext *SecretBuffer) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	finalkey, err := c.getFinalKey(ctx, header)
	if err != nil {
		plaintext.Release()
		return nil, err
	}
	return encryptRaw(header, plaintext, finalkey)
}
