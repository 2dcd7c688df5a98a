package kdbcrypt

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/darrenldl/go-keepass/pkg/kdbcrypt/kdbcryptlog"
)

// keyFileReadChunk is the streamed-hash read size from spec.md §4.3.
const keyFileReadChunk = 2048

// passphraseKey implements spec.md §4.2: SHA-256 of the unlocked
// passphrase's utf-8 bytes (no normalization), with the SecureString
// deleted on every path, success or failure.
func passphraseKey(ctx context.Context, cred SecureString, cfg Config) (*SecretBuffer, error) {
	cfg.Logger.Debug(ctx, "deriving passphrase key material")

	cred.Unlock()
	defer cred.Delete()

	sum := sha256.Sum256(cred.Bytes())
	sb, err := fromMoved(sum[:])
	if err != nil {
		return nil, fmt.Errorf("%w: passphrase digest: %v", ErrDecrypt, err)
	}
	return sb, nil
}

// keyfileKey implements spec.md §4.3: interpret a key file by length, as a
// raw 32-byte key, a 64-byte hex-encoded key, or (otherwise, or on hex
// decode failure) the SHA-256 of the file streamed in 2048-byte chunks.
func keyfileKey(ctx context.Context, cred SecureString, cfg Config) (*SecretBuffer, error) {
	cred.Unlock()
	path := string(cred.Bytes())
	cfg.Logger.Debug(ctx, "deriving key-file key material", kdbcryptlog.Redacted("keyfile_path"))
	f, err := os.Open(path)
	cred.Delete()
	if err != nil {
		return nil, fmt.Errorf("%w: open key file: %v", ErrKeyFile, err)
	}
	defer f.Close()

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: seek key file: %v", ErrKeyFile, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: rewind key file: %v", ErrKeyFile, err)
	}

	switch size {
	case 32:
		return readRawKeyFile(f)
	case 64:
		sb, ok, err := readHexKeyFile(f)
		if err != nil {
			return nil, err
		}
		if ok {
			return sb, nil
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: rewind key file after failed hex decode: %v", ErrKeyFile, err)
		}
		return hashKeyFile(f)
	default:
		return hashKeyFile(f)
	}
}

// readRawKeyFile returns the file's exact 32 bytes as the key.
func readRawKeyFile(f *os.File) (*SecretBuffer, error) {
	buf := make([]byte, 32)
	if _, err := io.ReadFull(f, buf); err != nil {
		zeroizeBytes(buf)
		return nil, fmt.Errorf("%w: read raw key file: %v", ErrKeyFileRead, err)
	}
	sb, err := fromMoved(buf)
	if err != nil {
		return nil, err
	}
	return sb, nil
}

// readHexKeyFile attempts to decode the file's 64 ASCII bytes as a
// hex-encoded 32-byte value. ok is false (with a nil error) if the bytes
// are not valid hex, signaling the caller to fall back to hashing.
func readHexKeyFile(f *os.File) (sb *SecretBuffer, ok bool, err error) {
	raw := make([]byte, 64)
	if _, err := io.ReadFull(f, raw); err != nil {
		zeroizeBytes(raw)
		return nil, false, fmt.Errorf("%w: read hex key file: %v", ErrKeyFileRead, err)
	}
	defer zeroizeBytes(raw)

	decoded := make([]byte, 32)
	if _, err := hex.Decode(decoded, raw); err != nil {
		zeroizeBytes(decoded)
		return nil, false, nil
	}
	sb, lockErr := fromMoved(decoded)
	if lockErr != nil {
		return nil, false, lockErr
	}
	return sb, true, nil
}

// hashKeyFile streams the remainder of f in keyFileReadChunk-sized reads,
// SHA-256ing as it goes. Every read buffer is a SecretBuffer, zeroed
// between chunks.
func hashKeyFile(f *os.File) (*SecretBuffer, error) {
	h := sha256.New()

	chunk, err := newZeroed(keyFileReadChunk)
	if err != nil {
		return nil, err
	}
	defer chunk.Release()

	for {
		n, err := f.Read(chunk.BytesMut())
		if n > 0 {
			h.Write(chunk.Bytes()[:n])
		}
		zeroizeBytes(chunk.BytesMut())
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: read key file: %v", ErrKeyFileRead, err)
		}
		if n == 0 {
			break
		}
	}

	sum := h.Sum(nil)
	sb, lockErr := fromMoved(sum)
	if lockErr != nil {
		return nil, lockErr
	}
	return sb, nil
}

// masterKey implements spec.md §4.4's combination rule over an optional
// password and an optional key file.
func masterKey(ctx context.Context, password, keyfile SecureString, cfg Config) (*SecretBuffer, error) {
	switch {
	case password != nil && keyfile == nil:
		return passphraseKey(ctx, password, cfg)
	case password == nil && keyfile != nil:
		return keyfileKey(ctx, keyfile, cfg)
	case password != nil && keyfile != nil:
		pk, err := passphraseKey(ctx, password, cfg)
		if err != nil {
			return nil, err
		}
		kk, err := keyfileKey(ctx, keyfile, cfg)
		if err != nil {
			pk.Release()
			return nil, err
		}

		h := sha256.New()
		h.Write(pk.Bytes())
		h.Write(kk.Bytes())
		sum := h.Sum(nil)

		pk.Release()
		kk.Release()

		sb, lockErr := fromMoved(sum)
		if lockErr != nil {
			return nil, lockErr
		}
		return sb, nil
	default:
		return nil, ErrNoCredential
	}
}
