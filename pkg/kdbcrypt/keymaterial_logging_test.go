package kdbcrypt

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/darrenldl/go-keepass/pkg/kdbcrypt/kdbcryptlog"
)

// recordingLogger captures every Debug call so tests can assert a real
// call site fired, and that it never carried raw secret bytes.
type recordingLogger struct {
	kdbcryptlog.Logger
	msgs []string
	args [][]any
}

func (r *recordingLogger) Debug(_ context.Context, msg string, args ...any) {
	r.msgs = append(r.msgs, msg)
	r.args = append(r.args, args)
}

func (r *recordingLogger) With(...any) kdbcryptlog.Logger { return r }

func TestPassphraseKeyLogsDiagnostic(t *testing.T) {
	rec := &recordingLogger{}
	cfg := NewConfig(WithLogger(rec))

	sb, err := passphraseKey(context.Background(), newTestSecureString(t, "test"), cfg)
	require.NoError(t, err)
	defer sb.Release()

	require.Contains(t, rec.msgs, "deriving passphrase key material")
}

func TestKeyfileKeyLogsRedactedPath(t *testing.T) {
	rec := &recordingLogger{}
	cfg := NewConfig(WithLogger(rec))

	raw := make([]byte, 32)
	path := writeTempKeyFile(t, raw)

	sb, err := keyfileKey(context.Background(), newTestSecureString(t, path), cfg)
	require.NoError(t, err)
	defer sb.Release()

	require.Contains(t, rec.msgs, "deriving key-file key material")

	for _, call := range rec.args {
		for _, arg := range call {
			require.NotContains(t, fmt.Sprint(arg), path, "logged args must not contain the key-file path")
		}
	}
}
