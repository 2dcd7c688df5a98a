// Command kdbcrypt-demo exercises pkg/kdbcrypt against a header sidecar and
// a payload file on disk. It is a demonstration harness analogous to the
// teacher's cmd/cbmpc-go, not a KeePass v1 file-format implementation.
package main

func main() {
	Execute()
}
