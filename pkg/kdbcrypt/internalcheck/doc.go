// Package internalcheck provides static-analysis tests that enforce this
// module's secret-handling hygiene.
//
// These are not unit tests of behavior; they walk the AST of pkg/kdbcrypt
// looking for code shapes the security policy forbids: == / != between byte
// slices or arrays, and %x / %X verbs in the format string of fmt and log
// formatting calls, whatever the argument types. It is not intended for
// external use.
package internalcheck
