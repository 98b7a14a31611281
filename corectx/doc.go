// Package corectx implements the embedder API (§6): a Context bundles the
// heap, symbol registry, call stack, and interpreter Machine that make up
// one runtime instance, and exposes the register-indexed surface an
// embedder drives it through — value construction/reading, the
// make_values/read_values format mini-language, variable and global
// access, callable construction, invocation, and the native-block
// barrier.
package corectx
