//go:build cgo

package keygen

const libsecp256k1Linked = true
