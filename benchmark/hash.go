package benchmark

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"golang.org/x/crypto/sha3"
)

// Hasher computes a hex digest of its input
type Hasher interface {
	// Name returns the label used in the printed results
	Name() string

	// Sum returns the lowercase hex digest of data, without a 0x prefix
	Sum(data []byte) string
}

// Hash function names
const (
	HashSHA256    = "sha256"
	HashKeccak256 = "keccak256"
	HashSHA3256   = "sha3-256"
	HashXXHash64  = "xxhash64"
)

// DefaultHashes is the hash order of a run when none is configured
var DefaultHashes = []string{HashSHA256, HashKeccak256}

var ErrUnknownHash = errors.New("unknown hash function")

type hasherFunc struct {
	name string
	sum  func([]byte) string
}

func (h hasherFunc) Name() string           { return h.name }
func (h hasherFunc) Sum(data []byte) string { return h.sum(data) }

var hashers = map[string]Hasher{
	HashSHA256: hasherFunc{HashSHA256, func(data []byte) string {
		digest := sha256.Sum256(data)
		return common.Bytes2Hex(digest[:])
	}},
	// Legacy Keccak-256 padding, as used by Ethereum
	HashKeccak256: hasherFunc{HashKeccak256, func(data []byte) string {
		return common.Bytes2Hex(crypto.Keccak256(data))
	}},
	// FIPS-202 padding
	HashSHA3256: hasherFunc{HashSHA3256, func(data []byte) string {
		digest := sha3.Sum256(data)
		return common.Bytes2Hex(digest[:])
	}},
	// Non-cryptographic baseline
	HashXXHash64: hasherFunc{HashXXHash64, func(data []byte) string {
		return fmt.Sprintf("%016x", xxhash.Sum64(data))
	}},
}

// NewHasher looks up a hash function by name
func NewHasher(name string) (Hasher, error) {
	h, ok := hashers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHash, name)
	}
	return h, nil
}
