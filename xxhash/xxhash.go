// Package xxhash fingerprints normalized documentation content.
package xxhash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/jdoc2md"
)

// Ensure Sum is a jdoc2md.HashFunc.
var _ jdoc2md.HashFunc = Sum

// Sum returns the hex-encoded 64-bit xxHash of content.
func Sum(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
