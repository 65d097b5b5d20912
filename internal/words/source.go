package words

import (
	"crypto/rand"
	"math/big"
)

// CryptoSource draws from crypto/rand. The zero value is ready to use and
// safe to share between goroutines.
type CryptoSource struct{}

// NewCryptoSource returns the production entropy source.
func NewCryptoSource() Source { return CryptoSource{} }

// Intn returns a uniform value in [0, n).
func (CryptoSource) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}
	return int(v.Int64())
}

// FixedSource always returns the same index, wrapped into range.
type FixedSource int

// Intn returns int(f) mod n.
func (f FixedSource) Intn(n int) int {
	i := int(f) % n
	if i < 0 {
		i += n
	}
	return i
}
