package deck

import (
	"crypto/cipher"
	"math/big"

	"go.dedis.ch/kyber/v4/suites"
	"go.dedis.ch/kyber/v4/util/random"
)

var suite suites.Suite = suites.MustFind("Ed25519")

// Source yields uniformly distributed integers for shuffling.
type Source interface {
	// Intn returns a uniform integer in [0,n). It panics if n <= 0.
	Intn(n int) int
}

type streamSource struct {
	stream cipher.Stream
}

// NewSeededSource returns a deterministic Source: the same seed always yields
// the same sequence, and therefore the same shuffle of a New deck.
func NewSeededSource(seed []byte) Source {
	return &streamSource{stream: suite.XOF(seed)}
}

// NewRandomSource returns a Source backed by the suite's cryptographic random stream.
func NewRandomSource() Source {
	return &streamSource{stream: suite.RandomStream()}
}

func (s *streamSource) Intn(n int) int {
	if n <= 0 {
		panic("deck: invalid argument to Intn")
	}
	return int(random.Int(big.NewInt(int64(n)), s.stream).Int64())
}
