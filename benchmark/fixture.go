package benchmark

import "bytes"

const (
	DefaultKey          = "ThisIsABigTestValuePerhapsNotThatGood"
	DefaultValuePattern = "test_value"
	DefaultValueRepeat  = 1000 // 10000 bytes with the default pattern
	DefaultIterations   = 1000
)

// Fixture is the key-value pair written to a store before it is timed
type Fixture struct {
	Key   []byte
	Value []byte
}

// NewFixture builds a fixture whose value is pattern repeated count times
func NewFixture(key, pattern string, count int) Fixture {
	if count < 0 {
		count = 0
	}
	return Fixture{
		Key:   []byte(key),
		Value: bytes.Repeat([]byte(pattern), count),
	}
}

// DefaultFixture returns the fixture used when nothing is configured
func DefaultFixture() Fixture {
	return NewFixture(DefaultKey, DefaultValuePattern, DefaultValueRepeat)
}
