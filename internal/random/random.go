package random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

var (
	ErrInvalidLength = fmt.Errorf("invalid length")
)

type Random interface {
	ID(length int) (string, error)
}

type random struct {
	reader io.Reader
}

func New() Random {
	return &random{reader: rand.Reader}
}

// ID returns length lowercase hex characters.
func (ran *random) ID(length int) (string, error) {
	if length < 0 {
		return "", ErrInvalidLength
	}

	b := make([]byte, (length+1)/2)
	if _, err := io.ReadFull(ran.reader, b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b)[:length], nil
}
