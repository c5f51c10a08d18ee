package order

import (
	"crypto/rand"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// idGroups is the hyphen-separated group layout of an order id.
var idGroups = [...]int{8, 4, 4, 4, 4}

// GenerateID produces an order identifier of the form
// xxxxxxxx-xxxx-xxxx-xxxx-xxxx with each x drawn uniformly from [a-z0-9].
// Ids are not checked for collisions against existing orders; the
// probability is accepted as negligible.
func GenerateID() string {
	buf := make([]byte, 0, 28)
	for i, size := range idGroups {
		if i > 0 {
			buf = append(buf, '-')
		}
		for range size {
			buf = append(buf, idAlphabet[randomIndex()])
		}
	}
	return string(buf)
}

// randomIndex returns a uniform index into idAlphabet. Bytes >= 252 are
// rejected so the modulo stays unbiased (252 is the largest multiple of 36
// below 256).
func randomIndex() byte {
	var b [1]byte
	for {
		rand.Read(b[:])
		if b[0] < 252 {
			return b[0] % 36
		}
	}
}
