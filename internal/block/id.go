package block

import "math/rand"

const idCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomID generates a block id of the given length from a lowercase
// alphanumeric charset. Length is configurable in settings; ids only
// need to be unique within one user's notes, not globally.
func RandomID(length int, rng *rand.Rand) string {
	if length <= 0 {
		length = 5
	}
	b := make([]byte, length)
	for i := range b {
		b[i] = idCharset[rng.Intn(len(idCharset))]
	}
	return string(b)
}
