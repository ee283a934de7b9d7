package engine

import (
	"math/rand/v2"
	"time"
)

// coinFlip picks which of the two team slots gets priority. It XORs two
// uniform draws with wall-clock parity; not suitable for anything beyond
// deciding who bans first. Package var so tests can pin the outcome.
var coinFlip = func() int {
	a := rand.IntN(2)
	b := int(time.Now().UnixNano()) & 1
	c := rand.IntN(2)
	return a ^ b ^ c
}
