package pkg

import (
	"crypto/rand"
	"math/big"

	petname "github.com/dustinkirkland/golang-petname"
)

const gameIDWords = 2

// GenerateGameID - generates a readable identifier for a finished game record,
// e.g. "brave-otter-4821".
func GenerateGameID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9999))
	if err != nil {
		return petname.Generate(gameIDWords, "-")
	}

	return petname.Generate(gameIDWords, "-") + "-" + n.String()
}
