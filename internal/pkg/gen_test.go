package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateGameID(t *testing.T) {
	id := GenerateGameID()

	// adjective-animal-number
	assert.Len(t, strings.Split(id, "-"), 3)
	assert.NotEqual(t, id, GenerateGameID())
}
