package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	assert.Equal(t, MaskToken, Mask("1234", 4))
	assert.Equal(t, "1234"+MaskToken, Mask("1234567", 4))
	assert.Equal(t, MaskToken, Mask("", 4))
	assert.Equal(t, "ACC1"+MaskToken, Mask("ACC100200300", 4))
	assert.Equal(t, MaskToken, Mask("abc", -1))
	assert.Equal(t, MaskToken, Mask("abcdef", 0))
}

func TestReveal(t *testing.T) {
	assert.Equal(t, "ACC100200", Reveal("ACC100200", 4, true))
	assert.Equal(t, "ACC1"+MaskToken, Reveal("ACC100200", 4, false))
}
