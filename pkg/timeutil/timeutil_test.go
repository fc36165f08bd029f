package timeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayDate(t *testing.T) {
	assert.Equal(t, "Friday, January 10", DisplayDate("2025-01-10"))
}

func TestDisplayDatePassthrough(t *testing.T) {
	assert.Equal(t, "next Friday night", DisplayDate("next Friday night"))
}
