package discount

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	amount := 10.5
	rate := 0.25

	assert.Equal(t, "-10.50 €", Discount{Amount: &amount}.Label())
	assert.Equal(t, "-25%", Discount{Rate: &rate}.Label())
	assert.Empty(t, Discount{}.Label())
}
