package persona

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGreeting(t *testing.T) {
	got := Greeting("Rotational Motion", []string{"Torque", "Moment of Inertia"})

	assert.True(t, strings.HasPrefix(got, "Hello! Main hoon aapka **Quantum Rishi**"))
	assert.Contains(t, got, "**Rotational Motion** thoda mushkil")
	assert.True(t, strings.HasSuffix(got, "\n\n* Torque\n* Moment of Inertia"))
}

func TestGreeting_NoSubtopics(t *testing.T) {
	got := Greeting("Optics", nil)
	assert.True(t, strings.HasSuffix(got, "pehle samjhu? \n\n* "))
}

func TestSystemInstruction(t *testing.T) {
	assert.Contains(t, SystemInstruction, Tagline)
	assert.Contains(t, SystemInstruction, "strictly return JSON")
}
