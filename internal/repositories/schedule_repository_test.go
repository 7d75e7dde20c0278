package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikeEscaper(t *testing.T) {
	cases := map[string]string{
		"amy":       "amy",
		"%":         `\%`,
		"_":         `\_`,
		`\`:         `\\`,
		"50%_off\\": `50\%\_off\\`,
	}
	for in, want := range cases {
		assert.Equal(t, want, likeEscaper.Replace(in), in)
	}
}
