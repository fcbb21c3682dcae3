package engine

import (
	"math/rand"

	"github.com/vovakirdan/popquiz/internal/config"
)

// NextColor picks an ammo or spawn color.
//
// Candidates are the on-board colors minus forbidden, falling back to the
// profile palette minus forbidden, then to the whole profile palette. With
// probability profile.VarietyChance the on-board restriction is skipped so
// late boards keep receiving colors that are no longer present.
//
// The variety roll is always drawn, so the rng sequence does not depend on
// the board contents.
func NextColor(rng *rand.Rand, active, forbidden ColorSet, profile config.Profile) Color {
	palette := Palette(profile.Colors)
	variety := rng.Float64() < profile.VarietyChance

	candidates := active.Intersect(palette).Without(forbidden)
	if variety {
		candidates = 0
	}
	if candidates.Empty() {
		candidates = palette.Without(forbidden)
	}
	if candidates.Empty() {
		candidates = palette
	}

	colors := candidates.Colors()
	return colors[rng.Intn(len(colors))]
}
