package model

import (
	"github.com/benbeisheim/roulette-backend/internal/random"
)

type Outcome string

const (
	OutcomeSafe  Outcome = "safe"
	OutcomeFatal Outcome = "fatal"
)

const (
	MaxLives     = 6
	SafeChambers = 5
	// Players one life short of the max always face the fatal chamber.
	FinalChamberLives = MaxLives - 1
)

// Chamber is a player's remaining pool of outcomes. Safe tokens come
// first and the single fatal token sits last.
type Chamber []Outcome

func NewChamber() Chamber {
	c := make(Chamber, 0, SafeChambers+1)
	for i := 0; i < SafeChambers; i++ {
		c = append(c, OutcomeSafe)
	}
	return append(c, OutcomeFatal)
}

// Draw picks one token uniformly. It does not consume it.
func (c Chamber) Draw(src random.Source) Outcome {
	if len(c) == 0 {
		return OutcomeFatal
	}
	return c[src.Intn(len(c))]
}

// withoutSafe returns a copy with the first safe token removed. The fatal
// token is never removed.
func (c Chamber) withoutSafe() Chamber {
	for i, o := range c {
		if o == OutcomeSafe {
			next := make(Chamber, 0, len(c)-1)
			next = append(next, c[:i]...)
			return append(next, c[i+1:]...)
		}
	}
	return c
}

func (c Chamber) SafeCount() int {
	n := 0
	for _, o := range c {
		if o == OutcomeSafe {
			n++
		}
	}
	return n
}
