package model

import (
	"github.com/benbeisheim/roulette-backend/internal/random"
)

const MaxPlayers = 4

// GameState is everything a roulette table renders. It is owned by the
// caller and changed only through its methods; it does no locking or I/O.
type GameState struct {
	Rules       Rules
	Players     []Player
	PendingName string
	Result      *Outcome
	Spinning    bool
}

type ClientState struct {
	Rules       Rules          `json:"rules"`
	MaxPlayers  int            `json:"maxPlayers"`
	MaxLives    int            `json:"maxLives"`
	Players     []ClientPlayer `json:"players"`
	PendingName string         `json:"pendingName"`
	Result      *Outcome       `json:"result"` // nil until a spin is revealed
	Spinning    bool           `json:"spinning"`
}

func NewGameState(rules Rules) GameState {
	if rules == "" {
		rules = RulesShrinking
	}
	return GameState{
		Rules:   rules,
		Players: make([]Player, 0, MaxPlayers),
	}
}

// AddPlayer appends a fresh player. Empty names and a full roster are
// ignored and reported as false.
func (s *GameState) AddPlayer(name string) bool {
	if name == "" || len(s.Players) >= MaxPlayers {
		return false
	}
	s.Players = append(s.Players, newPlayer(name))
	return true
}

// Reset empties the roster and clears every presentation field.
func (s *GameState) Reset() {
	s.Players = make([]Player, 0, MaxPlayers)
	s.PendingName = ""
	s.Result = nil
	s.Spinning = false
}

// Spin draws and applies one outcome for the player at index. Unknown and
// eliminated players yield no outcome and leave the state untouched.
func (s *GameState) Spin(src random.Source, index int) (Outcome, bool) {
	if index < 0 || index >= len(s.Players) {
		return "", false
	}
	p := &s.Players[index]
	if p.Eliminated {
		return "", false
	}

	outcome := s.draw(src, p)
	if outcome == OutcomeFatal {
		p.Eliminated = true
	} else if p.Lives < MaxLives {
		p.Lives++
	}
	return outcome, true
}

func (s *GameState) draw(src random.Source, p *Player) Outcome {
	if s.Rules == RulesFixed {
		return NewChamber().Draw(src)
	}

	if p.Lives == FinalChamberLives {
		return OutcomeFatal
	}
	outcome := p.Chamber.Draw(src)
	if outcome == OutcomeSafe {
		p.Chamber = p.Chamber.withoutSafe()
	}
	return outcome
}

// BeginReveal marks a resolved spin as still hidden behind the suspense.
func (s *GameState) BeginReveal() {
	s.Spinning = true
	s.Result = nil
}

// Reveal publishes the outcome label of the last resolved spin.
func (s *GameState) Reveal(outcome Outcome) {
	s.Spinning = false
	s.Result = &outcome
}

func (s GameState) Snapshot() ClientState {
	players := make([]ClientPlayer, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, p.client())
	}

	var result *Outcome
	if s.Result != nil {
		r := *s.Result
		result = &r
	}

	return ClientState{
		Rules:       s.Rules,
		MaxPlayers:  MaxPlayers,
		MaxLives:    MaxLives,
		Players:     players,
		PendingName: s.PendingName,
		Result:      result,
		Spinning:    s.Spinning,
	}
}
