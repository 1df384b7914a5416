package model

type Player struct {
	Name       string
	Lives      int
	Eliminated bool
	Chamber    Chamber
}

type ClientPlayer struct {
	Name       string `json:"name"`
	Lives      int    `json:"lives"`
	Eliminated bool   `json:"eliminated"`
	Chambers   int    `json:"chambers"`
}

func newPlayer(name string) Player {
	return Player{
		Name:       name,
		Lives:      0,
		Eliminated: false,
		Chamber:    NewChamber(),
	}
}

func (p Player) client() ClientPlayer {
	return ClientPlayer{
		Name:       p.Name,
		Lives:      p.Lives,
		Eliminated: p.Eliminated,
		Chambers:   len(p.Chamber),
	}
}
