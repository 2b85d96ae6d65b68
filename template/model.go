package template

import "errors"

// DefaultText is the text given to a freshly added template.
const DefaultText = "template"

// Seed is the template list used when no seed file is configured.
var Seed = SeedFile{
	Templates: []string{"template 1", "template 2", "template 3"},
	Selected:  0,
}

// SeedFile is the on-disk shape of a startup seed.
type SeedFile struct {
	Templates []string `yaml:"templates" json:"templates"`
	Selected  int      `yaml:"selected" json:"selectedIndex"`
}

// Snapshot is a copy of the store state, safe to hand to other goroutines.
type Snapshot struct {
	Templates []string `json:"templates"`
	Selected  int      `json:"selectedIndex"`
}

var ErrInvalidSeed = errors.New("invalid template seed")
