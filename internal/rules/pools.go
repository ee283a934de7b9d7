package rules

var defaultMapPool = []string{
	"Ancient", "Anubis", "Dust2", "Inferno", "Mirage", "Nuke", "Train",
}

var modePool = []string{"Zones", "Tower", "Rainmaker", "Clams"}

var modeMaps = map[string][]string{
	"Zones": {
		"Scorch Gorge", "Eeltail Alley", "Hagglefish Market",
		"Undertow Spillway", "Mincemeat Metalworks", "MakoMart",
	},
	"Tower": {
		"Hammerhead Bridge", "Museum d'Alfonsino", "Mahi-Mahi Resort",
		"Inkblot Art Academy", "Sturgeon Shipyard", "Manta Maria",
	},
	"Rainmaker": {
		"Wahoo World", "Flounder Heights", "Brinewater Springs",
		"Um'ami Ruins", "Barnacle & Dime", "Crableg Capital",
	},
	"Clams": {
		"Shipshape Cargo Co.", "Robo ROM-en", "Bluefin Depot",
		"Marlin Airport", "Lemuria Hub", "Urchin Underpass",
	},
}

// DefaultMapPool returns the standard seven-map FPS pool.
func DefaultMapPool() []string {
	return append([]string(nil), defaultMapPool...)
}

// Modes returns the arena mode pool.
func Modes() []string {
	return append([]string(nil), modePool...)
}

// MapsForMode returns the maps playable under the given mode.
func MapsForMode(mode string) ([]string, bool) {
	maps, ok := modeMaps[mode]
	if !ok {
		return nil, false
	}
	return append([]string(nil), maps...), true
}
