package config

import "sort"

// Preset is a built-in pattern in RLE.
type Preset struct {
	Name        string
	Description string
	RLE         string
}

var Presets = map[string]Preset{
	"glider": {
		Name:        "glider",
		Description: "smallest spaceship, moves one cell diagonally every 4 generations",
		RLE:         "#N Glider\nx = 3, y = 3, rule = B3/S23\nbo$2bo$3o!\n",
	},
	"blinker": {
		Name:        "blinker",
		Description: "period 2 oscillator",
		RLE:         "#N Blinker\nx = 3, y = 1, rule = B3/S23\n3o!\n",
	},
	"r-pentomino": {
		Name:        "r-pentomino",
		Description: "methuselah that stabilises after 1103 generations",
		RLE:         "#N R-pentomino\nx = 3, y = 3, rule = B3/S23\nb2o$2o$bo!\n",
	},
	"acorn": {
		Name:        "acorn",
		Description: "methuselah that runs for 5206 generations",
		RLE:         "#N Acorn\nx = 7, y = 3, rule = B3/S23\nbo5b$3bo3b$2o2b3o!\n",
	},
	"diehard": {
		Name:        "diehard",
		Description: "vanishes after 130 generations",
		RLE:         "#N Diehard\nx = 8, y = 3, rule = B3/S23\n6bob$2o6b$bo3b3o!\n",
	},
	"lwss": {
		Name:        "lwss",
		Description: "lightweight spaceship, period 4",
		RLE:         "#N LWSS\nx = 5, y = 4, rule = B3/S23\nbo2bo$o4b$o3bo$4o!\n",
	},
	"gosper-gun": {
		Name:        "gosper-gun",
		Description: "Gosper glider gun, emits a glider every 30 generations",
		RLE: "#N Gosper glider gun\nx = 36, y = 9, rule = B3/S23\n" +
			"24bo11b$22bobo11b$12b2o6b2o12b2o$11bo3bo4b2o12b2o$2o8bo5bo3b2o14b$" +
			"2o8bo3bob2o4bobo11b$10bo5bo7bo11b$11bo3bo20b$12b2o22b!\n",
	},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
