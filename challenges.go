// challenges.go
//
// This file contains the built-in challenge catalog: a set of bonus
// puzzles embedded in their JSON wire format and parsed on demand.

package lasermaze

// ChallengeNames lists the built-in challenges in presentation order
var ChallengeNames = []string{
	"bonus-1",
	"bonus-2",
	"bonus-3",
	"bonus-26",
}

// Challenge returns a built-in puzzle by name, or nil if the name is
// not in the catalog. Each call returns a fresh copy.
func Challenge(name string) *Puzzle {
	data, ok := challengeCatalog[name]
	if !ok {
		return nil
	}
	p, err := ParsePuzzle([]byte(data))
	if err != nil {
		// The embedded catalog is validated by tests
		panic("lasermaze: malformed built-in challenge " + name + ": " + err.Error())
	}
	return p
}

var challengeCatalog = map[string]string{
	"bonus-1": `{
		"targets": 3,
		"grid": [
			null, {"type": "TargetMirror", "orientation": null}, null, null, {"type": "TargetMirror", "orientation": null},
			null, null, null, null, null,
			null, null, null, null, null,
			{"type": "Laser", "orientation": null}, {"type": "CellBlocker", "orientation": "North"}, {"type": "BeamSplitter", "orientation": "North"}, {"type": "Checkpoint", "orientation": null}, null,
			null, null, null, null, {"type": "TargetMirror", "orientation": "East"}
		],
		"to_be_added": [
			{"type": "TargetMirror"},
			{"type": "TargetMirror"},
			{"type": "DoubleMirror"},
			{"type": "BeamSplitter"}
		]
	}`,
	"bonus-2": `{
		"targets": 2,
		"grid": [
			null, null, {"type": "TargetMirror", "orientation": null}, null, null,
			null, null, {"type": "Checkpoint", "orientation": "East"}, null, null,
			null, {"type": "Laser", "orientation": null}, null, null, {"type": "DoubleMirror", "orientation": null},
			null, null, null, null, null,
			{"type": "TargetMirror", "orientation": null}, null, null, null, null
		],
		"to_be_added": [
			{"type": "TargetMirror"},
			{"type": "TargetMirror"},
			{"type": "TargetMirror"},
			{"type": "BeamSplitter"},
			{"type": "BeamSplitter"}
		]
	}`,
	"bonus-3": `{
		"targets": 3,
		"grid": [
			{"type": "Laser", "orientation": null}, null, null, null, null,
			null, {"type": "TargetMirror", "orientation": "South"}, null, null, null,
			null, null, {"type": "Checkpoint", "orientation": null}, {"type": "DoubleMirror", "orientation": null}, {"type": "TargetMirror", "orientation": "East"},
			null, null, null, {"type": "CellBlocker", "orientation": "North"}, null,
			null, null, null, null, null
		],
		"to_be_added": [
			{"type": "TargetMirror"},
			{"type": "TargetMirror"},
			{"type": "TargetMirror"},
			{"type": "BeamSplitter"},
			{"type": "BeamSplitter"}
		]
	}`,
	"bonus-26": `{
		"targets": 2,
		"grid": [
			null, null, null, null, null,
			null, null, null, null, {"type": "TargetMirror", "orientation": null},
			null, {"type": "Checkpoint", "orientation": null}, null, {"type": "DoubleMirror", "orientation": null}, null,
			null, null, null, null, null,
			null, {"type": "CellBlocker", "orientation": "North"}, {"type": "BeamSplitter", "orientation": "East"}, null, null
		],
		"to_be_added": [
			{"type": "Laser"},
			{"type": "TargetMirror"},
			{"type": "TargetMirror"},
			{"type": "TargetMirror"},
			{"type": "BeamSplitter"}
		]
	}`,
}
