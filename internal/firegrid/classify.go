// Package firegrid parses simulator frames and reduces a run's stream of
// frames into summary metrics.
//
// Each frame is a row-major grid of single-cell symbols. The harness never
// interprets simulation physics; it only classifies each symbol into one of
// four states and tracks burn percentages against a denominator fixed from
// the run's first frame.
package firegrid

// CellClass is the harness-side classification of a single grid cell.
type CellClass int

const (
	// Burning cells carry an active fire front.
	Burning CellClass = iota
	// Burnable cells are intact vegetation that could still ignite.
	Burnable
	// Burned cells are ash left behind by the fire.
	Burned
	// Other covers everything else (water, rock, empty ground). Other cells
	// are excluded from every denominator.
	Other
)

// String returns the class name for logs and test failures.
func (c CellClass) String() string {
	switch c {
	case Burning:
		return "burning"
	case Burnable:
		return "burnable"
	case Burned:
		return "burned"
	default:
		return "other"
	}
}

// Symbol vocabularies emitted by the simulator. The multi-star symbols are
// fire intensity levels; the remaining burning symbols are igniting trees
// and grasses.
var (
	burningSymbols = map[string]struct{}{
		"*": {}, "**": {}, "***": {}, "+": {}, "!": {}, "&": {}, "@": {},
	}
	burnableSymbols = map[string]struct{}{
		"G": {}, "T": {}, "s": {}, "y": {},
	}
	burnedSymbols = map[string]struct{}{
		"A": {}, "-": {},
	}
)

// Classify maps a cell symbol to its class. Unknown symbols are Other.
func Classify(symbol string) CellClass {
	if _, ok := burningSymbols[symbol]; ok {
		return Burning
	}
	if _, ok := burnableSymbols[symbol]; ok {
		return Burnable
	}
	if _, ok := burnedSymbols[symbol]; ok {
		return Burned
	}
	return Other
}
