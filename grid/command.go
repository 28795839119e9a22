package grid

import "strconv"

// Op names one command the dispatcher can invoke. Keeping the command
// set as an enum (rather than a table of closures) makes it
// enumerable and testable without a live screen.
type Op int

const (
	OpNone Op = iota
	OpMoveDown
	OpMoveUp
	OpMoveLeft
	OpMoveRight
	OpPageDown
	OpPageUp
	OpPageLeft
	OpPageRight
	OpMark
	OpGotoMark
	OpTop
	OpGotoRow
	OpGotoCol
	OpLineHome
	OpLineEnd
	OpToggleHeader
	OpGrowGap
	OpShrinkGap
	OpGrowWidths
	OpShrinkWidths
	OpGrowColumn
	OpShrinkColumn
	OpCyclePolicy
	OpSearch
	OpNextResult
	OpPrevResult
	OpSortLexical
	OpSortLexicalDesc
	OpSortNatural
	OpSortNaturalDesc
	OpSortNumeric
	OpSortNumericDesc
	OpReload
	OpShowCell
	OpShowMeta
	OpYankCell
	OpHelp
	OpQuit
)

// OutcomeKind tags the result of one dispatch cycle. Quit and reload
// are control-flow signals for the outer driver, never errors. The
// Show/Prompt/Yank kinds ask the presentation layer to act; the
// engine itself stays terminal-free.
type OutcomeKind int

const (
	OutcomeContinue OutcomeKind = iota
	OutcomeQuit
	OutcomeReload
	OutcomeShowCell
	OutcomeShowMeta
	OutcomeShowHelp
	OutcomePromptSearch
	OutcomeYank
)

// Outcome is the tagged result of HandleKey.
type Outcome struct {
	Kind     OutcomeKind
	Settings Settings // populated for OutcomeReload
	Cell     string   // populated for OutcomeShowCell and OutcomeYank
}

var continueOutcome = Outcome{Kind: OutcomeContinue}

// Keymap binds key identities (bubbletea-style names: printable runes
// as themselves, special keys as "up", "pgdown", "insert", ...) to
// operations. Exported so the help screen and tests can enumerate it.
var Keymap = map[string]Op{
	"j":     OpMoveDown,
	"down":  OpMoveDown,
	"k":     OpMoveUp,
	"up":    OpMoveUp,
	"h":     OpMoveLeft,
	"left":  OpMoveLeft,
	"l":     OpMoveRight,
	"right": OpMoveRight,

	"J":      OpPageDown,
	"pgdown": OpPageDown,
	"K":      OpPageUp,
	"pgup":   OpPageUp,
	"L":      OpPageRight,
	"H":      OpPageLeft,

	"m":      OpMark,
	"insert": OpMark,
	"'":      OpGotoMark,
	"delete": OpGotoMark,

	"g":    OpTop,
	"G":    OpGotoRow,
	"|":    OpGotoCol,
	"^":    OpLineHome,
	"0":    OpLineHome,
	"home": OpLineHome,
	"$":    OpLineEnd,
	"end":  OpLineEnd,

	"t": OpToggleHeader,
	"]": OpGrowGap,
	"[": OpShrinkGap,
	">": OpGrowWidths,
	"<": OpShrinkWidths,
	"+": OpGrowColumn,
	"-": OpShrinkColumn,
	"w": OpCyclePolicy,

	"/": OpSearch,
	"n": OpNextResult,
	"p": OpPrevResult,

	"s": OpSortLexical,
	"S": OpSortLexicalDesc,
	"a": OpSortNatural,
	"A": OpSortNaturalDesc,
	"f": OpSortNumeric,
	"F": OpSortNumericDesc,

	"r":     OpReload,
	"enter": OpShowCell,
	"i":     OpShowMeta,
	"y":     OpYankCell,
	"?":     OpHelp,
	"f1":    OpHelp,

	"q":      OpQuit,
	"Q":      OpQuit,
	"ctrl+c": OpQuit,
}

// HandleKey resolves a key identity to an operation and applies it.
// Digit keys are ambiguous: a digit extends the pending repeat-count
// modifier when one is already accumulating, or when the digit has no
// binding of its own ("0" is bound to line-home, so it only joins an
// existing modifier). Any unbound non-digit key discards the pending
// modifier.
func (v *Viewer) HandleKey(key string) Outcome {
	digit := isDigit(key)
	if digit && (v.modifier != "" || Keymap[key] == OpNone) {
		v.modifier += key
		return continueOutcome
	}
	op, ok := Keymap[key]
	if !ok {
		v.modifier = ""
		return continueOutcome
	}
	out := v.Apply(op)
	if !digit {
		v.modifier = ""
	}
	return out
}

// Apply executes one operation against the viewer state. Operations
// referencing stale coordinates degrade to no-ops; nothing here
// raises during normal navigation.
func (v *Viewer) Apply(op Op) Outcome {
	switch op {
	case OpMoveDown:
		v.repeat(v.MoveDown)
	case OpMoveUp:
		v.repeat(v.MoveUp)
	case OpMoveLeft:
		v.repeat(v.MoveLeft)
	case OpMoveRight:
		v.repeat(v.MoveRight)
	case OpPageDown:
		v.repeat(v.PageDown)
	case OpPageUp:
		v.repeat(v.PageUp)
	case OpPageLeft:
		v.repeat(v.PageLeft)
	case OpPageRight:
		v.repeat(v.PageRight)
	case OpMark:
		v.SetMark()
	case OpGotoMark:
		v.GotoMark()
	case OpTop:
		v.Top()
	case OpGotoRow:
		// without a modifier, goto targets the last row
		n := v.takeModifier(v.table.RowCount())
		v.GotoRow(n - 1)
	case OpGotoCol:
		// without a modifier, goto targets the first column
		n := v.takeModifier(1)
		v.GotoCol(n - 1)
	case OpLineHome:
		v.LineHome()
	case OpLineEnd:
		v.LineEnd()
	case OpToggleHeader:
		v.ToggleHeader()
	case OpGrowGap:
		v.layout.GrowGap()
		v.reclampAfterLayout()
	case OpShrinkGap:
		v.layout.ShrinkGap()
		v.reclampAfterLayout()
	case OpGrowWidths:
		v.layout.GrowWidths()
		v.reclampAfterLayout()
	case OpShrinkWidths:
		v.layout.ShrinkWidths()
		v.reclampAfterLayout()
	case OpGrowColumn:
		v.layout.GrowColumn(v.Absolute().X)
		v.reclampAfterLayout()
	case OpShrinkColumn:
		v.layout.ShrinkColumn(v.Absolute().X)
		v.reclampAfterLayout()
	case OpCyclePolicy:
		v.layout.CyclePolicy(v.table)
		v.reclampAfterLayout()
	case OpSearch:
		return Outcome{Kind: OutcomePromptSearch}
	case OpNextResult:
		v.NextResult()
	case OpPrevResult:
		v.PrevResult()
	case OpSortLexical:
		v.SortColumn(SortLexical, false)
	case OpSortLexicalDesc:
		v.SortColumn(SortLexical, true)
	case OpSortNatural:
		v.SortColumn(SortNatural, false)
	case OpSortNaturalDesc:
		v.SortColumn(SortNatural, true)
	case OpSortNumeric:
		v.SortColumn(SortNumeric, false)
	case OpSortNumericDesc:
		v.SortColumn(SortNumeric, true)
	case OpReload:
		return Outcome{Kind: OutcomeReload, Settings: v.Snapshot()}
	case OpShowCell:
		return Outcome{Kind: OutcomeShowCell, Cell: v.CurrentCell()}
	case OpShowMeta:
		return Outcome{Kind: OutcomeShowMeta}
	case OpYankCell:
		return Outcome{Kind: OutcomeYank, Cell: v.CurrentCell()}
	case OpHelp:
		return Outcome{Kind: OutcomeShowHelp}
	case OpQuit:
		return Outcome{Kind: OutcomeQuit}
	}
	return continueOutcome
}

// repeat runs a movement the number of times the pending modifier
// asks for, defaulting to once.
func (v *Viewer) repeat(move func()) {
	n := v.takeModifier(1)
	for i := 0; i < n; i++ {
		move()
	}
}

// takeModifier consumes the pending digit modifier and returns it as
// a count. An empty or garbage modifier falls back to the stated
// default; the result is never below one.
func (v *Viewer) takeModifier(def int) int {
	mod := v.modifier
	v.modifier = ""
	if mod == "" {
		return max(def, 1)
	}
	n, err := strconv.Atoi(mod)
	if err != nil || n < 1 {
		return max(def, 1)
	}
	return n
}

// reclampAfterLayout keeps the cursor on a visible cell after any
// width or gap change shrank the set of visible columns.
func (v *Viewer) reclampAfterLayout() {
	p := v.clampedAbsolute()
	v.GotoRow(p.Y)
	v.GotoCol(p.X)
}

func isDigit(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}
