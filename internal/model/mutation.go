package model

// Family groups strategies by the structure they operate on.
type Family string

const (
	// FamilyByte is generic byte-level editing.
	FamilyByte Family = "byte"
	// FamilyLine edits newline-delimited lines.
	FamilyLine Family = "line"
	// FamilyTree edits the parenthesis-delimited tree grammar.
	FamilyTree Family = "tree"
	// FamilyFusion splices suffixes found by a bounded search.
	FamilyFusion Family = "fusion"
	// FamilyText edits embedded numbers and quoted strings.
	FamilyText Family = "text"
)

// Strategy is the configured name selecting one mutation primitive.
type Strategy string

// Byte strategies.
const (
	StrategyByteDrop      Strategy = "byte-drop"
	StrategyByteFlip      Strategy = "byte-flip"
	StrategyByteInsert    Strategy = "byte-insert"
	StrategyByteRepeat    Strategy = "byte-repeat"
	StrategyBytePermute   Strategy = "byte-permute"
	StrategyByteIncrement Strategy = "byte-increment"
	StrategyByteDecrement Strategy = "byte-decrement"
	StrategyByteRandomize Strategy = "byte-randomize"
)

// Line strategies.
const (
	StrategyLineDelete         Strategy = "line-delete"
	StrategyLineDeleteSequence Strategy = "line-delete-sequence"
	StrategyLineDuplicate      Strategy = "line-duplicate"
	StrategyLineRepeat         Strategy = "line-repeat"
	StrategyLineCopyCloseBy    Strategy = "line-copy-close-by"
	StrategyLineSwap           Strategy = "line-swap"
	StrategyLinePermute        Strategy = "line-permute"
)

// Tree strategies.
const (
	StrategyTreeDeleteNode    Strategy = "tree-delete-node"
	StrategyTreeReplaceNode   Strategy = "tree-replace-node"
	StrategyTreeDuplicateNode Strategy = "tree-duplicate-node"
	StrategyTreeRepeatPath    Strategy = "tree-repeat-path"
)

// Fusion strategies.
const (
	StrategyFuseSelf   Strategy = "fuse-self"
	StrategyFuseHalves Strategy = "fuse-halves"
	StrategyFuseDouble Strategy = "fuse-double"
	StrategyFuseTriple Strategy = "fuse-triple"
)

// Text strategies.
const (
	StrategyNumber   Strategy = "number"
	StrategyASCIIBad Strategy = "ascii-bad"
)

// StrategyInfo describes one registered strategy.
type StrategyInfo struct {
	Strategy    Strategy
	Family      Family
	Description string
	// Seeded reports whether the strategy honours the minimum seed index.
	Seeded bool
}
