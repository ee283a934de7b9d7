// Package rules holds the static draft rule tables: the ordered step
// sequences per title and format, and the default candidate pools. Pure
// data and lookups, safe for concurrent use.
package rules

import "errors"

var ErrUnknownFormat = errors.New("unknown format")
var ErrPoolSize = errors.New("invalid pool size")

type Title string

const (
	TitleFPS   Title = "fps"
	TitleArena Title = "arena"
)

type Format string

const (
	FormatBO1 Format = "bo1"
	FormatBO2 Format = "bo2"
	FormatBO3 Format = "bo3"
	FormatBO5 Format = "bo5"
)

type StepKind string

const (
	StepBan      StepKind = "ban"
	StepPick     StepKind = "pick"
	StepDecider  StepKind = "decider"
	StepModeBan  StepKind = "mode_ban"
	StepModePick StepKind = "mode_pick"
)

// FPSPoolSize is the pool size the fixed-length FPS tables are built for.
const FPSPoolSize = 7

var fpsTables = map[Format][]StepKind{
	FormatBO2: {StepBan, StepBan, StepBan, StepBan, StepBan, StepPick, StepPick},
	FormatBO3: {StepBan, StepBan, StepPick, StepPick, StepBan, StepBan, StepDecider},
	FormatBO5: {StepBan, StepBan, StepPick, StepPick, StepPick, StepPick, StepDecider},
}

// FPSTable returns the step sequence for an FPS-family format. BO1 tables
// are derived from the pool size (alternating bans down to one map, which
// the trailing side is forced to pick); the longer formats require the
// standard seven-map pool.
func FPSTable(f Format, poolSize int) ([]StepKind, error) {
	switch f {
	case FormatBO1:
		if poolSize < 2 {
			return nil, ErrPoolSize
		}
		steps := make([]StepKind, poolSize)
		for i := range poolSize - 1 {
			steps[i] = StepBan
		}
		steps[poolSize-1] = StepPick
		return steps, nil
	case FormatBO2, FormatBO3, FormatBO5:
		if poolSize != FPSPoolSize {
			return nil, ErrPoolSize
		}
		return append([]StepKind(nil), fpsTables[f]...), nil
	default:
		return nil, ErrUnknownFormat
	}
}

// HasDecider reports whether the format ends on a decider slot.
func HasDecider(f Format) bool {
	return f == FormatBO3 || f == FormatBO5
}

var arenaFirstRound = []StepKind{
	StepModeBan, StepModeBan, StepModePick,
	StepBan, StepBan, StepBan, StepBan, StepBan,
	StepPick,
}

var arenaLaterRound = []StepKind{
	StepModeBan, StepModePick,
	StepBan, StepBan, StepBan,
	StepPick,
}

// ArenaTable returns the step sequence for an arena round. Round 1 contests
// priority with the long table; from round 2 on the previous winner holds
// every ban and the loser every pick, so the table shrinks.
func ArenaTable(round int) []StepKind {
	if round <= 1 {
		return append([]StepKind(nil), arenaFirstRound...)
	}
	return append([]StepKind(nil), arenaLaterRound...)
}
