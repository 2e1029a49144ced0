package store

import (
	"fmt"

	"github.com/starford/bindrune/internal/apperr"
)

// LinkState is where a URL's row sits in the promotion lifecycle.
type LinkState int

const (
	// StateAbsent means no row exists for the URL.
	StateAbsent LinkState = iota
	// StateSecondary is a row that exists only as the target of a
	// relation; it carries no content or tags.
	StateSecondary
	// StatePrimary is a first-class bookmark.
	StatePrimary
)

// LinkOp is a lifecycle-affecting operation on a URL.
type LinkOp int

const (
	// OpAdd is an explicit `add` of the URL.
	OpAdd LinkOp = iota
	// OpRemove is an explicit removal of the URL.
	OpRemove
)

// Effect is one storage side effect of a lifecycle transition. The
// caller applies effects in order inside its transaction.
type Effect int

const (
	// EffectInsert inserts a fresh primary row with its content.
	EffectInsert Effect = iota
	// EffectPromote flips the existing row to primary, taking the new
	// title and description, and attaches content for the first time.
	EffectPromote
	// EffectDelete hard-deletes the row; child rows cascade.
	EffectDelete
	// EffectDemote flips the row to secondary, leaving it and its
	// inbound edges intact.
	EffectDemote
	// EffectStripTags drops the row's tag associations.
	EffectStripTags
	// EffectStripForwardRelations drops the relations the row authored.
	EffectStripForwardRelations
	// EffectDropContent drops the row's content.
	EffectDropContent
)

// Transition computes the next state and the side effects of applying
// op to a URL in the given state with the given number of inbound
// relation edges. It touches no storage.
func Transition(state LinkState, inbound int, op LinkOp) (LinkState, []Effect, error) {
	switch op {
	case OpAdd:
		switch state {
		case StateAbsent:
			return StatePrimary, []Effect{EffectInsert}, nil
		case StateSecondary:
			return StatePrimary, []Effect{EffectPromote}, nil
		case StatePrimary:
			return StatePrimary, nil, apperr.ErrConflict
		}
	case OpRemove:
		switch state {
		case StatePrimary:
			if inbound > 0 {
				return StateSecondary, []Effect{
					EffectDemote,
					EffectStripTags,
					EffectStripForwardRelations,
					EffectDropContent,
				}, nil
			}
			return StateAbsent, []Effect{EffectDelete}, nil
		case StateSecondary, StateAbsent:
			return state, nil, apperr.ErrNotFound
		}
	}
	return state, nil, fmt.Errorf("store: unhandled transition (state=%d op=%d)", state, op)
}

// StateOf classifies an already-fetched row. A nil row is StateAbsent.
func StateOf(l *Link) LinkState {
	switch {
	case l == nil:
		return StateAbsent
	case l.IsPrimary:
		return StatePrimary
	default:
		return StateSecondary
	}
}
