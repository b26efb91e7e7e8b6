package model

// ReactionState is the per (post, user) reaction: exactly one of none, liked
// or disliked holds at any time.
type ReactionState int

const (
	ReactionNone ReactionState = iota
	ReactionLiked
	ReactionDisliked
)

// ReactionKind selects which toggle operation to apply.
type ReactionKind int

const (
	KindLike ReactionKind = iota
	KindDislike
)

// ReactionDelta describes how a toggle changes a post's membership sets and
// counters. The repository applies it inside a single transaction so counters
// stay equal to set sizes under concurrent toggles.
type ReactionDelta struct {
	AddLike       bool
	RemoveLike    bool
	AddDislike    bool
	RemoveDislike bool
	LikesDelta    int
	DislikesDelta int
}

// Apply computes the transition for a toggle of the given kind from the
// current state. Toggling the same kind twice returns to ReactionNone;
// toggling the opposite kind moves the membership across in one step.
func (s ReactionState) Apply(kind ReactionKind) (ReactionState, ReactionDelta) {
	switch kind {
	case KindLike:
		switch s {
		case ReactionLiked:
			return ReactionNone, ReactionDelta{RemoveLike: true, LikesDelta: -1}
		case ReactionDisliked:
			return ReactionLiked, ReactionDelta{
				RemoveDislike: true, AddLike: true,
				LikesDelta: 1, DislikesDelta: -1,
			}
		default:
			return ReactionLiked, ReactionDelta{AddLike: true, LikesDelta: 1}
		}
	default: // KindDislike
		switch s {
		case ReactionDisliked:
			return ReactionNone, ReactionDelta{RemoveDislike: true, DislikesDelta: -1}
		case ReactionLiked:
			return ReactionDisliked, ReactionDelta{
				RemoveLike: true, AddDislike: true,
				LikesDelta: -1, DislikesDelta: 1,
			}
		default:
			return ReactionDisliked, ReactionDelta{AddDislike: true, DislikesDelta: 1}
		}
	}
}
