package model

import "testing"

func TestReaction_Transitions(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		from     ReactionState
		kind     ReactionKind
		want     ReactionState
		likes    int
		dislikes int
	}{
		{"none->liked", ReactionNone, KindLike, ReactionLiked, 1, 0},
		{"liked->none", ReactionLiked, KindLike, ReactionNone, -1, 0},
		{"disliked->liked", ReactionDisliked, KindLike, ReactionLiked, 1, -1},
		{"none->disliked", ReactionNone, KindDislike, ReactionDisliked, 0, 1},
		{"disliked->none", ReactionDisliked, KindDislike, ReactionNone, 0, -1},
		{"liked->disliked", ReactionLiked, KindDislike, ReactionDisliked, -1, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, delta := tc.from.Apply(tc.kind)
			if got != tc.want {
				t.Fatalf("state = %v, want %v", got, tc.want)
			}
			if delta.LikesDelta != tc.likes || delta.DislikesDelta != tc.dislikes {
				t.Fatalf("deltas = (%d,%d), want (%d,%d)",
					delta.LikesDelta, delta.DislikesDelta, tc.likes, tc.dislikes)
			}
		})
	}
}

// Membership flags must mirror the counter deltas exactly, and a cross
// transition must net to zero.
func TestReaction_DeltaConsistency(t *testing.T) {
	t.Parallel()
	for _, from := range []ReactionState{ReactionNone, ReactionLiked, ReactionDisliked} {
		for _, kind := range []ReactionKind{KindLike, KindDislike} {
			next, d := from.Apply(kind)
			likeChange := 0
			if d.AddLike {
				likeChange++
			}
			if d.RemoveLike {
				likeChange--
			}
			dislikeChange := 0
			if d.AddDislike {
				dislikeChange++
			}
			if d.RemoveDislike {
				dislikeChange--
			}
			if likeChange != d.LikesDelta || dislikeChange != d.DislikesDelta {
				t.Fatalf("from=%v kind=%v: membership changes (%d,%d) disagree with deltas (%d,%d)",
					from, kind, likeChange, dislikeChange, d.LikesDelta, d.DislikesDelta)
			}
			if next == from {
				t.Fatalf("from=%v kind=%v: toggle must change state", from, kind)
			}
			if d.AddLike && d.AddDislike {
				t.Fatalf("from=%v kind=%v: cannot join both sets", from, kind)
			}
		}
	}
}

// Toggling the same kind twice returns to the starting state with zero net
// counter change.
func TestReaction_ToggleIdempotence(t *testing.T) {
	t.Parallel()
	for _, kind := range []ReactionKind{KindLike, KindDislike} {
		mid, d1 := ReactionNone.Apply(kind)
		back, d2 := mid.Apply(kind)
		if back != ReactionNone {
			t.Fatalf("kind=%v: double toggle ended in %v", kind, back)
		}
		if d1.LikesDelta+d2.LikesDelta != 0 || d1.DislikesDelta+d2.DislikesDelta != 0 {
			t.Fatalf("kind=%v: double toggle net counters nonzero", kind)
		}
	}
}
