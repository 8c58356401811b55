package posts

// ReactionState is a user's current reaction to a post
type ReactionState int

const (
	ReactionNone ReactionState = iota
	ReactionLiked
	ReactionDisliked
)

func (s ReactionState) String() string {
	switch s {
	case ReactionLiked:
		return "LIKED"
	case ReactionDisliked:
		return "DISLIKED"
	default:
		return "NONE"
	}
}

// Reaction is a user's like (Like=true) or dislike on a post.
// At most one exists per (UserID, PostID).
type Reaction struct {
	UserID string `json:"userId" db:"user_id"`
	PostID string `json:"postId" db:"post_id"`
	Like   bool   `json:"like" db:"like"`
}

// ReactionAction is the single reaction store mutation a transition performs
type ReactionAction int

const (
	ActionInsert ReactionAction = iota + 1
	ActionUpdate
	ActionRemove
)

func (a ReactionAction) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionUpdate:
		return "update"
	case ActionRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Transition describes how a requested reaction changes the store and counters.
// Deltas are -1, 0 or +1.
type Transition struct {
	Action       ReactionAction
	Next         ReactionState
	LikeDelta    int
	DislikeDelta int
}

// Reconcile maps the current state and the requested polarity to a transition:
//   - no reaction: insert it, +1 on its counter
//   - same polarity: remove it, -1 on its counter (toggle off)
//   - opposite polarity: update it, -1 on the old counter, +1 on the new one
func Reconcile(current ReactionState, like bool) Transition {
	switch current {
	case ReactionLiked:
		if like {
			return Transition{Action: ActionRemove, Next: ReactionNone, LikeDelta: -1}
		}
		return Transition{Action: ActionUpdate, Next: ReactionDisliked, LikeDelta: -1, DislikeDelta: 1}
	case ReactionDisliked:
		if !like {
			return Transition{Action: ActionRemove, Next: ReactionNone, DislikeDelta: -1}
		}
		return Transition{Action: ActionUpdate, Next: ReactionLiked, LikeDelta: 1, DislikeDelta: -1}
	default:
		if like {
			return Transition{Action: ActionInsert, Next: ReactionLiked, LikeDelta: 1}
		}
		return Transition{Action: ActionInsert, Next: ReactionDisliked, DislikeDelta: 1}
	}
}

// ApplyTo moves the post counters by the transition deltas
func (t Transition) ApplyTo(p *Post) {
	switch t.LikeDelta {
	case 1:
		p.AddLike()
	case -1:
		p.RemoveLike()
	}
	switch t.DislikeDelta {
	case 1:
		p.AddDislike()
	case -1:
		p.RemoveDislike()
	}
}
