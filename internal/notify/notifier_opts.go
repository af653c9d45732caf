package notify

type NotifierOpt func(*Notifier)

// WithActorId sets the room actor the shout appears to come from
func WithActorId(id int32) NotifierOpt {
	return func(n *Notifier) {
		n.actorId = id
	}
}

// WithMaxLength sets the longest text sent, longer text is cut. Zero disables the limit.
func WithMaxLength(l uint) NotifierOpt {
	return func(n *Notifier) {
		n.maxLen = l
	}
}
