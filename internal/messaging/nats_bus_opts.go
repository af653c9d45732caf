package messaging

type NatsBusOpt func(*NatsBus)

// WithSubjectPrefix sets the root of every subject the bus uses.
func WithSubjectPrefix(prefix string) NatsBusOpt {
	return func(b *NatsBus) {
		if prefix != "" {
			b.prefix = prefix
		}
	}
}

// WithBufferSize sets how many intercepted messages may queue for dispatch.
func WithBufferSize(n int) NatsBusOpt {
	return func(b *NatsBus) {
		if n > 0 {
			b.bufSize = n
		}
	}
}
