package extension

type ExtensionOpt func(*Extension)

// WithCommand sets the chat command that toggles the mode.
func WithCommand(token string) ExtensionOpt {
	return func(e *Extension) {
		if token != "" {
			e.token = token
		}
	}
}

// WithAlwaysSuppressClicks keeps item clicks from the server even while the
// mode is off.
func WithAlwaysSuppressClicks(suppress bool) ExtensionOpt {
	return func(e *Extension) {
		e.alwaysSuppressClicks = suppress
	}
}

// WithGateProjection only follows inventory broadcasts while the mode is on.
func WithGateProjection(gate bool) ExtensionOpt {
	return func(e *Extension) {
		e.gateProjection = gate
	}
}
