package rules

const (
	// seventyFiveMoveLimit is counted in half moves.
	seventyFiveMoveLimit = 150
	fivefoldRepetition   = 5
)

// state captures what we need to reason about repetitions and the move rule.
type state struct {
	hash   uint64
	rule50 int
}

// history is the stack of positions reached since the board was created or
// cloned. The top always mirrors the current position.
type history struct {
	states []state
}

func (h *history) reset(hash uint64, rule50 int) {
	h.states = h.states[:0]
	h.push(hash, rule50)
}

func (h *history) push(hash uint64, rule50 int) {
	h.states = append(h.states, state{hash: hash, rule50: rule50})
}

func (h *history) pop() {
	if len(h.states) <= 1 {
		return
	}
	h.states = h.states[:len(h.states)-1]
}

func (h *history) len() int {
	return len(h.states) - 1
}

// repetitions counts how often the current position occurred, itself
// included. Only positions since the last irreversible move can match.
func (h *history) repetitions() int {
	if len(h.states) == 0 {
		return 0
	}
	curr := h.states[len(h.states)-1]
	start := len(h.states) - 1 - curr.rule50
	if start < 0 {
		start = 0
	}
	count := 0
	for i := len(h.states) - 1; i >= start; i -= 2 {
		if h.states[i].hash == curr.hash {
			count++
		}
	}
	return count
}

func (h *history) rule50() int {
	if len(h.states) == 0 {
		return 0
	}
	return h.states[len(h.states)-1].rule50
}
