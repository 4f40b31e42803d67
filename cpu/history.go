package cpu

const (
	HISTORY_DEPTH = 16 // Default depth of the modification history.
)

// History is a bounded list of written addresses, most recent first.
type History struct {
	Depth int // Maximum entries kept; HISTORY_DEPTH if zero.
	Data  []Address
}

func (h *History) depth() int {
	if h.Depth <= 0 {
		return HISTORY_DEPTH
	}
	return h.Depth
}

// Push records an address at the front, dropping the oldest entries
// beyond the depth.
func (h *History) Push(addr Address) {
	h.Data = append(h.Data, 0)
	copy(h.Data[1:], h.Data)
	h.Data[0] = addr

	if len(h.Data) > h.depth() {
		h.Data = h.Data[:h.depth()]
	}
}

// Peek returns the most recent entry.
func (h *History) Peek() (addr Address, ok bool) {
	if h.Empty() {
		return
	}

	return h.Data[0], true
}

// Empty returns true if nothing has been recorded.
func (h *History) Empty() bool {
	return len(h.Data) == 0
}

// Reset forgets all entries.
func (h *History) Reset() {
	if len(h.Data) > 0 {
		h.Data = h.Data[:0]
	}
}
