package terminal

// Jump label characters in order of preference (home row first)
const jumpChars = "asdfghjklqwertyuiopzxcvbnm"

// startJump labels every routed edge so the next key selects one.
func (v *Viewer) startJump() {
	v.jumpLabels = make(map[rune]string)
	d := v.store.Diagram()
	n := 0
	for _, e := range d.Edges {
		if n >= len(jumpChars) {
			// More edges than single chars; the rest stay reachable with tab
			break
		}
		if _, ok := v.routes[e.ID]; !ok {
			continue
		}
		v.jumpLabels[rune(jumpChars[n])] = e.ID
		n++
	}
	if n == 0 {
		v.setStatus("no edges to jump to")
		return
	}
	v.jumping = true
	v.setStatus("jump: press a label")
}

// jump selects the edge labelled r and leaves jump mode.
func (v *Viewer) jump(r rune) {
	id, ok := v.jumpLabels[r]
	v.clearJump()
	if !ok {
		v.setStatus("no edge labelled %q", r)
		return
	}
	v.selected = id
	v.setStatus("selected %s", id)
}

// jumpLabel returns the label shown on edgeID in jump mode.
func (v *Viewer) jumpLabel(edgeID string) (rune, bool) {
	for r, id := range v.jumpLabels {
		if id == edgeID {
			return r, true
		}
	}
	return 0, false
}

func (v *Viewer) clearJump() {
	v.jumping = false
	v.jumpLabels = nil
}
