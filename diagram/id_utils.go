package diagram

import "fmt"

// EnsureUniqueIDs gives every element and edge a unique, non-empty id.
// Existing unique ids are kept; blanks and later duplicates are reassigned
// as "node-N" / "edge-N" using the first free N.
func EnsureUniqueIDs(d *Diagram) {
	if d == nil {
		return
	}

	used := make(map[string]bool)
	var needsID []int
	for i := range d.Elements {
		id := d.Elements[i].ID
		if id == "" || used[id] {
			needsID = append(needsID, i)
			continue
		}
		used[id] = true
	}
	counters := make(map[string]int)
	for _, i := range needsID {
		d.Elements[i].ID = nextFreeID(used, elementPrefix(d.Elements[i].Type), counters)
	}

	usedEdges := make(map[string]bool, len(d.Edges))
	for id := range used {
		usedEdges[id] = true
	}
	needsID = needsID[:0]
	for i := range d.Edges {
		id := d.Edges[i].ID
		if id == "" || usedEdges[id] {
			needsID = append(needsID, i)
			continue
		}
		usedEdges[id] = true
	}
	for _, i := range needsID {
		d.Edges[i].ID = nextFreeID(usedEdges, "edge", counters)
	}
}

func elementPrefix(t ElementType) string {
	if t == "" {
		return string(ElementNode)
	}
	return string(t)
}

func nextFreeID(used map[string]bool, prefix string, counters map[string]int) string {
	for {
		id := fmt.Sprintf("%s-%d", prefix, counters[prefix])
		counters[prefix]++
		if !used[id] {
			used[id] = true
			return id
		}
	}
}

// NextID returns the first "prefix-N" not used by any element or edge of d.
func NextID(d *Diagram, prefix string) string {
	used := make(map[string]bool, len(d.Elements)+len(d.Edges))
	for _, el := range d.Elements {
		used[el.ID] = true
	}
	for _, e := range d.Edges {
		used[e.ID] = true
	}
	return nextFreeID(used, prefix, map[string]int{})
}
