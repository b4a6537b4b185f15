package topology

import (
	"sort"
	"strings"
)

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// findCycle walks the request edges depth-first and returns the devices of
// the first loop found, with the first device repeated at the end.
func findCycle(devices []*Device) []*Device {
	state := make(map[*Device]visitState, len(devices))
	var stack []*Device

	var visit func(d *Device) []*Device
	visit = func(d *Device) []*Device {
		state[d] = visiting
		stack = append(stack, d)

		for _, next := range d.downstream() {
			switch state[next] {
			case visiting:
				return cycleFrom(stack, next)
			case unvisited:
				if c := visit(next); c != nil {
					return c
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[d] = visited

		return nil
	}

	for _, d := range sortedByName(devices) {
		if state[d] != unvisited {
			continue
		}

		if c := visit(d); c != nil {
			return c
		}
	}

	return nil
}

func cycleFrom(stack []*Device, start *Device) []*Device {
	for i, d := range stack {
		if d == start {
			cycle := append([]*Device(nil), stack[i:]...)
			return append(cycle, start)
		}
	}

	return nil
}

// reaches tells if a device of the given kind can be reached from d along
// request edges.
func reaches(d *Device, k Kind) bool {
	seen := map[*Device]bool{d: true}
	queue := []*Device{d}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, next := range cur.downstream() {
			if next.Kind() == k {
				return true
			}

			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	return false
}

func sortedByName(devices []*Device) []*Device {
	list := append([]*Device(nil), devices...)
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})

	return list
}

func namesOf(devices []*Device) []string {
	names := make([]string, 0, len(devices))
	seen := make(map[string]bool)

	for _, d := range devices {
		if seen[d.Name()] {
			continue
		}

		seen[d.Name()] = true
		names = append(names, d.Name())
	}

	return names
}

func joinNames(devices []*Device, sep string) string {
	names := make([]string, 0, len(devices))
	for _, d := range devices {
		names = append(names, d.Name())
	}

	return strings.Join(names, sep)
}
