package datarecording

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/sarchlab/simtopo/topology"
)

// Tables written by RecordTopology.
const (
	TopologyTable   = "topologies"
	DeviceTable     = "devices"
	PortTable       = "ports"
	ConnectionTable = "connections"
	RangeTable      = "address_ranges"
)

// TopologyEntry is a row of the topologies table. MemoryRanges holds the
// declared system memory as JSON.
type TopologyEntry struct {
	ID           string
	Name         string
	Clock        string
	Voltage      string
	MemMode      string
	MemoryRanges string
}

// DeviceEntry is a row of the devices table.
type DeviceEntry struct {
	Topology string
	ID       uint64
	Name     string
	Kind     string
	Params   string
}

// PortEntry is a row of the ports table.
type PortEntry struct {
	Topology  string
	Name      string
	Device    string
	Direction string
	Optional  bool
}

// ConnectionEntry is a row of the connections table.
type ConnectionEntry struct {
	Topology string
	Request  string
	Response string
}

// RangeEntry is a row of the address_ranges table.
type RangeEntry struct {
	Topology string
	Owner    string
	Start    uint64
	Size     uint64
}

// RecordTopology writes the devices, ports, connections and address ranges
// of a topology. Several topologies can share one recorder. Rows are tagged
// with the topology ID.
func RecordTopology(rec DataRecorder, t *topology.Topology) error {
	createTopologyTables(rec)

	desc := t.Describe()

	memoryRanges, err := json.Marshal(desc.MemoryRanges)
	if err != nil {
		return err
	}

	rec.InsertData(TopologyTable, TopologyEntry{
		ID:           t.ID(),
		Name:         desc.Name,
		Clock:        desc.Clock,
		Voltage:      desc.Voltage,
		MemMode:      desc.MemMode,
		MemoryRanges: string(memoryRanges),
	})

	for _, d := range t.Devices() {
		params, err := json.Marshal(describedParams(desc, d.Name()))
		if err != nil {
			return err
		}

		rec.InsertData(DeviceTable, DeviceEntry{
			Topology: t.ID(),
			ID:       d.ID(),
			Name:     d.Name(),
			Kind:     d.Kind().String(),
			Params:   string(params),
		})
	}

	for _, p := range t.Ports() {
		rec.InsertData(PortTable, PortEntry{
			Topology:  t.ID(),
			Name:      p.Name(),
			Device:    p.Device().Name(),
			Direction: p.Direction().String(),
			Optional:  p.Optional(),
		})
	}

	for _, c := range desc.Connections {
		rec.InsertData(ConnectionTable, ConnectionEntry{
			Topology: t.ID(),
			Request:  c.Request,
			Response: c.Response,
		})
	}

	for _, r := range desc.Ranges {
		rec.InsertData(RangeTable, RangeEntry{
			Topology: t.ID(),
			Owner:    r.Owner,
			Start:    r.Start,
			Size:     r.Size,
		})
	}

	rec.Flush()

	return nil
}

func createTopologyTables(rec DataRecorder) {
	tables := []struct {
		name   string
		sample any
	}{
		{TopologyTable, TopologyEntry{}},
		{DeviceTable, DeviceEntry{}},
		{PortTable, PortEntry{}},
		{ConnectionTable, ConnectionEntry{}},
		{RangeTable, RangeEntry{}},
	}

	existing := rec.ListTables()

	for _, tbl := range tables {
		if !slices.Contains(existing, tbl.name) {
			rec.CreateTable(tbl.name, tbl.sample)
		}
	}
}

func describedParams(desc topology.Description, name string) map[string]string {
	for _, d := range desc.Devices {
		if d.Name == name {
			return d.Params
		}
	}

	return nil
}

// ErrTopologyNotRecorded is returned when a recording does not hold the
// requested topology.
var ErrTopologyNotRecorded = errors.New("topology not recorded")

// RecordedTopologies lists the topologies of a recording in the order they
// were recorded.
func RecordedTopologies(ctx context.Context, r DataReader) ([]TopologyEntry, error) {
	return queryEntries[TopologyEntry](ctx, r, TopologyTable,
		QueryParams{OrderBy: "rowid"})
}

// ReadTopology rebuilds the description of a recorded topology. An empty id
// selects the only topology of the recording.
func ReadTopology(
	ctx context.Context,
	r DataReader,
	id string,
) (topology.Description, error) {
	var desc topology.Description

	entry, err := findTopology(ctx, r, id)
	if err != nil {
		return desc, err
	}

	desc.Name = entry.Name
	desc.Clock = entry.Clock
	desc.Voltage = entry.Voltage
	desc.MemMode = entry.MemMode

	err = json.Unmarshal([]byte(entry.MemoryRanges), &desc.MemoryRanges)
	if err != nil {
		return desc, fmt.Errorf("memory ranges of %s: %w", entry.ID, err)
	}

	ofTopology := QueryParams{
		Where:   "Topology = ?",
		Args:    []any{entry.ID},
		OrderBy: "rowid",
	}

	if desc.Devices, err = readDevices(ctx, r, ofTopology); err != nil {
		return desc, err
	}

	conns, err := queryEntries[ConnectionEntry](ctx, r, ConnectionTable, ofTopology)
	if err != nil {
		return desc, err
	}

	for _, c := range conns {
		desc.Connections = append(desc.Connections,
			topology.ConnectionDesc{Request: c.Request, Response: c.Response})
	}

	ranges, err := queryEntries[RangeEntry](ctx, r, RangeTable, ofTopology)
	if err != nil {
		return desc, err
	}

	for _, rng := range ranges {
		desc.Ranges = append(desc.Ranges,
			topology.RangeDesc{Owner: rng.Owner, Start: rng.Start, Size: rng.Size})
	}

	return desc, nil
}

func findTopology(
	ctx context.Context,
	r DataReader,
	id string,
) (TopologyEntry, error) {
	entries, err := RecordedTopologies(ctx, r)
	if err != nil {
		return TopologyEntry{}, err
	}

	if id == "" {
		switch len(entries) {
		case 0:
			return TopologyEntry{}, ErrTopologyNotRecorded
		case 1:
			return entries[0], nil
		}

		ids := make([]string, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.ID)
		}

		return TopologyEntry{}, fmt.Errorf(
			"recording holds %d topologies, pick one of %s",
			len(entries), strings.Join(ids, ", "))
	}

	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}

	return TopologyEntry{}, fmt.Errorf("%w: %s", ErrTopologyNotRecorded, id)
}

func readDevices(
	ctx context.Context,
	r DataReader,
	ofTopology QueryParams,
) ([]topology.DeviceDesc, error) {
	ports, err := queryEntries[PortEntry](ctx, r, PortTable, ofTopology)
	if err != nil {
		return nil, err
	}

	portsOf := make(map[string][]topology.PortDesc)
	for _, p := range ports {
		portsOf[p.Device] = append(portsOf[p.Device], topology.PortDesc{
			Name:      strings.TrimPrefix(p.Name, p.Device+"."),
			Direction: p.Direction,
			Optional:  p.Optional,
		})
	}

	entries, err := queryEntries[DeviceEntry](ctx, r, DeviceTable, ofTopology)
	if err != nil {
		return nil, err
	}

	var devices []topology.DeviceDesc

	for _, e := range entries {
		d := topology.DeviceDesc{
			Name:  e.Name,
			Kind:  e.Kind,
			Ports: portsOf[e.Name],
		}

		if err := json.Unmarshal([]byte(e.Params), &d.Params); err != nil {
			return nil, fmt.Errorf("params of %s: %w", e.Name, err)
		}

		sort.Slice(d.Ports, func(i, j int) bool {
			return d.Ports[i].Name < d.Ports[j].Name
		})

		devices = append(devices, d)
	}

	sort.Slice(devices, func(i, j int) bool {
		return devices[i].Name < devices[j].Name
	})

	return devices, nil
}

func queryEntries[T any](
	ctx context.Context,
	r DataReader,
	table string,
	params QueryParams,
) ([]T, error) {
	var sample T
	r.MapTable(table, sample)

	results, _, err := r.Query(ctx, table, params)
	if err != nil {
		return nil, err
	}

	entries := make([]T, 0, len(results))
	for _, res := range results {
		entries = append(entries, *res.(*T))
	}

	return entries, nil
}
