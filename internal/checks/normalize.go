package checks

import "encoding/json"

// Health is the cosmetic good/bad classification of a state cell. It is
// derived by exact match against the category's healthy token and is
// independent of the check's own status field; the two may disagree.
type Health int

const (
	HealthNone Health = iota // not a state column
	HealthGood
	HealthBad
)

// Cell is one renderable table cell.
type Cell struct {
	Text   string
	Health Health
}

// Table is the renderable shape of a normalized details payload.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// Healthy tokens per state column. Anything else in those columns is bad.
const (
	tokenUp     = "up"     // interfaces admin/link
	tokenEstabl = "Establ" // bgp state
	tokenAdjUp  = "Up"     // isis and pppoe state
	tokenOper   = "oper"   // ldp state
	tokenOK     = "OK"     // environment status
)

// Normalize maps a (category, details) pair to a renderable table. It
// returns ok == false when details is absent, the category is outside the
// closed set, the expected key is absent or empty, or the payload does not
// decode — callers degrade to showing nothing. Normalize is pure and
// idempotent.
func Normalize(category string, details json.RawMessage) (Table, bool) {
	if len(details) == 0 {
		return Table{}, false
	}

	switch category {
	case "interfaces":
		var d interfacesDetails
		if !decode(details, &d) || len(d.Interfaces) == 0 {
			return Table{}, false
		}
		t := Table{Columns: []string{"Interface", "Admin", "Link", "Protocol", "Address"}}
		for _, r := range d.Interfaces {
			t.Rows = append(t.Rows, []Cell{
				plain(r.Name), state(r.Admin, tokenUp), state(r.Link, tokenUp),
				plain(r.Protocol), plain(r.Address),
			})
		}
		return t, true

	case "bgp":
		var d bgpDetails
		if !decode(details, &d) || len(d.Neighbors) == 0 {
			return Table{}, false
		}
		t := Table{Columns: []string{"Peer", "AS", "State", "Time", "Info"}}
		for _, r := range d.Neighbors {
			t.Rows = append(t.Rows, []Cell{
				plain(r.Peer), plain(r.AS), state(r.State, tokenEstabl),
				plain(r.Time), plain(r.Info),
			})
		}
		return t, true

	case "isis":
		var d isisDetails
		if !decode(details, &d) || len(d.Adjacencies) == 0 {
			return Table{}, false
		}
		t := Table{Columns: []string{"Interface", "Level", "State", "Hold", "Neighbor"}}
		for _, r := range d.Adjacencies {
			t.Rows = append(t.Rows, []Cell{
				plain(r.Interface), plain(r.Level), state(r.State, tokenAdjUp),
				plain(r.Hold), plain(r.Neighbor),
			})
		}
		return t, true

	case "ldp":
		var d ldpDetails
		if !decode(details, &d) || len(d.Neighbors) == 0 {
			return Table{}, false
		}
		t := Table{Columns: []string{"Address", "Interface", "State", "Hold Time"}}
		for _, r := range d.Neighbors {
			t.Rows = append(t.Rows, []Cell{
				plain(r.Address), plain(r.Interface), state(r.State, tokenOper),
				plain(r.Holdtime),
			})
		}
		return t, true

	case "alarms":
		var d alarmsDetails
		if !decode(details, &d) || len(d.Alarms) == 0 {
			return Table{}, false
		}
		t := Table{Columns: []string{"Time", "Class", "Description"}}
		for _, r := range d.Alarms {
			// An alarm row is bad by definition whatever its class.
			t.Rows = append(t.Rows, []Cell{
				plain(r.Time),
				{Text: string(r.Class), Health: HealthBad},
				plain(r.Description),
			})
		}
		return t, true

	case "hardware":
		var d hardwareDetails
		if !decode(details, &d) || len(d.Components) == 0 {
			return Table{}, false
		}
		t := Table{Columns: []string{"Slot", "Type", "Value", "Description"}}
		for _, r := range d.Components {
			t.Rows = append(t.Rows, []Cell{
				plain(r.Slot), plain(r.Type), plain(r.Value), plain(r.Description),
			})
		}
		return t, true

	case "environment":
		var d environmentDetails
		if !decode(details, &d) || len(d.Sensors) == 0 {
			return Table{}, false
		}
		t := Table{Columns: []string{"Item", "Status", "Value", "Description"}}
		for _, r := range d.Sensors {
			t.Rows = append(t.Rows, []Cell{
				plain(r.Item), state(r.Status, tokenOK), plain(r.Value),
				plain(r.Description),
			})
		}
		return t, true

	case "route":
		var d routeDetails
		if !decode(details, &d) || len(d.Routes) == 0 {
			return Table{}, false
		}
		t := Table{Columns: []string{"Destination", "Protocol", "Next Hop", "Interface"}}
		for _, r := range d.Routes {
			t.Rows = append(t.Rows, []Cell{
				plain(r.Destination), plain(r.Protocol), plain(r.NextHop),
				plain(r.Interface),
			})
		}
		return t, true

	case "pppoe":
		var d pppoeDetails
		if !decode(details, &d) || len(d.Sessions) == 0 {
			return Table{}, false
		}
		t := Table{Columns: []string{"Interface", "State", "AC Name", "Uptime"}}
		for _, r := range d.Sessions {
			t.Rows = append(t.Rows, []Cell{
				plain(r.Interface), state(r.State, tokenAdjUp), plain(r.ACName),
				plain(r.Uptime),
			})
		}
		return t, true

	case "uptime":
		var d uptimeDetails
		if !decode(details, &d) || d.Uptime == "" {
			return Table{}, false
		}
		return Table{
			Columns: []string{"System Uptime"},
			Rows:    [][]Cell{{{Text: d.Uptime}}},
		}, true

	default:
		return Table{}, false
	}
}

func decode(data json.RawMessage, out any) bool {
	return json.Unmarshal(data, out) == nil
}

func plain(t Text) Cell {
	return Cell{Text: string(t)}
}

func state(t Text, healthy string) Cell {
	h := HealthBad
	if string(t) == healthy {
		h = HealthGood
	}
	return Cell{Text: string(t), Health: h}
}
