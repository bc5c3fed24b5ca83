// Package checks normalizes the per-category diagnostic payloads attached
// to check results into renderable tables. Payload shape is only as
// reliable as the device-side collector that produced it, so anything that
// does not match the expected shape degrades to "no table" instead of an
// error.
package checks

import (
	"encoding/json"
	"strconv"
)

// Categories is the closed set of diagnostic categories the server emits.
var Categories = []string{
	"interfaces", "bgp", "isis", "ldp", "alarms",
	"hardware", "environment", "route", "pppoe", "uptime",
}

// Text is a payload field that tolerates strings, numbers, and booleans on
// the wire. Collectors are inconsistent about quoting numeric columns
// (AS numbers, hold timers), so every row field decodes through this.
type Text string

// UnmarshalJSON accepts a JSON string, number, boolean, or null.
func (t *Text) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Text(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*t = Text(strconv.FormatBool(b))
		return nil
	}
	// Anything else (object, array) is not a cell value.
	*t = ""
	return nil
}

// InterfaceRow is one physical or logical interface.
type InterfaceRow struct {
	Name     Text `json:"name"`
	Admin    Text `json:"admin"`
	Link     Text `json:"link"`
	Protocol Text `json:"protocol"`
	Address  Text `json:"address"`
}

// BGPNeighborRow is one BGP peering session.
type BGPNeighborRow struct {
	Peer  Text `json:"peer"`
	AS    Text `json:"as"`
	State Text `json:"state"`
	Time  Text `json:"time"`
	Info  Text `json:"info"`
}

// ISISAdjacencyRow is one IS-IS adjacency.
type ISISAdjacencyRow struct {
	Interface Text `json:"interface"`
	Level     Text `json:"level"`
	State     Text `json:"state"`
	Hold      Text `json:"hold"`
	Neighbor  Text `json:"neighbor"`
}

// LDPNeighborRow is one LDP session.
type LDPNeighborRow struct {
	Address   Text `json:"address"`
	Interface Text `json:"interface"`
	State     Text `json:"state"`
	Holdtime  Text `json:"holdtime"`
}

// AlarmRow is one active chassis or system alarm.
type AlarmRow struct {
	Time        Text `json:"time"`
	Class       Text `json:"class"`
	Description Text `json:"description"`
}

// HardwareRow is one chassis hardware component.
type HardwareRow struct {
	Slot        Text `json:"slot"`
	Type        Text `json:"type"`
	Value       Text `json:"value"`
	Description Text `json:"description"`
}

// SensorRow is one environment sensor reading.
type SensorRow struct {
	Item        Text `json:"item"`
	Status      Text `json:"status"`
	Value       Text `json:"value"`
	Description Text `json:"description"`
}

// RouteRow is one routing table summary entry.
type RouteRow struct {
	Destination Text `json:"destination"`
	Protocol    Text `json:"protocol"`
	NextHop     Text `json:"next_hop"`
	Interface   Text `json:"interface"`
}

// PPPoERow is one PPPoE session.
type PPPoERow struct {
	Interface Text `json:"interface"`
	State     Text `json:"state"`
	ACName    Text `json:"ac_name"`
	Uptime    Text `json:"uptime"`
}

// Per-category payload envelopes. Each category has exactly one expected
// top-level key holding its row sequence (uptime holds a single string).
type (
	interfacesDetails struct {
		Interfaces []InterfaceRow `json:"interfaces"`
	}
	bgpDetails struct {
		Neighbors []BGPNeighborRow `json:"neighbors"`
	}
	isisDetails struct {
		Adjacencies []ISISAdjacencyRow `json:"adjacencies"`
	}
	ldpDetails struct {
		Neighbors []LDPNeighborRow `json:"neighbors"`
	}
	alarmsDetails struct {
		Alarms []AlarmRow `json:"alarms"`
	}
	hardwareDetails struct {
		Components []HardwareRow `json:"components"`
	}
	environmentDetails struct {
		Sensors []SensorRow `json:"sensors"`
	}
	routeDetails struct {
		Routes []RouteRow `json:"routes"`
	}
	pppoeDetails struct {
		Sessions []PPPoERow `json:"sessions"`
	}
	uptimeDetails struct {
		Uptime string `json:"uptime"`
	}
)
