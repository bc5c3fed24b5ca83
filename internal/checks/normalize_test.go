package checks

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalizeBGP(t *testing.T) {
	details := json.RawMessage(`{"neighbors":[{"peer":"203.0.113.1","as":65000,"state":"Establ","time":"1d","info":""}]}`)

	table, ok := Normalize("bgp", details)
	if !ok {
		t.Fatal("Normalize() returned no table for valid bgp details")
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}

	row := table.Rows[0]
	if row[0].Text != "203.0.113.1" {
		t.Errorf("peer = %q, want 203.0.113.1", row[0].Text)
	}
	if row[1].Text != "65000" {
		t.Errorf("numeric AS field = %q, want \"65000\"", row[1].Text)
	}
	if row[2].Health != HealthGood {
		t.Errorf("state Establ classified %v, want HealthGood", row[2].Health)
	}
}

func TestNormalizeBGPUnhealthyState(t *testing.T) {
	details := json.RawMessage(`{"neighbors":[{"peer":"203.0.113.1","as":65000,"state":"Idle","time":"1d","info":""}]}`)

	table, ok := Normalize("bgp", details)
	if !ok {
		t.Fatal("Normalize() returned no table")
	}
	if table.Rows[0][2].Health != HealthBad {
		t.Errorf("state Idle classified %v, want HealthBad", table.Rows[0][2].Health)
	}
}

func TestNormalizeInterfaces(t *testing.T) {
	details := json.RawMessage(`{"interfaces":[
		{"name":"ge-0/0/0","admin":"up","link":"up","protocol":"inet","address":"198.51.100.1/30"},
		{"name":"ge-0/0/1","admin":"up","link":"down","protocol":"inet","address":""}
	]}`)

	table, ok := Normalize("interfaces", details)
	if !ok {
		t.Fatal("Normalize() returned no table")
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0][2].Health != HealthGood {
		t.Errorf("link up classified %v, want HealthGood", table.Rows[0][2].Health)
	}
	if table.Rows[1][2].Health != HealthBad {
		t.Errorf("link down classified %v, want HealthBad", table.Rows[1][2].Health)
	}
}

func TestNormalizeUptime(t *testing.T) {
	table, ok := Normalize("uptime", json.RawMessage(`{"uptime":"142 days, 3:17"}`))
	if !ok {
		t.Fatal("Normalize() returned no table")
	}
	if len(table.Rows) != 1 || table.Rows[0][0].Text != "142 days, 3:17" {
		t.Errorf("unexpected uptime table: %+v", table.Rows)
	}
}

func TestNormalizeAlarmsAlwaysBad(t *testing.T) {
	details := json.RawMessage(`{"alarms":[{"time":"2025-06-01 03:00","class":"Minor","description":"Rescue configuration is not set"}]}`)

	table, ok := Normalize("alarms", details)
	if !ok {
		t.Fatal("Normalize() returned no table")
	}
	if table.Rows[0][1].Health != HealthBad {
		t.Errorf("alarm class classified %v, want HealthBad", table.Rows[0][1].Health)
	}
}

func TestNormalizeNoShape(t *testing.T) {
	cases := []struct {
		name     string
		category string
		details  json.RawMessage
	}{
		{"absent details", "bgp", nil},
		{"empty details", "bgp", json.RawMessage(``)},
		{"missing expected key", "bgp", json.RawMessage(`{"peers":[]}`)},
		{"empty sequence", "bgp", json.RawMessage(`{"neighbors":[]}`)},
		{"unknown category", "firewall", json.RawMessage(`{"rules":[{"name":"allow"}]}`)},
		{"malformed payload", "isis", json.RawMessage(`{"adjacencies":"oops"}`)},
		{"not an object", "ldp", json.RawMessage(`[1,2,3]`)},
		{"empty uptime", "uptime", json.RawMessage(`{"uptime":""}`)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := Normalize(tc.category, tc.details); ok {
				t.Errorf("Normalize(%s, %s) produced a table, want none", tc.category, tc.details)
			}
		})
	}
}

func TestNormalizeAllCategories(t *testing.T) {
	payloads := map[string]json.RawMessage{
		"interfaces":  json.RawMessage(`{"interfaces":[{"name":"ge-0/0/0","admin":"up","link":"up"}]}`),
		"bgp":         json.RawMessage(`{"neighbors":[{"peer":"10.0.0.1","as":"65001","state":"Establ"}]}`),
		"isis":        json.RawMessage(`{"adjacencies":[{"interface":"ge-0/0/0.0","level":"2","state":"Up","hold":22}]}`),
		"ldp":         json.RawMessage(`{"neighbors":[{"address":"10.0.0.2","interface":"ge-0/0/1.0","state":"oper","holdtime":30}]}`),
		"alarms":      json.RawMessage(`{"alarms":[{"time":"now","class":"Major","description":"fan failure"}]}`),
		"hardware":    json.RawMessage(`{"components":[{"slot":"0","type":"FPC","value":"750-028467","description":"MPC"}]}`),
		"environment": json.RawMessage(`{"sensors":[{"item":"FPC 0 Intake","status":"OK","value":"32 degrees C"}]}`),
		"route":       json.RawMessage(`{"routes":[{"destination":"0.0.0.0/0","protocol":"BGP","next_hop":"10.0.0.1","interface":"ge-0/0/0.0"}]}`),
		"pppoe":       json.RawMessage(`{"sessions":[{"interface":"pp0.0","state":"Up","ac_name":"isp-ac-1","uptime":"4d 02:11"}]}`),
		"uptime":      json.RawMessage(`{"uptime":"12 days, 1:02"}`),
	}
	for _, cat := range Categories {
		details, found := payloads[cat]
		if !found {
			t.Fatalf("no test payload for category %q", cat)
		}
		table, ok := Normalize(cat, details)
		if !ok {
			t.Errorf("Normalize(%s) produced no table", cat)
			continue
		}
		if len(table.Columns) == 0 || len(table.Rows) == 0 {
			t.Errorf("Normalize(%s) produced an empty table", cat)
		}
		for _, row := range table.Rows {
			if len(row) != len(table.Columns) {
				t.Errorf("Normalize(%s): row width %d != %d columns", cat, len(row), len(table.Columns))
			}
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	details := json.RawMessage(`{"neighbors":[{"peer":"10.0.0.1","as":65001,"state":"Idle","time":"00:01","info":"Active"}]}`)

	first, ok1 := Normalize("bgp", details)
	second, ok2 := Normalize("bgp", details)
	if !ok1 || !ok2 {
		t.Fatal("Normalize() returned no table")
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated normalization differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
