package repository

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildSearchFilter(t *testing.T) {
	cases := []struct {
		name     string
		field    string
		value    string
		wantCond string
		wantArgs []any
	}{
		{"empty field means no constraint", "", "anything", "1=1", nil},
		{"blank field means no constraint", "   ", "", "1=1", nil},
		{"device type lowers and wraps", FilterDeviceType, "LapTop", "LOWER(d.category) LIKE ?", []any{"%laptop%"}},
		{"status", FilterStatus, "In Repair", "LOWER(s.description) LIKE ?", []any{"%in repair%"}},
		{"division", FilterDivision, "Finance", "LOWER(v.name) LIKE ?", []any{"%finance%"}},
		{"serial number", FilterSerialNumber, "SN-42", "LOWER(d.serial_number) LIKE ?", []any{"%sn-42%"}},
		{"delivery date exact", FilterDeliveryDate, "2024-03-01", "d.delivery_date = ?", []any{"2024-03-01"}},
		{"deployment date exact", FilterDeploymentDate, "2024-03-15", "d.deployment_date = ?", []any{"2024-03-15"}},
		{"client hits either name", FilterClient, "Smith",
			"(LOWER(c.firstname) LIKE ? OR LOWER(c.lastname) LIKE ?)", []any{"%smith%", "%smith%"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cond, args, err := buildSearchFilter(tc.field, tc.value)
			if err != nil {
				t.Fatalf("buildSearchFilter: %v", err)
			}
			if cond != tc.wantCond {
				t.Errorf("cond = %q, want %q", cond, tc.wantCond)
			}
			if len(args) != len(tc.wantArgs) {
				t.Fatalf("args = %v, want %v", args, tc.wantArgs)
			}
			for i := range args {
				if args[i] != tc.wantArgs[i] {
					t.Errorf("args[%d] = %v, want %v", i, args[i], tc.wantArgs[i])
				}
			}
		})
	}
}

func TestBuildSearchFilterErrors(t *testing.T) {
	if _, _, err := buildSearchFilter("Warranty", "x"); !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("unknown field: err = %v, want ErrUnknownFilter", err)
	}
	for _, field := range []string{FilterDeliveryDate, FilterDeploymentDate} {
		for _, bad := range []string{"03/01/2024", "2024-13-40", "yesterday", ""} {
			if _, _, err := buildSearchFilter(field, bad); !errors.Is(err, ErrBadDate) {
				t.Errorf("%s %q: err = %v, want ErrBadDate", field, bad, err)
			}
		}
	}
}

func TestInSet(t *testing.T) {
	where := []string{}
	args := []any{}
	inSet("s.description", []string{"New", "In Repair"}, &where, &args)
	if len(where) != 1 || where[0] != "s.description IN (?,?)" {
		t.Errorf("where = %v", where)
	}
	if len(args) != 2 || args[0] != "New" || args[1] != "In Repair" {
		t.Errorf("args = %v", args)
	}

	inSet("d.category", nil, &where, &args)
	if len(where) != 1 || len(args) != 2 {
		t.Errorf("empty set must add nothing, got where=%v args=%v", where, args)
	}

	inSet("p.name", []string{"Hamilton"}, &where, &args)
	if len(where) != 2 || where[1] != "p.name IN (?)" {
		t.Errorf("where = %v", where)
	}
}

func TestDeviceViewSelectJoinsLookups(t *testing.T) {
	for _, join := range []string{"LEFT JOIN statuses", "LEFT JOIN divisions", "LEFT JOIN clients"} {
		if !strings.Contains(deviceViewSelect, join) {
			t.Errorf("deviceViewSelect missing %q", join)
		}
	}
}
