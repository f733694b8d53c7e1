package handler

import "testing"

func TestDeviceReqValidate(t *testing.T) {
	ok := deviceReq{Brand: "Dell", Model: "Latitude", SerialNumber: "SN-1"}
	if err := ok.validate(); err != nil {
		t.Errorf("complete request rejected: %v", err)
	}
	cases := []struct {
		name string
		req  deviceReq
	}{
		{"missing brand", deviceReq{Model: "Latitude", SerialNumber: "SN-1"}},
		{"missing model", deviceReq{Brand: "Dell", SerialNumber: "SN-1"}},
		{"missing serial", deviceReq{Brand: "Dell", Model: "Latitude"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.req.validate(); err == nil {
				t.Error("incomplete request accepted")
			}
		})
	}
}

func TestDeviceReqToDevice(t *testing.T) {
	inv := int64(1042)
	status := uint64(2)
	req := deviceReq{
		Category: "Laptop", Brand: "Dell", Model: "Latitude",
		SerialNumber: "SN-1", InventoryNumber: &inv, StatusID: &status,
	}
	d := req.toDevice()
	if d.Category != "Laptop" || d.SerialNumber != "SN-1" {
		t.Errorf("unexpected device: %+v", d)
	}
	if d.InventoryNumber == nil || *d.InventoryNumber != 1042 {
		t.Errorf("InventoryNumber = %v", d.InventoryNumber)
	}
	if d.StatusID == nil || *d.StatusID != 2 {
		t.Errorf("StatusID = %v", d.StatusID)
	}
}

func TestLookupReqValue(t *testing.T) {
	cases := []struct {
		name string
		req  lookupReq
		want string
	}{
		{"description wins", lookupReq{Description: "In Repair", Name: "ignored"}, "In Repair"},
		{"falls back to name", lookupReq{Name: "Finance"}, "Finance"},
		{"trims whitespace", lookupReq{Description: "  New  "}, "New"},
		{"blank description falls through", lookupReq{Description: "   ", Name: "Kingston"}, "Kingston"},
		{"both empty", lookupReq{}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.req.value(); got != tc.want {
				t.Errorf("value() = %q, want %q", got, tc.want)
			}
		})
	}
}
