package schema

import "testing"

func TestLookupKnownCommand(t *testing.T) {
	d, ok := Lookup(CmdIdent)
	if !ok {
		t.Fatalf("MSP_IDENT not registered")
	}
	if d.Code != 100 || d.Name != "MSP_IDENT" || d.Direction != DirResponse {
		t.Fatalf("unexpected descriptor: %+v", d)
	}
	if d.Layout.FixedSize() != 7 {
		t.Fatalf("MSP_IDENT fixed size: got %d want 7", d.Layout.FixedSize())
	}
}

func TestLookupUnknownCommand(t *testing.T) {
	if _, ok := Lookup(42); ok {
		t.Fatalf("expected lookup miss for code 42")
	}
}

func TestDescriptorCodesMatchRegistryKeys(t *testing.T) {
	for _, code := range Commands() {
		d, ok := Lookup(code)
		if !ok {
			t.Fatalf("Commands returned unregistered code %d", code)
		}
		if d.Code != code {
			t.Fatalf("descriptor code %d registered under key %d", d.Code, code)
		}
	}
}

func TestDirectionsSplitAtSetBoundary(t *testing.T) {
	for _, code := range Commands() {
		d, _ := Lookup(code)
		if code < 200 && d.Direction == DirRequest {
			t.Fatalf("%s: query command marked as request", d.Name)
		}
		if code >= 200 && d.Direction != DirRequest {
			t.Fatalf("%s: set command not marked as request", d.Name)
		}
	}
}

func TestVariableFieldIsAlwaysLast(t *testing.T) {
	for _, code := range Commands() {
		d, _ := Lookup(code)
		for i, f := range d.Layout {
			if f.Count == 0 && i != len(d.Layout)-1 {
				t.Fatalf("%s: variable field %q is not last", d.Name, f.Name)
			}
		}
	}
}

func TestKindWidths(t *testing.T) {
	cases := []struct {
		kind Kind
		size int
		sign bool
	}{
		{U8, 1, false}, {S8, 1, true},
		{U16, 2, false}, {S16, 2, true},
		{U32, 4, false}, {S32, 4, true},
	}
	for _, c := range cases {
		if c.kind.Size() != c.size {
			t.Fatalf("kind %d size: got %d want %d", c.kind, c.kind.Size(), c.size)
		}
		if c.kind.Signed() != c.sign {
			t.Fatalf("kind %d signedness: got %v want %v", c.kind, c.kind.Signed(), c.sign)
		}
	}
}

func TestKnownFixedPayloadSizes(t *testing.T) {
	sizes := map[uint8]int{
		CmdIdent:    7,
		CmdStatus:   11,
		CmdRawIMU:   18,
		CmdRawGPS:   16,
		CmdAttitude: 6,
		CmdAltitude: 6,
		CmdAnalog:   7,
		CmdRCTuning: 7,
		CmdPID:      30,
		CmdMisc:     22,
		CmdWP:       18,
	}
	for code, want := range sizes {
		d, _ := Lookup(code)
		if got := d.Layout.FixedSize(); got != want {
			t.Fatalf("%s fixed size: got %d want %d", d.Name, got, want)
		}
	}
}
