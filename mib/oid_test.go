package mib

import "testing"

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"simple", "1.3.6.1", "1.3.6.1", false},
		{"single arc", "1", "1", false},
		{"leading dot", ".1.3.6.1", "1.3.6.1", false},
		{"empty string", "", "", true},
		{"leading dot only", ".", "", true},
		{"zero arc", "0", "0", false},
		{"large arc", "4294967295", "4294967295", false},
		{"overflow", "4294967296", "", true},
		{"overflow mid", "1.3.4294967296.1", "", true},
		{"overflow large", "1.3.99999999999.1", "", true},
		{"invalid char", "1.3.x.1", "", true},
		{"empty arc", "1..3", "", true},
		{"trailing dot", "1.3.", "", true},
		{"leading and trailing dot", ".1.3.", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNumeric(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseNumeric(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseNumeric(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseNumeric(%q) = %q, want %q", tt.input, got.String(), tt.want)
			}
		})
	}
}

func TestParseNumericTooLong(t *testing.T) {
	s := "1"
	for i := 0; i < MaxArcs; i++ {
		s += ".1"
	}
	if _, err := ParseNumeric(s); err == nil {
		t.Errorf("ParseNumeric accepted %d arcs", MaxArcs+1)
	}
}

func TestOidCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Oid
		want int
	}{
		{"equal", Oid{1, 3, 6}, Oid{1, 3, 6}, 0},
		{"less by arc", Oid{1, 3, 5}, Oid{1, 3, 6}, -1},
		{"greater by arc", Oid{1, 3, 7}, Oid{1, 3, 6}, 1},
		{"prefix is less", Oid{1, 3}, Oid{1, 3, 6}, -1},
		{"extension is greater", Oid{1, 3, 6, 1}, Oid{1, 3, 6}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestOidCompareTree(t *testing.T) {
	tests := []struct {
		name string
		a, b Oid
		want int
	}{
		{"equal", Oid{1, 3, 6}, Oid{1, 3, 6}, 0},
		{"ancestor", Oid{1, 3}, Oid{1, 3, 6, 1}, 2},
		{"descendant", Oid{1, 3, 6, 1}, Oid{1, 3}, -2},
		{"disjoint less", Oid{1, 2, 9}, Oid{1, 3}, -1},
		{"disjoint greater", Oid{1, 4}, Oid{1, 3, 6, 1, 2}, 1},
		{"siblings", Oid{1, 3, 6, 1, 2, 1, 1}, Oid{1, 3, 6, 1, 2, 1, 2}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.CompareTree(tt.b); got != tt.want {
				t.Errorf("CompareTree(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			// Antisymmetry, with the ancestor cases mirrored.
			if got := tt.b.CompareTree(tt.a); got != -tt.want {
				t.Errorf("CompareTree(%v, %v) = %d, want %d", tt.b, tt.a, got, -tt.want)
			}
		})
	}
}

func TestOidCompareTreeReflexive(t *testing.T) {
	oids := []Oid{{0}, {1, 3}, {1, 3, 6, 1, 2, 1, 1, 1, 0}}
	for _, o := range oids {
		if got := o.CompareTree(o); got != 0 {
			t.Errorf("CompareTree(%v, %v) = %d, want 0", o, o, got)
		}
	}
}

func TestOidHasPrefix(t *testing.T) {
	base := Oid{1, 3, 6, 1}
	if !base.HasPrefix(Oid{1, 3}) {
		t.Error("HasPrefix(1.3) = false, want true")
	}
	if !base.HasPrefix(base) {
		t.Error("HasPrefix(self) = false, want true")
	}
	if base.HasPrefix(Oid{1, 3, 6, 1, 2}) {
		t.Error("HasPrefix(longer) = true, want false")
	}
	if base.HasPrefix(Oid{1, 4}) {
		t.Error("HasPrefix(diverging) = true, want false")
	}
}

func TestOidChildParent(t *testing.T) {
	o := Oid{1, 3, 6}
	child := o.Child(1)
	if child.String() != "1.3.6.1" {
		t.Errorf("Child = %s, want 1.3.6.1", child)
	}
	if o.String() != "1.3.6" {
		t.Errorf("Child mutated receiver: %s", o)
	}
	if p := child.Parent(); p.String() != "1.3.6" {
		t.Errorf("Parent = %s, want 1.3.6", p)
	}
	if (Oid{1}).Parent() != nil {
		t.Error("Parent of single arc should be nil")
	}
}

func TestOidRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1.3.6.1.2.1", "2.100.1094795585"} {
		o, err := ParseNumeric(s)
		if err != nil {
			t.Fatalf("ParseNumeric(%q): %v", s, err)
		}
		if o.String() != s {
			t.Errorf("round trip %q = %q", s, o.String())
		}
	}
}
