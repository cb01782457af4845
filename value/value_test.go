/*
 * mjvm - a small Java virtual machine
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package value

import "testing"

func TestShortNameTagLaw(t *testing.T) {
	// ShortName(v) belongs to {Z,B,S,I,J,F,D,C,A} and the variant
	// implied by that tag matches v's payload type.
	tests := []struct {
		name string
		v    Value
		want byte
	}{
		{"bool", Bool(true), 'Z'},
		{"byte", Byte(-5), 'B'},
		{"short", Short(1000), 'S'},
		{"int", Int(42), 'I'},
		{"long", Long(1 << 40), 'J'},
		{"float", Float(3.5), 'F'},
		{"double", Double(2.25), 'D'},
		{"char", Char('x'), 'C'},
		{"ref", Ref(3), 'A'},
		{"null", Null(), 'A'},
	}
	valid := map[byte]bool{'Z': true, 'B': true, 'S': true, 'I': true, 'J': true, 'F': true, 'D': true, 'C': true, 'A': true}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.ShortName()
			if got != tt.want {
				t.Fatalf("ShortName() = %q; want %q", got, tt.want)
			}
			if !valid[got] {
				t.Fatalf("ShortName() = %q not in the nine-variant alphabet", got)
			}
		})
	}
}

func TestDefaultIsIntegerZero(t *testing.T) {
	d := Default()
	if d.Tag != TInt || d.I32() != 0 {
		t.Fatalf("Default() = %+v; want int 0", d)
	}
}

func TestNullIsRefZero(t *testing.T) {
	n := Null()
	if !n.IsRef() || n.RefID() != 0 {
		t.Fatalf("Null() = %+v; want ref 0", n)
	}
}

func TestFloatDoubleRoundTrip(t *testing.T) {
	f := Float(1.5)
	if f.F32() != 1.5 {
		t.Fatalf("Float(1.5).F32() = %v; want 1.5", f.F32())
	}
	d := Double(2.5)
	if d.F64() != 2.5 {
		t.Fatalf("Double(2.5).F64() = %v; want 2.5", d.F64())
	}
}

func TestIsCategory2(t *testing.T) {
	if !Long(0).IsCategory2() {
		t.Fatal("Long should be category 2")
	}
	if !Double(0).IsCategory2() {
		t.Fatal("Double should be category 2")
	}
	if Int(0).IsCategory2() {
		t.Fatal("Int should not be category 2")
	}
	if Ref(0).IsCategory2() {
		t.Fatal("Ref should not be category 2")
	}
}

func TestEqual(t *testing.T) {
	if !Equal(Int(5), Int(5)) {
		t.Fatal("Int(5) should equal Int(5)")
	}
	if Equal(Int(5), Long(5)) {
		t.Fatal("Int(5) should not equal Long(5): different tag")
	}
	if Equal(Int(5), Int(6)) {
		t.Fatal("Int(5) should not equal Int(6)")
	}
}

func TestSignedNarrowConversions(t *testing.T) {
	v := Int(-1)
	if v.I8() != -1 || v.I16() != -1 {
		t.Fatalf("narrow views of Int(-1): I8=%d I16=%d; want -1, -1", v.I8(), v.I16())
	}
}
