package wire

import "testing"

func TestI2OSP2(t *testing.T) {
	cases := []struct {
		n    int
		want [2]byte
	}{
		{0, [2]byte{0x00, 0x00}},
		{1, [2]byte{0x00, 0x01}},
		{256, [2]byte{0x01, 0x00}},
		{65535, [2]byte{0xff, 0xff}},
	}
	for _, c := range cases {
		got, err := I2OSP2(c.n)
		if err != nil {
			t.Fatalf("I2OSP2(%d) failed: %v", c.n, err)
		}
		if got[0] != c.want[0] || got[1] != c.want[1] {
			t.Errorf("I2OSP2(%d) = %x, want %x", c.n, got, c.want)
		}
	}
}

func TestI2OSP2RejectsOutOfRange(t *testing.T) {
	if _, err := I2OSP2(-1); err == nil {
		t.Error("expected error for negative n")
	}
	if _, err := I2OSP2(65536); err == nil {
		t.Error("expected error for n > 65535")
	}
}

func TestContextString(t *testing.T) {
	cs := ContextString(0x0001, 0x00)
	want := append([]byte("VOPRF08-"), 0x00, 0x00, 0x01)
	if string(cs) != string(want) {
		t.Errorf("ContextString(0x0001, 0x00) = %x, want %x", cs, want)
	}
	if len(cs) != 11 {
		t.Errorf("context string length = %d, want 11", len(cs))
	}
}

func TestContextStringDiffersByModeAndSuite(t *testing.T) {
	base := ContextString(0x0001, 0x00)
	verifiable := ContextString(0x0001, 0x01)
	if string(base) == string(verifiable) {
		t.Error("context strings for different modes must differ")
	}

	ristretto := ContextString(0x0001, 0x00)
	p256 := ContextString(0x0003, 0x00)
	if string(ristretto) == string(p256) {
		t.Error("context strings for different suites must differ")
	}
}

func TestDSTPrefixes(t *testing.T) {
	ctx := ContextString(0x0001, 0x00)
	cases := []struct {
		name   string
		got    []byte
		prefix string
	}{
		{"HashToGroupDST", HashToGroupDST(ctx), "HashToGroup-"},
		{"HashToScalarDST", HashToScalarDST(ctx), "HashToScalar-"},
		{"DeriveKeyPairDST", DeriveKeyPairDST(ctx), "DeriveKeyPair-"},
		{"FinalizeDST", FinalizeDST(ctx), "Finalize-"},
		{"SeedDST", SeedDST(ctx), "Seed-"},
		{"ContextDST", ContextDST(ctx), "Context-"},
		{"CompositeDST", CompositeDST(ctx), "Composite-"},
		{"ChallengeDST", ChallengeDST(ctx), "Challenge-"},
	}
	for _, c := range cases {
		want := append([]byte(c.prefix), ctx...)
		if string(c.got) != string(want) {
			t.Errorf("%s = %q, want %q", c.name, c.got, want)
		}
	}
}

func TestLengthPrefixed(t *testing.T) {
	got, err := LengthPrefixed([]byte("hello"))
	if err != nil {
		t.Fatalf("LengthPrefixed failed: %v", err)
	}
	want := []byte{0x00, 0x05, 'h', 'e', 'l', 'l', 'o'}
	if string(got) != string(want) {
		t.Errorf("LengthPrefixed(\"hello\") = %x, want %x", got, want)
	}
}

func TestConcat(t *testing.T) {
	got := Concat([]byte("a"), []byte("bc"), nil, []byte("d"))
	if string(got) != "abcd" {
		t.Errorf("Concat = %q, want %q", got, "abcd")
	}
}
