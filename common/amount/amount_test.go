package amount

import (
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"1", "1"},
		{"123.456", "123.456"},
		{"0.000000000000000001", "0.000000000000000001"},
		{"-3.5", "-3.5"},
		{"1000000", "1000000"},
	}
	for _, c := range cases {
		am, err := ParseAmount(c.in)
		if err != nil {
			t.Fatalf("parse %v: %v", c.in, err)
		}
		if am.String() != c.want {
			t.Fatalf("parse %v: expect %v got %v", c.in, c.want, am.String())
		}
	}
}

func TestParseAmountRejectsMalformedInput(t *testing.T) {
	for _, in := range []string{"", "abc", "1.2.3", "1.1234567890123456789"} {
		if _, err := ParseAmount(in); err == nil {
			t.Fatalf("expect parse error of %v", in)
		}
	}
}

func TestNewAmount(t *testing.T) {
	if !NewAmount(1, 0).Equal(COIN) {
		t.Fatal("expect one coin")
	}
	am := NewAmount(2, 500000000000000000)
	if am.String() != "2.5" {
		t.Fatalf("expect 2.5 got %v", am.String())
	}
	if !NewAmount(0, 0).IsZero() {
		t.Fatal("expect zero")
	}
}

func TestArithmeticDoesNotMutate(t *testing.T) {
	a := NewAmount(10, 0)
	b := NewAmount(3, 0)

	if a.Add(b).String() != "13" {
		t.Fatal("add")
	}
	if a.Sub(b).String() != "7" {
		t.Fatal("sub")
	}
	if a.MulC(3).String() != "30" {
		t.Fatal("mulc")
	}
	if a.DivC(4).String() != "2.5" {
		t.Fatal("divc")
	}
	if a.Mul(b).Div(COIN).String() != "30" {
		t.Fatal("mul div")
	}
	if a.String() != "10" || b.String() != "3" {
		t.Fatal("operands must not change")
	}
}

func TestComparisons(t *testing.T) {
	a := NewAmount(1, 0)
	b := NewAmount(2, 0)
	if !a.Less(b) || b.Less(a) {
		t.Fatal("less")
	}
	if !a.Equal(a.Clone()) {
		t.Fatal("equal")
	}
	if !a.Sub(b).IsMinus() {
		t.Fatal("minus")
	}
	if !b.IsPlus() {
		t.Fatal("plus")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	am := MustParseAmount("12.75")
	bs, err := am.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(bs) != `"12.75"` {
		t.Fatalf("expect quoted string got %v", string(bs))
	}
	out := &Amount{}
	if err := out.UnmarshalJSON(bs); err != nil {
		t.Fatal(err)
	}
	if !out.Equal(am) {
		t.Fatalf("expect %v got %v", am.String(), out.String())
	}
}
