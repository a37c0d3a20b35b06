package kasku

import "testing"

func TestRupiah_String(t *testing.T) {
	testCases := []struct {
		in   int64
		want string
	}{
		{0, "Rp0"},
		{500, "Rp500"},
		{12000, "Rp12.000"},
		{1250000, "Rp1.250.000"},
	}
	for _, tc := range testCases {
		if got := R(tc.in).String(); got != tc.want {
			t.Errorf("R(%d).String() = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestRupiah_SignedString(t *testing.T) {
	if got := R(12000).SignedString(true); got != "+ Rp12.000" {
		t.Errorf("inflow = %q; want %q", got, "+ Rp12.000")
	}
	if got := R(12000).SignedString(false); got != "- Rp12.000" {
		t.Errorf("outflow = %q; want %q", got, "- Rp12.000")
	}
}

func TestRupiah_Arithmetic(t *testing.T) {
	a, b := R(1500), R(500)
	if got := a.Add(b); !got.Equal(R(2000)) {
		t.Errorf("Add = %s", got)
	}
	if got := a.Sub(b); !got.Equal(R(1000)) {
		t.Errorf("Sub = %s", got)
	}
	if !a.GreaterThan(b) {
		t.Error("1500 should be greater than 500")
	}
	if !R(0).IsZero() {
		t.Error("zero should be zero")
	}
}
