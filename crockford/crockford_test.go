package crockford

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"1", "1"},
		{"31", "Z"},
		{"32", "10"},
		{"114995", "3G9K"},
		{"007", "7"},
		{"1234567890", "14SC0PJ"},
		{"4294967295", "3ZZZZZZ"},
		{"9999999999", "9A0QRZZ"},
	}
	for _, tt := range tests {
		got, err := Encode(tt.in)
		if err != nil {
			t.Fatalf("Encode(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Encode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodeInvalid(t *testing.T) {
	invalid := []string{
		"",
		"12345678901",
		"-1",
		"+1",
		"12a",
		" 12",
		"1.5",
	}
	for _, s := range invalid {
		got, err := Encode(s)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Encode(%q) = %q, %v; want ErrInvalidInput", s, got, err)
		}
		if got != "" {
			t.Errorf("Encode(%q) returned partial result %q", s, got)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"1", "1"},
		{"Z", "31"},
		{"10", "32"},
		{"3G9K", "114995"},
		{"3g9k", "114995"},
		{"3G-9K", "114995"},
		{"-3G9K-", "114995"},
		{"000", "0"},
		{"9A0QRZZ", "9999999999"},
		{"FZZZZZZZZZZZZ", "18446744073709551615"},
	}
	for _, tt := range tests {
		got, err := Decode(tt.in)
		if err != nil {
			t.Fatalf("Decode(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Decode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeSubstitutions(t *testing.T) {
	tests := []struct {
		in, same string
	}{
		{"O1I1", "0111"},
		{"o1il", "0111"},
		{"LOL", "101"},
		{"hello-world", "HE110W0R1D"},
	}
	for _, tt := range tests {
		got, err := Decode(tt.in)
		if err != nil {
			t.Fatalf("Decode(%q): %v", tt.in, err)
		}
		want, err := Decode(tt.same)
		if err != nil {
			t.Fatalf("Decode(%q): %v", tt.same, err)
		}
		if got != want {
			t.Errorf("Decode(%q) = %q, want %q (same as %q)", tt.in, got, want, tt.same)
		}
	}
}

func TestDecodeCaseInsensitive(t *testing.T) {
	const s = "hell0-w0rld"
	want, err := Decode(strings.ToUpper(s))
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range []string{s, "HeLl0-W0rLd", "hELL0-w0RLD", "HELL0W0RLD"} {
		got, err := Decode(in)
		if err != nil {
			t.Fatalf("Decode(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("Decode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		for _, s := range []string{"", "-", "---"} {
			_, err := Decode(s)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Decode(%q): got %v, want ErrInvalidInput", s, err)
			}
		}
	})
	t.Run("Character", func(t *testing.T) {
		tests := []struct {
			in  string
			pos int
		}{
			{"3G9K!", 4},
			{"U", 0},
			{"3g u", 2},
			{"ab_c", 2},
			{"3G\xff", 2},
			{"é", 0},
		}
		for _, tt := range tests {
			got, err := Decode(tt.in)
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("Decode(%q) = %q, %v; want *DecodeError", tt.in, got, err)
			}
			if !errors.Is(err, ErrInvalidCharacter) {
				t.Errorf("Decode(%q): %v does not wrap ErrInvalidCharacter", tt.in, err)
			}
			if de.Pos != tt.pos {
				t.Errorf("Decode(%q): Pos = %d, want %d", tt.in, de.Pos, tt.pos)
			}
			if got != "" {
				t.Errorf("Decode(%q) returned partial result %q", tt.in, got)
			}
		}
	})
	t.Run("Overflow", func(t *testing.T) {
		for _, s := range []string{"G000000000000", "ZZZZZZZZZZZZZZ"} {
			_, err := Decode(s)
			var de *DecodeError
			if !errors.As(err, &de) || !errors.Is(err, ErrOverflow) {
				t.Errorf("Decode(%q): got %v, want overflow DecodeError", s, err)
			}
		}
	})
}

func TestRoundtrip(t *testing.T) {
	check := func(n uint64) {
		t.Helper()
		s := strconv.FormatUint(n, 10)
		enc, err := Encode(s)
		if err != nil {
			t.Fatalf("Encode(%q): %v", s, err)
		}
		if strings.ContainsAny(enc, "ILOUabcdefghijklmnopqrstuvwxyz-") {
			t.Fatalf("Encode(%q) = %q, not canonical", s, enc)
		}
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(%q): %v", enc, err)
		}
		if dec != s {
			t.Fatalf("Decode(Encode(%q)) = %q", s, dec)
		}
	}

	for n := uint64(0); n < 4096; n++ {
		check(n)
	}
	for _, n := range []uint64{1<<32 - 1, 1 << 32, 999999999, 1000000000, 9999999998, 9999999999} {
		check(n)
	}
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 10000; i++ {
		check(r.Uint64N(10000000000))
	}
}

func TestUint64(t *testing.T) {
	for _, n := range []uint64{0, 1, 31, 32, 1<<64 - 1} {
		s := EncodeUint64(n)
		got, err := DecodeUint64(s)
		if err != nil {
			t.Fatalf("DecodeUint64(%q): %v", s, err)
		}
		if got != n {
			t.Errorf("DecodeUint64(EncodeUint64(%d)) = %d", n, got)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3g-9k", "3G9K"},
		{"o1il", "0111"},
		{"00Z", "00Z"},
		{"hello-world", "HE110W0R1D"},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := Normalize("3G9K!"); !errors.Is(err, ErrInvalidCharacter) {
		t.Errorf("Normalize(invalid): got %v, want ErrInvalidCharacter", err)
	}
	if _, err := Normalize("--"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Normalize(--): got %v, want ErrInvalidInput", err)
	}
}

func TestValid(t *testing.T) {
	if !Valid("3G-9K") {
		t.Error("Valid(3G-9K) = false, want true")
	}
	for _, s := range []string{"", "3G9K!", "U", "G000000000000"} {
		if Valid(s) {
			t.Errorf("Valid(%q) = true, want false", s)
		}
	}
}

func TestGroup(t *testing.T) {
	tests := []struct {
		in   string
		size int
		want string
	}{
		{"3G9KAB", 3, "3G9-KAB"},
		{"9A0QRZZ", 3, "9-A0Q-RZZ"},
		{"9A0QRZZ", 4, "9A0-QRZZ"},
		{"3G9K", 4, "3G9K"},
		{"3G9K", 0, "3G9K"},
		{"3G9K", 1, "3-G-9-K"},
	}
	for _, tt := range tests {
		got := Group(tt.in, tt.size)
		if got != tt.want {
			t.Errorf("Group(%q, %d) = %q, want %q", tt.in, tt.size, got, tt.want)
		}
		dec, err := Decode(got)
		if err != nil {
			t.Fatalf("Decode(%q): %v", got, err)
		}
		want, _ := Decode(tt.in)
		if dec != want {
			t.Errorf("Decode(%q) = %q, want %q", got, dec, want)
		}
	}
}

func TestConcurrentUse(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			r := rand.New(rand.NewPCG(seed, seed))
			for i := 0; i < 1000; i++ {
				s := strconv.FormatUint(r.Uint64N(10000000000), 10)
				enc, err := Encode(s)
				if err != nil {
					t.Error(err)
					return
				}
				if dec, err := Decode(enc); err != nil || dec != s {
					t.Errorf("roundtrip %q: got %q, %v", s, dec, err)
					return
				}
			}
		}(uint64(g))
	}
	wg.Wait()
}

func BenchmarkEncode(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Encode("9999999999")
	}
}

func BenchmarkDecode(b *testing.B) {
	b.Run("Canonical", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Decode("9A0QRZZ")
		}
	})
	b.Run("Grouped", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			Decode("9-a0q-rzz")
		}
	})
}
