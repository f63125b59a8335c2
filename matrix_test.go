package fixed

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func parseMatrix(t *testing.T, rows [][]string) [][]Decimal {
	t.Helper()
	m := make([][]Decimal, len(rows))
	for i, row := range rows {
		m[i] = make([]Decimal, len(row))
		for j, s := range row {
			m[i][j] = MustParse(s)
		}
	}
	return m
}

func TestDet(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tests := []struct {
			m    [][]string
			want string
		}{
			{[][]string{{"7"}}, "7"},
			{[][]string{{"1", "0"}, {"0", "1"}}, "1"},
			{[][]string{{"1", "2"}, {"3", "4"}}, "-2"},
			{[][]string{{"1", "2"}, {"1", "2"}}, "0"},
			{[][]string{{"2", "0", "0"}, {"0", "3", "0"}, {"0", "0", "4"}}, "24"},
			{[][]string{{"1", "2", "3"}, {"4", "5", "6"}, {"1", "2", "3"}}, "0"},
			{[][]string{{"0", "1", "2"}, {"1", "0", "3"}, {"4", "-3", "8"}}, "-2"},
			{[][]string{{"0.5", "1.5"}, {"2.5", "-0.5"}}, "-4"},
			{[][]string{
				{"1", "0", "2", "-1"},
				{"3", "0", "0", "5"},
				{"2", "1", "4", "-3"},
				{"1", "0", "5", "0"},
			}, "30"},
		}
		for _, tt := range tests {
			m := parseMatrix(t, tt.m)
			got, err := Det(m)
			if err != nil {
				t.Errorf("Det(%v) failed: %v", tt.m, err)
				continue
			}
			if got.String() != tt.want {
				t.Errorf("Det(%v) = %v, want %v", tt.m, got, tt.want)
			}
		}
	})

	t.Run("error", func(t *testing.T) {
		tests := map[string][][]Decimal{
			"empty":       {},
			"nil":         nil,
			"rectangular": {{New(1, 0), New(2, 0)}},
			"ragged":      {{New(1, 0), New(2, 0)}, {New(3, 0)}},
			"tall":        {{New(1, 0)}, {New(2, 0)}},
		}
		for name, m := range tests {
			_, err := Det(m)
			if !errors.Is(err, ErrNotSquare) {
				t.Errorf("%s: Det(%v) = %v, want %v", name, m, err, ErrNotSquare)
			}
		}
	})
}

func TestMustDet(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("MustDet(nil) did not panic")
		}
	}()
	MustDet(nil)
}

// TestDet_FloatOracle compares determinants with gonum's LU-based ones.
func TestDet_FloatOracle(t *testing.T) {
	rows := [][]string{
		{"1.5", "-2.25", "3", "0.125", "4"},
		{"0.5", "1", "-1.75", "2", "0"},
		{"-3", "0.25", "1", "1", "2.5"},
		{"2", "2", "-0.5", "-1", "1"},
		{"0.75", "-1", "0", "3.5", "-2"},
	}
	for n := 1; n <= len(rows); n++ {
		sub := make([][]string, n)
		data := make([]float64, 0, n*n)
		for i := 0; i < n; i++ {
			sub[i] = rows[i][:n]
			for _, s := range sub[i] {
				f, _ := MustParse(s).Float64()
				data = append(data, f)
			}
		}
		got, err := Det(parseMatrix(t, sub))
		if err != nil {
			t.Errorf("Det(%v) failed: %v", sub, err)
			continue
		}
		gotf, _ := got.Float64()
		want := mat.Det(mat.NewDense(n, n, data))
		if math.Abs(gotf-want) > 1e-9 {
			t.Errorf("Det(%v) = %v, want %v", sub, gotf, want)
		}
	}
}

func TestReplaceColumn(t *testing.T) {
	m := parseMatrix(t, [][]string{{"1", "2"}, {"3", "4"}})
	v := []Decimal{MustParse("5"), MustParse("6")}
	r := ReplaceColumn(m, 1, v)
	if r[0][1].String() != "5" || r[1][1].String() != "6" || r[0][0].String() != "1" {
		t.Errorf("ReplaceColumn(m, 1, v) = %v", r)
	}
	if m[0][1].String() != "2" || m[1][1].String() != "4" {
		t.Errorf("ReplaceColumn modified its input: %v", m)
	}

	t.Run("panic", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("ReplaceColumn with short column did not panic")
			}
		}()
		ReplaceColumn(m, 0, v[:1])
	})
}
