package availability

import (
	"testing"
	"time"
)

func mustInterval(t *testing.T, start, end time.Time) Interval {
	t.Helper()
	iv, err := NewInterval(start, end)
	if err != nil {
		t.Fatalf("NewInterval(%v, %v): %v", start, end, err)
	}
	return iv
}

func at(h, m int) time.Time {
	return time.Date(2026, 3, 10, h, m, 0, 0, time.UTC)
}

func TestNewInterval(t *testing.T) {
	if _, err := NewInterval(at(10, 0), at(11, 0)); err != nil {
		t.Fatalf("intervalo válido rejeitado: %v", err)
	}

	if _, err := NewInterval(at(11, 0), at(10, 0)); err == nil {
		t.Fatal("start > end deveria falhar")
	}

	// meio-aberto: start == end é vazio, logo inválido
	if _, err := NewInterval(at(10, 0), at(10, 0)); err == nil {
		t.Fatal("start == end deveria falhar")
	}
}

func TestIntervalOverlaps(t *testing.T) {
	base := mustInterval(t, at(10, 0), at(12, 0))

	cases := []struct {
		name  string
		other Interval
		want  bool
	}{
		{"sobreposição parcial", Interval{at(11, 0), at(13, 0)}, true},
		{"contido", Interval{at(10, 30), at(11, 30)}, true},
		{"identico", Interval{at(10, 0), at(12, 0)}, true},
		{"encostado à direita", Interval{at(12, 0), at(13, 0)}, false},
		{"encostado à esquerda", Interval{at(9, 0), at(10, 0)}, false},
		{"disjunto", Interval{at(14, 0), at(15, 0)}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.want {
				t.Fatalf("Overlaps(%v) = %v, esperado %v", tc.other, got, tc.want)
			}
			// simetria
			if got := tc.other.Overlaps(base); got != tc.want {
				t.Fatalf("Overlaps simétrico = %v, esperado %v", got, tc.want)
			}
		})
	}
}

func TestIntervalContains(t *testing.T) {
	iv := mustInterval(t, at(10, 0), at(12, 0))

	if !iv.Contains(at(10, 0)) {
		t.Fatal("início deveria pertencer ao intervalo")
	}
	if iv.Contains(at(12, 0)) {
		t.Fatal("fim não pertence ao intervalo meio-aberto")
	}
	if !iv.Contains(at(11, 59)) {
		t.Fatal("instante interno deveria pertencer")
	}
}

func TestIntervalContainsInterval(t *testing.T) {
	outer := mustInterval(t, at(9, 0), at(17, 0))

	if !outer.ContainsInterval(Interval{at(9, 0), at(17, 0)}) {
		t.Fatal("intervalo idêntico deveria estar contido")
	}
	if !outer.ContainsInterval(Interval{at(10, 0), at(11, 0)}) {
		t.Fatal("intervalo interno deveria estar contido")
	}
	if outer.ContainsInterval(Interval{at(16, 30), at(17, 30)}) {
		t.Fatal("intervalo vazando pela direita não está contido")
	}
}

func TestIntervalSubtract(t *testing.T) {
	base := Interval{at(9, 0), at(17, 0)}

	cases := []struct {
		name  string
		other Interval
		want  []Interval
	}{
		{
			"sem sobreposição devolve original",
			Interval{at(18, 0), at(19, 0)},
			[]Interval{base},
		},
		{
			"buraco no meio gera dois pedaços",
			Interval{at(12, 0), at(13, 0)},
			[]Interval{{at(9, 0), at(12, 0)}, {at(13, 0), at(17, 0)}},
		},
		{
			"corta o começo",
			Interval{at(8, 0), at(10, 0)},
			[]Interval{{at(10, 0), at(17, 0)}},
		},
		{
			"corta o fim",
			Interval{at(16, 0), at(18, 0)},
			[]Interval{{at(9, 0), at(16, 0)}},
		},
		{
			"engole tudo",
			Interval{at(8, 0), at(18, 0)},
			nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := base.Subtract(tc.other)
			if len(got) != len(tc.want) {
				t.Fatalf("Subtract devolveu %d pedaços, esperado %d: %v", len(got), len(tc.want), got)
			}
			for i := range got {
				if !got[i].Start.Equal(tc.want[i].Start) || !got[i].End.Equal(tc.want[i].End) {
					t.Fatalf("pedaço %d = %v, esperado %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestIntervalClip(t *testing.T) {
	bounds := Interval{at(9, 0), at(17, 0)}

	got, ok := Interval{at(8, 0), at(10, 0)}.Clip(bounds)
	if !ok || !got.Start.Equal(at(9, 0)) || !got.End.Equal(at(10, 0)) {
		t.Fatalf("clip pela esquerda = %v (ok=%v)", got, ok)
	}

	if _, ok := (Interval{at(18, 0), at(19, 0)}).Clip(bounds); ok {
		t.Fatal("intervalo fora dos limites não deveria sobrar")
	}

	got, ok = Interval{at(10, 0), at(11, 0)}.Clip(bounds)
	if !ok || !got.Start.Equal(at(10, 0)) || !got.End.Equal(at(11, 0)) {
		t.Fatalf("intervalo interno deveria sair intacto: %v (ok=%v)", got, ok)
	}
}
