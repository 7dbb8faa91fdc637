package render

import (
	"testing"
)

func TestGraphLinearization(t *testing.T) {
	g := NewGraph()
	base := g.Source("color=c=black:s=640x360:d=2.000:r=30", "base")
	scaled := g.Chain(InputVideo(0), "scale=320:180", "layer")

	out := g.NewLabel("ov")
	g.Node([]Label{base, scaled}, "overlay=0:0", []Label{out})

	want := "color=c=black:s=640x360:d=2.000:r=30[base1];[0:v]scale=320:180[layer2];[base1][layer2]overlay=0:0[ov3]"
	if got := g.String(); got != want {
		t.Errorf("graph linearized wrong:\n got %s\nwant %s", got, want)
	}
	if got := g.Map(out); got != "[ov3]" {
		t.Errorf("expected map [ov3], got %s", got)
	}
}

func TestGraphLabelsAreUnique(t *testing.T) {
	g := NewGraph()
	a := g.NewLabel("x")
	b := g.NewLabel("x")
	if a == b {
		t.Errorf("labels must be unique, got %s twice", a)
	}
}

func TestGraphEmpty(t *testing.T) {
	g := NewGraph()
	if !g.Empty() {
		t.Error("new graph should be empty")
	}
	g.Source("anullsrc", "a")
	if g.Empty() {
		t.Error("graph with a node is not empty")
	}
}

func TestInputLabels(t *testing.T) {
	if InputVideo(0) != "0:v" {
		t.Errorf("expected 0:v, got %s", InputVideo(0))
	}
	if InputAudio(3) != "3:a" {
		t.Errorf("expected 3:a, got %s", InputAudio(3))
	}
}

func TestSeconds(t *testing.T) {
	cases := []struct {
		ms   int
		want string
	}{
		{0, "0.000"},
		{500, "0.500"},
		{2000, "2.000"},
		{12345, "12.345"},
	}
	for _, c := range cases {
		if got := seconds(c.ms); got != c.want {
			t.Errorf("seconds(%d): expected %s, got %s", c.ms, c.want, got)
		}
	}
}

func TestFFColor(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"#FFFFFF", "0xffffff"},
		{"#00000080", "0x00000080"},
		{"black", "black"},
		{"white", "white"},
	}
	for _, c := range cases {
		if got := ffColor(c.in); got != c.want {
			t.Errorf("ffColor(%s): expected %s, got %s", c.in, c.want, got)
		}
	}
}

func TestEscapeText(t *testing.T) {
	got := escapeText(`it's 100%: a\test`)
	want := `it\'s 100\%\: a\\test`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
