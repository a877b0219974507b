package worldmap

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg">
<path id="NO" d="M0 0"/>
<path id="jp" d="M1 1"/>
<path name="Chile" d="M2 2"/>
<path class="Kenya" d="M3 3"/>
<path id="FR" class="land" d="M4 4"/>
</svg>`

func TestPaintTiers(t *testing.T) {
	t.Parallel()

	p := newPainter(testLogger(), testSVG)
	out := p.Paint(map[string]int{
		"NO": 6, // highest tier
		"JP": 3, // mid tier, matched case-insensitively against id="jp"
		"CL": 1, // low tier via name attribute
	})

	if !strings.Contains(out, `id="NO" d="M0 0" class="visited visited-high"`) {
		t.Errorf("NO should get the highest tier:\n%s", out)
	}
	if !strings.Contains(out, `id="jp" d="M1 1" class="visited visited-mid"`) {
		t.Errorf("jp should match case-insensitively with the mid tier:\n%s", out)
	}
	if !strings.Contains(out, `name="Chile" d="M2 2" class="visited visited-low"`) {
		t.Errorf("Chile should match by name attribute:\n%s", out)
	}
	if !strings.Contains(out, "<style>") {
		t.Error("tier stylesheet should be injected")
	}
}

func TestPaintMergesExistingClass(t *testing.T) {
	t.Parallel()

	p := newPainter(testLogger(), testSVG)
	out := p.Paint(map[string]int{"FR": 5})

	if !strings.Contains(out, `class="land visited visited-high"`) {
		t.Errorf("existing class value should be preserved and merged:\n%s", out)
	}
}

func TestPaintClassAttributeMatch(t *testing.T) {
	t.Parallel()

	p := newPainter(testLogger(), testSVG)
	out := p.Paint(map[string]int{"KE": 2})

	if !strings.Contains(out, `class="Kenya visited visited-low"`) {
		t.Errorf("class-equal match should merge tier classes:\n%s", out)
	}
}

func TestPaintSkipsUnknownAndZero(t *testing.T) {
	t.Parallel()

	p := newPainter(testLogger(), testSVG)
	out := p.Paint(map[string]int{
		"Atlantis": 9, // no ISO mapping
		"DE":       9, // no matching element
	})

	if strings.Contains(out, `class="visited`) {
		t.Errorf("nothing should be highlighted:\n%s", out)
	}
}

func TestPaintIsIdempotent(t *testing.T) {
	t.Parallel()

	p := newPainter(testLogger(), testSVG)
	once := p.Paint(map[string]int{"NO": 6})

	p2 := newPainter(testLogger(), once)
	twice := p2.Paint(map[string]int{"NO": 6})

	if strings.Count(twice, "visited-high") != strings.Count(once, "visited-high") {
		t.Errorf("repeated painting must not duplicate classes:\n%s", twice)
	}
	if strings.Count(twice, "<style>") != 1 {
		t.Error("stylesheet should be injected exactly once")
	}
}

func TestPaintNoMatchableAttributes(t *testing.T) {
	t.Parallel()

	const bare = `<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0"/></svg>`
	p := newPainter(testLogger(), bare)

	if out := p.Paint(map[string]int{"NO": 6}); out != bare {
		t.Errorf("map without matchable attributes should be returned unmodified:\n%s", out)
	}
}

func TestEmbeddedBaseMapIsMatchable(t *testing.T) {
	t.Parallel()

	p := NewPainter(testLogger())
	if !p.matchable {
		t.Fatal("embedded base map should expose matchable attributes")
	}
	out := p.Paint(map[string]int{"NO": 6})
	if !strings.Contains(out, "visited-high") {
		t.Error("embedded base map should highlight Norway")
	}
}
