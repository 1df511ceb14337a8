package zplot

import (
	"testing"

	"github.com/gogpu/zplot/expr"
)

// TestDefaultOptions tests that an engine without options falls back to
// the package logger.
func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.logger != nil || o.parser != nil || o.ctx != nil {
		t.Errorf("defaultOptions() = %+v, want zero collaborators", o)
	}

	eng := NewEngine()
	if eng.log() != Logger() {
		t.Error("engine without WithLogger does not use the package logger")
	}
}

// TestOptionsApplyInOrder tests that later options override earlier ones.
func TestOptionsApplyInOrder(t *testing.T) {
	eng := NewEngine(
		WithFormula("x"),
		WithFormula("y"),
		WithStep(2),
		WithStep(4),
	)
	if got := eng.Expression().String(); got != "y" {
		t.Errorf("Expression() = %s, want y", got)
	}
	if got := eng.Space().Step; got != 4 {
		t.Errorf("Space().Step = %v, want 4", got)
	}
}

// TestWithParseCache tests that the cache is consulted on construction.
func TestWithParseCache(t *testing.T) {
	pc := expr.NewCache(8)
	NewEngine(WithParseCache(pc), WithFormula("x * y"))
	if st := pc.Stats(); st.Misses != 1 || st.Len != 1 {
		t.Errorf("cache stats = %+v, want one miss and one entry", st)
	}
}
