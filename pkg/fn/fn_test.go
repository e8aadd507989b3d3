package fn

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
)

func TestResult(t *testing.T) {
	r := Ok(42)
	if !r.IsOk() || r.IsErr() {
		t.Fatal("Ok result misreported state")
	}
	v, err := r.Unwrap()
	if v != 42 || err != nil {
		t.Fatalf("Unwrap = (%d, %v)", v, err)
	}

	e := Err[int](errors.New("boom"))
	if e.IsOk() {
		t.Fatal("Err result reported ok")
	}
	if e.UnwrapOr(7) != 7 {
		t.Fatal("UnwrapOr should return fallback")
	}

	if got, _ := FromPair(3, nil).Unwrap(); got != 3 {
		t.Fatal("FromPair with nil error should be ok")
	}
	if FromPair(3, errors.New("x")).IsOk() {
		t.Fatal("FromPair with error should be err")
	}
}

func TestCollect(t *testing.T) {
	all := Collect([]Result[int]{Ok(1), Ok(2)})
	vs, err := all.Unwrap()
	if err != nil || len(vs) != 2 {
		t.Fatalf("Collect ok case = (%v, %v)", vs, err)
	}
	bad := Collect([]Result[int]{Ok(1), Err[int](errors.New("no"))})
	if bad.IsOk() {
		t.Fatal("Collect should surface the first error")
	}
}

func TestUniqueBy_KeepsFirstCasing(t *testing.T) {
	got := UniqueBy([]string{"Tech", "tech", "TECH", "news"}, strings.ToLower)
	if len(got) != 2 || got[0] != "Tech" || got[1] != "news" {
		t.Fatalf("UniqueBy = %v", got)
	}
}

func TestCap(t *testing.T) {
	if got := Cap([]int{1, 2, 3}, 2); len(got) != 2 {
		t.Fatalf("Cap = %v", got)
	}
	if got := Cap([]int{1}, 5); len(got) != 1 {
		t.Fatalf("Cap should not pad: %v", got)
	}
}

func TestParMapResult_PreservesOrder(t *testing.T) {
	items := []int{5, 4, 3, 2, 1, 0}
	out := ParMapResult(items, 3, func(v int) Result[int] {
		return Ok(v * 10)
	})
	for i, r := range out {
		got, _ := r.Unwrap()
		if got != items[i]*10 {
			t.Fatalf("out[%d] = %d, want %d", i, got, items[i]*10)
		}
	}
}

func TestParMapResult_BoundsWorkers(t *testing.T) {
	var active, peak atomic.Int32
	items := make([]int, 32)
	ParMapResult(items, 4, func(int) Result[int] {
		cur := active.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		active.Add(-1)
		return Ok(0)
	})
	if peak.Load() > 4 {
		t.Fatalf("observed %d concurrent workers, cap 4", peak.Load())
	}
}

func TestParMapResult_IsolatesErrors(t *testing.T) {
	out := ParMapResult([]int{1, 2, 3}, 2, func(v int) Result[int] {
		if v == 2 {
			return Errf[int]("bad %d", v)
		}
		return Ok(v)
	})
	if out[0].IsErr() || out[2].IsErr() {
		t.Fatal("sibling items must not fail")
	}
	if out[1].IsOk() {
		t.Fatal("failing item must keep its error slot")
	}
}

func TestThen_ShortCircuits(t *testing.T) {
	first := func(_ context.Context, s string) Result[string] {
		return Err[string](errors.New("first failed"))
	}
	called := false
	second := func(_ context.Context, s string) Result[int] {
		called = true
		return Ok(len(s))
	}
	r := Then(first, second)(context.Background(), "in")
	if r.IsOk() || called {
		t.Fatal("second stage ran after first errored")
	}
}

func TestMapStageAndTraced(t *testing.T) {
	st := TracedStage("double", MapStage(func(v int) int { return v * 2 }))
	got, err := st(context.Background(), 21).Unwrap()
	if err != nil || got != 42 {
		t.Fatalf("stage = (%d, %v)", got, err)
	}
}
