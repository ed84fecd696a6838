package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveToolCall(t *testing.T) {
	m, _ := New()

	m.ObserveToolCall("add_expense", nil, 5*time.Millisecond)
	m.ObserveToolCall("add_expense", nil, 3*time.Millisecond)
	m.ObserveToolCall("add_expense", errors.New("boom"), time.Millisecond)

	if got := testutil.ToFloat64(m.toolCalls.WithLabelValues("add_expense", "ok")); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.toolCalls.WithLabelValues("add_expense", "error")); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	m, registry := New()
	m.ObserveToolCall("get_balances", nil, time.Millisecond)

	count, err := testutil.GatherAndCount(registry, "gatherings_tool_calls_total")
	if err != nil {
		t.Fatalf("gather failed: %v", err)
	}
	if count != 1 {
		t.Errorf("series count = %d, want 1", count)
	}
}
