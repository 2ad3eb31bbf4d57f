package ir

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

func TestWithLoggerPluggedIntoContext(t *testing.T) {
	logger := zap.NewExample()
	root := NewIR(WithLogger(logger))
	if root.Context().logger != logger {
		t.Fatal("WithLogger did not install the given logger")
	}
}

func TestWithMetricsInstrumentsInsertAndRemove(t *testing.T) {
	reg := prometheus.NewRegistry()
	root := NewIR(WithMetrics(reg))

	if _, ok := root.Context().metrics.(*promMetrics); !ok {
		t.Fatalf("metrics sink is %T, want *promMetrics", root.Context().metrics)
	}

	m, _ := root.AddModule("m")
	root.RemoveModule(m)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("no metric families registered")
	}
}

func TestDefaultContextUsesNoopMetricsAndLogger(t *testing.T) {
	root := NewIR()
	if _, ok := root.Context().metrics.(noopMetrics); !ok {
		t.Fatalf("default metrics sink is %T, want noopMetrics", root.Context().metrics)
	}
	if root.Context().logger == nil {
		t.Fatal("default logger is nil, want a no-op zap.Logger")
	}
}
