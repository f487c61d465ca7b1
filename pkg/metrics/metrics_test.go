package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatal(err)
	}
	if err := Register(reg); err != nil {
		t.Fatalf("second registration: %v", err)
	}

	Evaluations.WithLabelValues("nsga2", "ZDT1").Add(3)
	if got := testutil.ToFloat64(Evaluations.WithLabelValues("nsga2", "ZDT1")); got < 3 {
		t.Errorf("evaluations = %v, want at least 3", got)
	}
	if n := testutil.CollectAndCount(Evaluations); n == 0 {
		t.Error("no evaluation series collected")
	}
}
