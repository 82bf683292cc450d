package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
)

func printMetrics(cmd *cobra.Command, reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		cmd.PrintErrf("gathering metrics: %s\n", err)
		return
	}

	out := cmd.ErrOrStderr()
	fmt.Fprintln(out, "metrics:")

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(out, "  %s%s %s\n", mf.GetName(), labels(m), value(mf.GetType(), m))
		}
	}
}

func labels(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}

	s := "{"
	for i, l := range m.GetLabel() {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%s=%q", l.GetName(), l.GetValue())
	}
	return s + "}"
}

func value(typ dto.MetricType, m *dto.Metric) string {
	switch typ {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%g", m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%g", m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%g", h.GetSampleCount(), h.GetSampleSum())
	default:
		return "?"
	}
}
