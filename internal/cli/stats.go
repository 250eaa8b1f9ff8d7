package cli

import (
	"context"
	"sort"
	"strconv"
	"strings"
)

// Stats prints the collection sizes and the current metric values.
func (a *App) Stats(ctx context.Context) error {
	st := a.store.Stats()
	a.printf("users: %d, documents: %d, interactions: %d\n", st.Users, st.Documents, st.Interactions)

	if a.metrics == nil {
		return nil
	}

	families, err := a.metrics.Registry.Gather()
	if err != nil {
		a.println("Could not gather metrics:", err)
		return err
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				lines = append(lines, name+" "+formatFloat(m.GetCounter().GetValue()))
			case m.GetGauge() != nil:
				lines = append(lines, name+" "+formatFloat(m.GetGauge().GetValue()))
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				lines = append(lines, name+" count="+formatUint(h.GetSampleCount())+" sum="+formatFloat(h.GetSampleSum()))
			}
		}
	}

	sort.Strings(lines)
	for _, l := range lines {
		a.println(l)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
