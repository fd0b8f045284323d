package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/rcrowley/go-metrics"
	"github.com/rs/zerolog"

	. "github.com/domiot-io/another-mutex/pkg/logging"
)

var _ = Describe("StatsService", func() {

	It("should log the registry when stopped", func() {
		var buf bytes.Buffer
		r := metrics.NewRegistry()
		metrics.NewRegisteredCounter("acquired", r).Inc(7)
		r.Register("waiting", metrics.NewFunctionalGauge(func() int64 { return 3 }))

		s := NewStatsService(0, r, zerolog.New(&buf))
		Expect(s.Start()).To(Succeed())
		s.Stop()

		var entries []map[string]interface{}
		for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
			var e map[string]interface{}
			Expect(json.Unmarshal([]byte(line), &e)).To(Succeed())
			entries = append(entries, e)
		}
		Expect(entries).To(HaveLen(3))
		Expect(entries[0]["message"]).To(Equal(ServiceStarted))
		Expect(entries[1]["message"]).To(Equal(Stats))
		Expect(entries[1]["acquired"]).To(BeEquivalentTo(7))
		Expect(entries[1]["waiting"]).To(BeEquivalentTo(3))
		Expect(entries[1][Service]).To(BeEquivalentTo(StatsService))
		Expect(entries[2]["message"]).To(Equal(ServiceStopped))
	})
})
