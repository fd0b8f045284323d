package config_test

import (
	"bytes"
	"strings"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/domiot-io/another-mutex/pkg/config"
	"github.com/domiot-io/another-mutex/pkg/core"
)

var _ = Describe("Params", func() {
	Describe("json configuration", func() {
		Describe("Store and Load Params", func() {
			It("should return same Params", func() {
				params := NewDefaultParams()
				params.Workers = 10000
				paramsCopy := params

				var buf bytes.Buffer
				err := NewJSONConfigWriter().StoreParams(&buf, &params)
				Expect(err).NotTo(HaveOccurred())

				var loaded Params
				err = NewJSONConfigLoader().LoadParams(&buf, &loaded)
				Expect(err).NotTo(HaveOccurred())
				Expect(loaded).To(Equal(paramsCopy))
			})
		})

		Describe("parsing incomplete JSON configuration", func() {
			It("should return a config error", func() {
				var params Params
				err := NewJSONConfigLoader().LoadParams(strings.NewReader(`{"Workers": 1000}`), &params)
				Expect(err).To(HaveOccurred())
				Expect(err).To(BeAssignableToTypeOf(&core.ConfigError{}))
			})
		})

		Describe("configuration with non-existent field", func() {
			It("should return an error", func() {
				var params Params
				err := NewJSONConfigLoader().LoadParams(strings.NewReader(`{"BlaBla": 1000}`), &params)
				Expect(err).To(HaveOccurred())
			})
		})

		Describe("broken configuration", func() {
			It("should return an error", func() {
				var params Params
				err := NewJSONConfigLoader().LoadParams(strings.NewReader("adasdjiojoi  a{ aaa/"), &params)
				Expect(err).To(HaveOccurred())
			})
		})

		Describe("nil target", func() {
			It("should return a config error", func() {
				err := NewJSONConfigLoader().LoadParams(strings.NewReader("{}"), nil)
				Expect(err).To(BeAssignableToTypeOf(&core.ConfigError{}))
			})
		})
	})

	Describe("validation", func() {
		var params Params

		BeforeEach(func() {
			params = NewDefaultParams()
		})

		It("should accept the defaults", func() {
			Expect(Valid(params)).To(Succeed())
		})

		It("should reject zero tasks", func() {
			params.Tasks = 0
			Expect(Valid(params)).NotTo(Succeed())
		})

		It("should reject zero workers", func() {
			params.Workers = 0
			Expect(Valid(params)).NotTo(Succeed())
		})

		It("should reject negative durations", func() {
			params.HoldTime = -1
			err := Valid(params)
			Expect(err).To(MatchError(ContainSubstring("HoldTime")))
		})

		It("should reject an unknown log level", func() {
			params.LogLevel = 7
			Expect(Valid(params)).NotTo(Succeed())
		})
	})

	Describe("durations", func() {
		It("should convert milliseconds and seconds", func() {
			params := NewDefaultParams()
			params.HoldTime = 2.5
			params.Duration = 1.5
			params.WaitTimeout = 20
			Expect(params.Hold()).To(Equal(2500 * time.Microsecond))
			Expect(params.RunFor()).To(Equal(1500 * time.Millisecond))
			Expect(params.Timeout()).To(Equal(20 * time.Millisecond))
		})
	})
})
