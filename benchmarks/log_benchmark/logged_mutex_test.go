package logbench_test

import (
	"io"
	"os"
	"sync"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"

	amx "github.com/domiot-io/another-mutex/pkg/sync"
)

var _ = Describe("Logged mutex performance", func() {

	var (
		writer io.Writer
		file   *os.File
		err    error
		m      *amx.Mutex
	)

	// contend runs n goroutines, each taking the lock rounds times.
	contend := func(n, rounds int) {
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < rounds; j++ {
					m.Acquire().Wait().Release()
				}
			}()
		}
		wg.Wait()
	}

	BeforeEach(func() {
		file, err = os.Create(logfile)
		Expect(err).NotTo(HaveOccurred())
		writer = file
	})

	AfterEach(func() {
		file.Close()
	})

	JustBeforeEach(func() {
		m = amx.NewMutexWithLog(zerolog.New(writer).Level(zerolog.DebugLevel))
	})

	Describe("Without diode", func() {
		Measure("Serial 50k", func(b Benchmarker) {
			b.Time("runtime", func() {
				contend(1, 50000)
			})
		}, 10)

		Measure("Parallel (100) 50k", func(b Benchmarker) {
			b.Time("runtime", func() {
				contend(100, 500)
			})
		}, 10)
	})

	Describe("With diode", func() {
		var dw diode.Writer

		BeforeEach(func() {
			dw = diode.NewWriter(writer, 1000000, 0, func(missed int) {})
			writer = dw
		})

		AfterEach(func() {
			dw.Close()
		})

		Measure("Serial 50k", func(b Benchmarker) {
			b.Time("runtime", func() {
				contend(1, 50000)
			})
		}, 10)

		Measure("Parallel (100) 50k", func(b Benchmarker) {
			b.Time("runtime", func() {
				contend(100, 500)
			})
		}, 10)
	})

	Describe("Without logging", func() {
		JustBeforeEach(func() {
			m = amx.NewMutex()
		})

		Measure("Parallel (100) 50k", func(b Benchmarker) {
			b.Time("runtime", func() {
				contend(100, 500)
			})
		}, 10)
	})
})
