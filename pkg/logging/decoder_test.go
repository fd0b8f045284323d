package logging_test

import (
	"bytes"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/domiot-io/another-mutex/pkg/logging"
)

var _ = Describe("Decoder", func() {

	var (
		out     bytes.Buffer
		decoder interface {
			Write([]byte) (int, error)
		}
	)

	BeforeEach(func() {
		out.Reset()
		decoder = NewDecoder(&out)
	})

	It("should translate short names into human readable ones", func() {
		line := []byte(`{"T":12,"L":"0","S":0,"K":3,"W":2,"E":"H"}`)
		n, err := decoder.Write(line)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(len(line)))
		Expect(out.String()).To(Equal("    12|debug|service:  MUTEX|   token = 3     | waiting = 2     |  lock handed off to the next waiter\n"))
	})

	It("should keep unknown fields and events", func() {
		_, err := decoder.Write([]byte(`{"zzz":1,"E":"custom"}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(Equal("     zzz = 1     |  custom\n"))
	})

	It("should announce the genesis", func() {
		_, err := decoder.Write([]byte(`{"E":"genesis","genesis":"noon"}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(Equal("Beginning of time at noon\n"))
	})

	It("should reject broken input", func() {
		_, err := decoder.Write([]byte(`{"E":`))
		Expect(err).To(HaveOccurred())
	})
})
