package core_test

import (
	"errors"
	"sync/atomic"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	. "github.com/domiot-io/another-mutex/pkg/core"
)

var _ = Describe("ErrGroup", func() {

	It("should run every task and succeed when none fails", func() {
		var ran atomic.Int32
		tasks := make([]func() error, 5)
		for i := range tasks {
			tasks[i] = func() error {
				ran.Add(1)
				return nil
			}
		}
		Expect(NewErrGroup().Go(tasks)).To(Succeed())
		Expect(ran.Load()).To(Equal(int32(5)))
	})

	It("should join the errors of failed tasks", func() {
		first, second := errors.New("first"), errors.New("second")
		err := NewErrGroup().Go([]func() error{
			func() error { return first },
			func() error { return nil },
			func() error { return second },
		})
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, first)).To(BeTrue())
		Expect(errors.Is(err, second)).To(BeTrue())
		Expect(err.Error()).To(Equal("first\nsecond"))
	})
})

var _ = Describe("errors", func() {

	It("should describe themselves", func() {
		Expect(NewConfigError("bad").Error()).To(Equal("ConfigError: bad"))
		Expect(NewExclusionError(2, "overlap").Error()).To(Equal("ExclusionError: 2 holders at once: overlap"))
		Expect(NewOrderError(1, 1, 2).Error()).To(Equal("OrderError: at position 1 expected 1, got 2"))
	})
})
