package sync

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("waitQueue", func() {

	var q waitQueue

	BeforeEach(func() {
		q = waitQueue{}
	})

	It("should be empty initially", func() {
		Expect(q.len()).To(BeZero())
		Expect(q.pop()).To(BeNil())
	})

	It("should pop in push order across compactions", func() {
		m := NewMutex()
		const n = 5 * compactAfter
		grants := make([]*Grant, n)
		for i := range grants {
			grants[i] = newGrant(m)
		}
		for i := 0; i < n/2; i++ {
			q.push(grants[i])
		}
		next := 0
		for i := 0; i < n/4; i++ {
			Expect(q.pop()).To(BeIdenticalTo(grants[next]))
			next++
		}
		for i := n / 2; i < n; i++ {
			q.push(grants[i])
		}
		Expect(q.len()).To(Equal(n - next))
		for ; next < n; next++ {
			Expect(q.pop()).To(BeIdenticalTo(grants[next]))
		}
		Expect(q.len()).To(BeZero())
		Expect(q.pop()).To(BeNil())
	})

	It("should drop references to popped grants", func() {
		g := newGrant(NewMutex())
		q.push(g)
		q.push(newGrant(NewMutex()))
		Expect(q.pop()).To(BeIdenticalTo(g))
		Expect(q.items[0]).To(BeNil())
	})
})
