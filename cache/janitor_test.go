package cache_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/msaldanha/taskflow/cache"
)

type countingSweeper struct {
	calls int32
	er    error
}

func (s *countingSweeper) ClearExpired() (int, error) {
	atomic.AddInt32(&s.calls, 1)
	return 1, s.er
}

func (s *countingSweeper) Calls() int32 {
	return atomic.LoadInt32(&s.calls)
}

var _ = Describe("Janitor", func() {
	It("Should sweep until cancelled", func() {
		sw := &countingSweeper{}
		j := cache.NewJanitor(sw, 10*time.Millisecond, nil)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			j.Run(ctx)
			close(done)
		}()

		Eventually(sw.Calls).Should(BeNumerically(">=", 2))
		cancel()
		Eventually(done).Should(BeClosed())
	})

	It("Should keep sweeping after a failure", func() {
		sw := &countingSweeper{er: errors.New("boom")}
		j := cache.NewJanitor(sw, 10*time.Millisecond, nil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go j.Run(ctx)

		Eventually(sw.Calls).Should(BeNumerically(">=", 2))
	})

	It("Should return at once without an interval", func() {
		sw := &countingSweeper{}
		j := cache.NewJanitor(sw, 0, nil)

		j.Run(context.Background())
		Expect(sw.Calls()).To(Equal(int32(0)))
	})
})
