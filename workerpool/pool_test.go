/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package workerpool_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/nabbar/fts-toolkit/workerpool"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestWorkerPool(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Worker Pool Suite")
}

var _ = Describe("Pool", func() {
	It("panics on a zero size", func() {
		Expect(func() { workerpool.New(0, nil) }).To(Panic())
	})

	It("runs every enqueued job exactly once", func() {
		pool := workerpool.New(4, nil)

		const total = 200
		var count atomic.Int64
		for i := 0; i < total; i++ {
			pool.Execute(func() { count.Add(1) })
		}
		pool.Close()

		Expect(count.Load()).To(Equal(int64(total)))
	})

	It("isolates a panicking job from the rest of the queue", func() {
		pool := workerpool.New(2, nil)

		var ran atomic.Bool
		pool.Execute(func() { panic("boom") })
		pool.Execute(func() { ran.Store(true) })

		pool.Close()

		Expect(ran.Load()).To(BeTrue())
	})

	It("joins every worker on Close", func() {
		pool := workerpool.New(3, nil)
		done := make(chan struct{})

		go func() {
			pool.Close()
			close(done)
		}()

		Eventually(done, 2*time.Second).Should(BeClosed())
	})
})
