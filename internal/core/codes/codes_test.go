package codes_test

import (
	"sync"
	"testing"

	"github.com/frahmantamala/hopecare/internal/core/codes"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCodes(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Codes Suite")
}

var _ = Describe("New", func() {
	It("prefixes the generated code", func() {
		code := codes.New(codes.PrefixDonor)
		Expect(codes.HasPrefix(code, codes.PrefixDonor)).To(BeTrue())
		Expect(code).To(HaveLen(len("DNR-") + 26))
	})

	It("generates increasing codes", func() {
		first := codes.New(codes.PrefixDelivery)
		second := codes.New(codes.PrefixDelivery)
		Expect(second > first).To(BeTrue())
	})

	It("never repeats under concurrent use", func() {
		const n = 200
		var (
			mu   sync.Mutex
			seen = make(map[string]struct{}, n)
			wg   sync.WaitGroup
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				code := codes.New(codes.PrefixDonation)
				mu.Lock()
				seen[code] = struct{}{}
				mu.Unlock()
			}()
		}
		wg.Wait()
		Expect(seen).To(HaveLen(n))
	})
})
