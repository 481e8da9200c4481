package events_test

import (
	"context"
	goerrors "errors"
	"sync/atomic"
	"testing"

	"github.com/frahmantamala/hopecare/internal/core/events"
	"github.com/frahmantamala/hopecare/pkg/logger"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

var _ = Describe("EventBus", func() {
	var bus *events.EventBus

	BeforeEach(func() {
		bus = events.NewEventBus(logger.Nop())
	})

	It("delivers events to every subscriber of the type", func() {
		var calls int32
		count := func(ctx context.Context, e events.Event) error {
			atomic.AddInt32(&calls, 1)
			return nil
		}
		bus.Subscribe(events.EventTypeDeliveryCompleted, count)
		bus.Subscribe(events.EventTypeDeliveryCompleted, count)
		bus.Subscribe(events.EventTypeDonationRecorded, count)

		evt := events.NewDeliveryCompletedEvent(1, "DLV-1", 2, 3, "Rice 1kg", 20, decimal.NewFromInt(80), 9)
		Expect(bus.Publish(context.Background(), evt)).To(Succeed())
		bus.Wait()

		Expect(atomic.LoadInt32(&calls)).To(Equal(int32(2)))
	})

	It("keeps running handlers after the publishing context is cancelled", func() {
		done := make(chan error, 1)
		bus.Subscribe(events.EventTypeDonationRecorded, func(ctx context.Context, e events.Event) error {
			done <- ctx.Err()
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		evt := events.NewDonationRecordedEvent(1, "DON-1", "PRODUCT", 3, "Rice 1kg", 50, decimal.NewFromInt(200), 9)
		Expect(bus.Publish(ctx, evt)).To(Succeed())

		Eventually(done).Should(Receive(BeNil()))
	})

	It("surfaces handler errors when publishing synchronously", func() {
		bus.Subscribe(events.EventTypeDonationRecorded, func(ctx context.Context, e events.Event) error {
			return goerrors.New("downstream unavailable")
		})
		evt := events.NewDonationRecordedEvent(1, "DON-1", "MONEY", 3, "", 0, decimal.NewFromInt(100), 9)
		Expect(bus.PublishSync(context.Background(), evt)).To(MatchError(ContainSubstring("downstream unavailable")))
	})
})
