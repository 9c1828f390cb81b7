package notify_test

import (
	"testing"

	"studypro/internal/platform/notify"
)

func TestBusFansOutInOrderAndUnsubscribes(t *testing.T) {
	t.Parallel()
	bus := notify.NewBus()
	var got []string
	unsubA := bus.Subscribe(func(topic notify.Topic) { got = append(got, "a:"+string(topic)) })
	bus.Subscribe(func(topic notify.Topic) { got = append(got, "b:"+string(topic)) })

	bus.Publish(notify.TopicLedger)
	unsubA()
	unsubA()
	bus.Publish(notify.TopicStats)

	want := []string{"a:ledger", "b:ledger", "b:stats"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
