package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObservable(t *testing.T) {
	o := NewObservable(1)
	assert.Equal(t, 1, o.Get())

	var order []string
	unsubA := o.Subscribe(func(v int) { order = append(order, "a") })
	o.Subscribe(func(v int) { order = append(order, "b") })

	o.Set(2)
	assert.Equal(t, 2, o.Get())
	assert.Equal(t, []string{"a", "b"}, order)

	unsubA()
	unsubA()
	order = nil
	o.Set(3)
	assert.Equal(t, []string{"b"}, order)
}

func TestObservable_SetFromSubscriber(t *testing.T) {
	o := NewObservable(0)
	o.Subscribe(func(v int) {
		if v < 3 {
			o.Set(v + 1)
		}
	})
	o.Set(1)
	assert.Equal(t, 3, o.Get())
}

func TestObservable_NestedSetSkipsStaleDelivery(t *testing.T) {
	o := NewObservable(0)
	o.Subscribe(func(v int) {
		if v > 10 {
			o.Set(10)
		}
	})
	var seen []int
	o.Subscribe(func(v int) { seen = append(seen, v) })

	o.Set(42)
	assert.Equal(t, 10, o.Get())
	assert.Equal(t, []int{10}, seen)
}

func TestDebouncer(t *testing.T) {
	t.Run("last trigger wins", func(t *testing.T) {
		d := NewDebouncer(20 * time.Millisecond)
		ran := make(chan int, 3)
		for i := 1; i <= 3; i++ {
			d.Trigger(func() { ran <- i })
		}

		select {
		case got := <-ran:
			assert.Equal(t, 3, got)
		case <-time.After(time.Second):
			t.Fatal("debounced function never ran")
		}
		time.Sleep(40 * time.Millisecond)
		assert.Empty(t, ran)
	})

	t.Run("zero period runs inline", func(t *testing.T) {
		d := NewDebouncer(0)
		ran := false
		d.Trigger(func() { ran = true })
		assert.True(t, ran)
	})

	t.Run("stop drops pending and later work", func(t *testing.T) {
		d := NewDebouncer(10 * time.Millisecond)
		ran := make(chan struct{}, 2)
		d.Trigger(func() { ran <- struct{}{} })
		d.Stop()
		d.Trigger(func() { ran <- struct{}{} })
		time.Sleep(30 * time.Millisecond)
		assert.Empty(t, ran)
	})

	t.Run("cancel keeps debouncer usable", func(t *testing.T) {
		d := NewDebouncer(0)
		d.Cancel()
		ran := false
		d.Trigger(func() { ran = true })
		assert.True(t, ran)
	})
}
