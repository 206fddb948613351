package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	t.Run("Value: subscribe replays then follows", func(t *testing.T) {
		g := NewGraph()
		v := NewValue(g, 1)

		var got []int
		sub := v.Subscribe(func(x int) { got = append(got, x) })
		v.Set(2)
		v.Set(3)

		require.Equal(t, []int{1, 2, 3}, got)
		require.Equal(t, 3, v.Get())
		require.True(t, sub.IsActive())
	})

	t.Run("Value: no coalescing of identical values", func(t *testing.T) {
		g := NewGraph()
		v := NewValue(g, 0)
		var got []int
		v.Subscribe(func(x int) { got = append(got, x) })
		v.Set(5)
		v.Set(5)
		require.Equal(t, []int{0, 5, 5}, got)
	})

	t.Run("Value: cancel is idempotent and isolated", func(t *testing.T) {
		g := NewGraph()
		v := NewValue(g, "a")

		var first, second []string
		s1 := v.Subscribe(func(x string) { first = append(first, x) })
		v.Subscribe(func(x string) { second = append(second, x) })

		s1.Cancel()
		s1.Cancel()
		v.Set("b")

		assert.Equal(t, []string{"a"}, first)
		assert.Equal(t, []string{"a", "b"}, second)
		assert.False(t, s1.IsActive())
		assert.Equal(t, 1, g.Subscriptions())

		var nilSub *Subscription
		assert.NotPanics(t, nilSub.Cancel)
	})
}

func TestReentrantSet(t *testing.T) {
	t.Run("Set inside a subscriber runs after the current notification", func(t *testing.T) {
		g := NewGraph()
		v := NewValue(g, 0)

		var trace []string
		v.Subscribe(func(x int) {
			trace = append(trace, "a", string(rune('0'+x)))
			if x == 1 {
				v.Set(2)
				v.Set(3)
				// store is deferred with its notification
				trace = append(trace, "still", string(rune('0'+v.Get())))
			}
		})
		v.Subscribe(func(x int) {
			trace = append(trace, "b", string(rune('0'+x)))
		})

		trace = nil
		v.Set(1)

		require.Equal(t, []string{
			"a", "1", "still", "1", "b", "1",
			"a", "2", "b", "2",
			"a", "3", "b", "3",
		}, trace)
		require.Equal(t, 3, v.Get())
		require.False(t, g.Dispatching())
	})

	t.Run("Writes to another stream keep FIFO order", func(t *testing.T) {
		g := NewGraph()
		src := NewValue(g, 0)
		dst := NewValue(g, 0)

		var got []int
		dst.Subscribe(func(x int) { got = append(got, x) })
		src.Subscribe(func(x int) {
			dst.Set(x * 10)
			dst.Set(x*10 + 1)
		})

		src.Set(1)
		src.Set(2)
		require.Equal(t, []int{0, 0, 1, 10, 11, 20, 21}, got)
	})
}

func TestCancelDuringNotification(t *testing.T) {
	g := NewGraph()
	v := NewValue(g, 0)

	var later []int
	var victim *Subscription
	v.Subscribe(func(x int) {
		if x == 1 {
			victim.Cancel()
		}
	})
	victim = v.Subscribe(func(x int) { later = append(later, x) })

	v.Set(1)
	v.Set(2)
	require.Equal(t, []int{0}, later)
}

func TestEvent(t *testing.T) {
	g := NewGraph()
	e := NewEvent[string](g)

	_, ok := e.Latest()
	require.False(t, ok)

	var early []string
	e.Subscribe(func(s string) { early = append(early, s) })
	e.Emit("first")

	var late []string
	e.Subscribe(func(s string) { late = append(late, s) })
	e.Emit("second")

	require.Equal(t, []string{"first", "second"}, early)
	require.Equal(t, []string{"second"}, late)

	last, ok := e.Latest()
	require.True(t, ok)
	require.Equal(t, "second", last)
}

func TestOperators(t *testing.T) {
	t.Run("Map", func(t *testing.T) {
		g := NewGraph()
		v := NewValue(g, 2)
		sq := Map[int, int](v, func(x int) int { return x * x })

		var got []int
		sq.Subscribe(func(x int) { got = append(got, x) })
		v.Set(3)
		require.Equal(t, []int{4, 9}, got)
		require.Equal(t, 9, sq.Get())
	})

	t.Run("Filter", func(t *testing.T) {
		g := NewGraph()
		v := NewValue(g, 1)
		even := Filter[int](v, func(x int) bool { return x%2 == 0 })

		_, ok := even.Latest()
		require.False(t, ok)

		var got []int
		even.Subscribe(func(x int) { got = append(got, x) })
		for _, x := range []int{2, 3, 4} {
			v.Set(x)
		}
		require.Equal(t, []int{2, 4}, got)
	})

	t.Run("Dedupe", func(t *testing.T) {
		g := NewGraph()
		v := NewValue(g, "x")
		d := Dedupe[string](v)

		var got []string
		d.Subscribe(func(s string) { got = append(got, s) })
		for _, s := range []string{"x", "y", "y", "x"} {
			v.Set(s)
		}
		require.Equal(t, []string{"x", "y", "x"}, got)
	})

	t.Run("Combine", func(t *testing.T) {
		g := NewGraph()
		a := NewValue(g, 1)
		b := NewEvent[int](g)
		sum := Combine[int, int, int](a, b, func(x, y int) int { return x + y })

		var got []int
		sum.Subscribe(func(x int) { got = append(got, x) })
		require.Empty(t, got)

		b.Emit(10)
		a.Set(2)
		b.Emit(20)
		require.Equal(t, []int{11, 12, 22}, got)
	})

	t.Run("Dispose releases upstream", func(t *testing.T) {
		g := NewGraph()
		v := NewValue(g, 1)
		m := Map[int, int](v, func(x int) int { return -x })
		m.Subscribe(func(int) {})
		require.Equal(t, 2, g.Subscriptions())

		m.Dispose()
		require.Equal(t, 0, g.Subscriptions())

		v.Set(5)
		require.Equal(t, -1, m.Get())
	})
}

func TestTeardown(t *testing.T) {
	t.Run("Graph teardown mid-notification is deferred", func(t *testing.T) {
		g := NewGraph()
		v := NewValue(g, 0)

		var got []int
		v.Subscribe(func(x int) {
			if x == 1 {
				g.Teardown()
			}
		})
		v.Subscribe(func(x int) { got = append(got, x) })

		v.Set(1)
		v.Set(2)

		require.Equal(t, []int{0, 1}, got)
		require.Equal(t, 0, g.Subscriptions())
	})

	t.Run("Bag disposes its subscriptions and hooks once", func(t *testing.T) {
		g := NewGraph()
		v := NewValue(g, 0)
		bag := NewBag(g)

		calls := 0
		bag.Add(v.Subscribe(func(int) {}), v.Subscribe(func(int) {}))
		bag.OnDispose(func() { calls++ })
		keep := v.Subscribe(func(int) {})

		bag.Dispose()
		bag.Dispose()

		require.Equal(t, 1, calls)
		require.Equal(t, 0, bag.Len())
		require.True(t, keep.IsActive())
		require.Equal(t, 1, g.Subscriptions())
	})

	t.Run("Panicking subscriber leaves the graph usable", func(t *testing.T) {
		g := NewGraph()
		v := NewValue(g, 0)
		v.Subscribe(func(x int) {
			if x == 1 {
				v.Set(100)
				panic("boom")
			}
		})

		require.Panics(t, func() { v.Set(1) })
		require.False(t, g.Dispatching())

		v.Set(2)
		require.Equal(t, 2, v.Get())
	})
}
