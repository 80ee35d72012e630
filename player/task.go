package player

type taskState int

const (
	idle taskState = iota
	pending
	done
)

// task runs one piece of work in the background. The owner polls it from
// the game loop, which never blocks on it.
type task[T any] struct {
	state  taskState
	result chan T
	value  T
}

func (t *task[T]) started() bool {
	return t.state != idle
}

func (t *task[T]) start(work func() T) {
	if t.started() {
		panic("task already started")
	}
	t.state = pending
	t.result = make(chan T, 1)
	go func() {
		t.result <- work()
	}()
}

// poll returns the result once the work is done and makes the task idle
// again.
func (t *task[T]) poll() (T, bool) {
	var zero T
	if t.state == pending {
		select {
		case v := <-t.result:
			t.value = v
			t.state = done
		default:
			return zero, false
		}
	}
	if t.state != done {
		return zero, false
	}
	v := t.value
	t.value = zero
	t.state = idle
	return v, true
}
