// timer/timer.go
package timer

import (
	"container/heap"
	"sync"
	"time"
)

type TimerTask struct {
	Id       int64
	Execute  time.Time
	Interval time.Duration
	Callback func()
	index    int
}

type TimerQueue []*TimerTask

func (q TimerQueue) Len() int { return len(q) }

func (q TimerQueue) Less(i, j int) bool {
	return q[i].Execute.Before(q[j].Execute)
}

func (q TimerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *TimerQueue) Push(x interface{}) {
	n := len(*q)
	task := x.(*TimerTask)
	task.index = n
	*q = append(*q, task)
}

func (q *TimerQueue) Pop() interface{} {
	old := *q
	n := len(old)
	task := old[n-1]
	task.index = -1
	*q = old[0 : n-1]
	return task
}

// Loop runs timer callbacks and posted tasks on a single goroutine,
// in the order they become ready. No two handlers ever run concurrently,
// so world state needs no locking.
type Loop struct {
	queue  TimerQueue
	mutex  sync.Mutex
	nextId int64
	tasks  chan func()
	stop   chan struct{}
	done   chan struct{}
}

func NewLoop() *Loop {
	l := &Loop{
		queue:  make(TimerQueue, 0),
		tasks:  make(chan func(), 1024),
		nextId: 1,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	heap.Init(&l.queue)
	return l
}

// AddTimer schedules a callback after delay; a non-zero interval repeats it.
// Callbacks run inline on the loop goroutine.
func (l *Loop) AddTimer(delay time.Duration, interval time.Duration, callback func()) int64 {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	task := &TimerTask{
		Id:       l.nextId,
		Execute:  time.Now().Add(delay),
		Interval: interval,
		Callback: callback,
	}
	l.nextId++

	heap.Push(&l.queue, task)
	return task.Id
}

func (l *Loop) RemoveTimer(timerId int64) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	for i, task := range l.queue {
		if task.Id == timerId {
			heap.Remove(&l.queue, i)
			break
		}
	}
}

// Post queues a task from any goroutine; it runs on the loop goroutine.
func (l *Loop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.stop:
	}
}

// Call posts a task and blocks until it has executed. Must not be invoked
// from the loop goroutine itself.
func (l *Loop) Call(fn func()) {
	doneCh := make(chan struct{})
	l.Post(func() {
		fn()
		close(doneCh)
	})
	select {
	case <-doneCh:
	case <-l.done:
	}
}

// Start launches the loop goroutine.
func (l *Loop) Start() {
	go l.run()
}

// Stop terminates the loop after the current handler returns.
func (l *Loop) Stop() {
	close(l.stop)
	<-l.done
}

func (l *Loop) run() {
	defer close(l.done)

	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return

		case fn := <-l.tasks:
			fn()

		case <-ticker.C:
			l.runDueTimers()
		}
	}
}

func (l *Loop) runDueTimers() {
	now := time.Now()
	for {
		l.mutex.Lock()
		if l.queue.Len() == 0 || l.queue[0].Execute.After(now) {
			l.mutex.Unlock()
			return
		}
		task := heap.Pop(&l.queue).(*TimerTask)
		if task.Interval > 0 {
			task.Execute = now.Add(task.Interval)
			heap.Push(&l.queue, task)
		}
		l.mutex.Unlock()

		// Run outside the queue lock, still on the loop goroutine.
		task.Callback()
	}
}
