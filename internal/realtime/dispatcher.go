package realtime

import (
	"context"
	"hash/fnv"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/dazzlr/pkg/logger"
)

type pushJob struct {
	peer    Peer
	connID  string
	event   string
	payload any
}

// dispatcher 本地异步推送队列，按连接分片保证同一连接内有序；
// 队列满时丢弃，实时推送本身不保证送达
type dispatcher struct {
	shards []chan pushJob
}

func newDispatcher(workers, queueSize int) *dispatcher {
	if workers <= 0 {
		workers = 4
	}
	if queueSize <= 0 {
		queueSize = 1024
	}
	d := &dispatcher{shards: make([]chan pushJob, workers)}
	for i := range d.shards {
		d.shards[i] = make(chan pushJob, queueSize)
	}
	return d
}

// start 每个分片一个协程；返回的停止函数等待队列排空或超时
func (d *dispatcher) start() func(context.Context) error {
	stopCh := make(chan struct{})
	for _, ch := range d.shards {
		go func(ch chan pushJob) {
			for {
				select {
				case job := <-ch:
					sendNow(job)
				case <-stopCh:
					return
				}
			}
		}(ch)
	}
	return func(ctx context.Context) error {
		defer close(stopCh)
		deadline := time.NewTimer(2 * time.Second)
		defer deadline.Stop()
		for d.pending() > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-deadline.C:
				return nil
			case <-time.After(20 * time.Millisecond):
			}
		}
		return nil
	}
}

func (d *dispatcher) pending() int {
	n := 0
	for _, ch := range d.shards {
		n += len(ch)
	}
	return n
}

func sendNow(job pushJob) {
	if err := job.peer.Send(job.event, job.payload); err != nil {
		logger.Debug("push to peer failed",
			zap.String("conn", job.connID), zap.String("event", job.event), zap.Error(err))
	}
}

func (d *dispatcher) enqueue(job pushJob) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(job.connID))
	ch := d.shards[h.Sum32()%uint32(len(d.shards))]
	select {
	case ch <- job:
	default:
		logger.Warn("realtime queue full, drop event", zap.String("conn", job.connID), zap.String("event", job.event))
	}
}
