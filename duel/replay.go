package duel

import (
	"encoding/json"

	"github.com/bytearena/leakybucket/bucket"
)

// FrameStream batches ReplayFrames emitted during a running battle into
// fixed windows for a streaming consumer (a live dashboard, a coaching
// tool), mirroring cmd/arena/streamstate.go's bucket-batched viz stream in
// the teacher codebase. It is a side channel: simulate's synchronous
// BattleResult.ReplayFrames is always populated regardless of whether a
// caller also opted into streaming via BattleConfig.WithFrameStream.
type FrameStream struct {
	bucket *bucket.Bucket
	out    chan []ReplayFrame
}

// NewFrameStream starts a bucket batching frames at framesPerSecond,
// keeping bufferSeconds worth of frames before each flush is delivered on
// the returned stream's channel.
func NewFrameStream(framesPerSecond, bufferSeconds int) *FrameStream {
	fs := &FrameStream{out: make(chan []ReplayFrame, 1)}
	fs.bucket = bucket.NewBucket(framesPerSecond, bufferSeconds, func(batch bucket.Batch, _ *bucket.Bucket) {
		frames := batch.GetFrames()
		decoded := make([]ReplayFrame, 0, len(frames))
		for _, f := range frames {
			var frame ReplayFrame
			if err := json.Unmarshal([]byte(f.GetPayload()), &frame); err == nil {
				decoded = append(decoded, frame)
			}
		}
		fs.out <- decoded
	})
	return fs
}

// Push enqueues one tick's frame for batching.
func (fs *FrameStream) Push(frame ReplayFrame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	fs.bucket.AddFrame(string(payload))
	return nil
}

// Batches is the channel consumers read flushed frame windows from.
func (fs *FrameStream) Batches() <-chan []ReplayFrame { return fs.out }
