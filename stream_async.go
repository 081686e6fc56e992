package binstream

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// suspended runs the operations of a blocking Stream on a worker goroutine so
// callers can wait on a context. One operation is in flight at a time: a call
// abandoned through its context still runs to completion before the next one
// starts, which keeps the stream position consistent.
type suspended struct {
	s   Stream
	sem *semaphore.Weighted
}

// Suspend turns a blocking Stream into an AsyncStream.
func Suspend(s Stream) AsyncStream {
	return &suspended{s: s, sem: semaphore.NewWeighted(1)}
}

func (a *suspended) do(ctx context.Context, op string, fn func() error) error {
	if err := a.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		a.sem.Release(1)
		return err
	}
	done := make(chan error, 1)
	go func() {
		defer a.sem.Release(1)
		done <- fn()
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		logger().Debug().Str("op", op).Err(ctx.Err()).Msg("suspended operation cancelled")
		return ctx.Err()
	}
}

func (a *suspended) Seek(ctx context.Context, offset uint64) (uint64, error) {
	var pos uint64
	err := a.do(ctx, "seek", func() (err error) {
		pos, err = a.s.Seek(offset)
		return err
	})
	if err != nil {
		return 0, err
	}
	return pos, nil
}

func (a *suspended) Position(ctx context.Context) (uint64, error) {
	var pos uint64
	err := a.do(ctx, "position", func() (err error) {
		pos, err = a.s.Position()
		return err
	})
	if err != nil {
		return 0, err
	}
	return pos, nil
}

func (a *suspended) Len(ctx context.Context) (uint64, error) {
	var n uint64
	err := a.do(ctx, "length", func() (err error) {
		n, err = a.s.Len()
		return err
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// ReadFull reads into a private buffer and copies to p only on success, so a
// cancelled read never writes into p after returning.
func (a *suspended) ReadFull(ctx context.Context, p []byte) error {
	tmp := make([]byte, len(p))
	if err := a.do(ctx, "read", func() error { return a.s.ReadFull(tmp) }); err != nil {
		return err
	}
	copy(p, tmp)
	return nil
}

// Write copies p before handing it to the worker, so p may be reused as soon as
// Write returns, cancelled or not.
func (a *suspended) Write(ctx context.Context, p []byte) (int, error) {
	data := append([]byte(nil), p...)
	var n int
	err := a.do(ctx, "write", func() (err error) {
		n, err = a.s.Write(data)
		return err
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (a *suspended) Flush(ctx context.Context) error {
	return a.do(ctx, "flush", a.s.Flush)
}
