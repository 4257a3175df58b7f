package frames

import (
	"context"
	"errors"
	"image"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDecoder yields total frames tagged with their decode position in Pix[0..1].
type fakeDecoder struct {
	meta    Metadata
	total   int
	failAt  int
	decoded atomic.Int64
	closed  atomic.Bool
}

func newFakeDecoder(fps float64, total int) *fakeDecoder {
	return &fakeDecoder{meta: Metadata{FPS: fps, Width: 4, Height: 4}, total: total, failAt: -1}
}

func (d *fakeDecoder) Metadata() Metadata { return d.meta }

func (d *fakeDecoder) DecodeNext() (image.Image, error) {
	n := int(d.decoded.Load())
	if n == d.failAt {
		return nil, errors.New("corrupt packet")
	}
	if n >= d.total {
		return nil, io.EOF
	}
	d.decoded.Add(1)
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Pix[0] = uint8(n)
	img.Pix[1] = uint8(n >> 8)
	return img, nil
}

func (d *fakeDecoder) Close() error {
	d.closed.Store(true)
	return nil
}

func drain(t *testing.T, src *Source) []Frame {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out []Frame
	for src.HasMore() {
		f, ok := src.Read(ctx)
		if !ok {
			break
		}
		out = append(out, f)
	}
	require.NoError(t, ctx.Err(), "drain timed out")
	return out
}

func TestSource_SamplingCounts(t *testing.T) {
	tests := []struct {
		target int
		kept   int
	}{
		{1, 2},
		{10, 20},
		{100, 60},
	}

	for _, tt := range tests {
		src, err := NewSource(newFakeDecoder(30, 60), tt.target, 4)
		require.NoError(t, err)
		src.Start(context.Background())

		got := drain(t, src)
		assert.Len(t, got, tt.kept, "target fps %d", tt.target)
		assert.NoError(t, src.Err())
		assert.False(t, src.HasMore())
	}
}

func TestSource_OrderAndNumbers(t *testing.T) {
	src, err := NewSource(newFakeDecoder(30, 60), 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, src.Interval())
	assert.InDelta(t, 10.0, src.EffectiveFPS(), 1e-9)

	src.Start(context.Background())
	got := drain(t, src)
	require.Len(t, got, 20)
	for i, f := range got {
		assert.Equal(t, i*3, f.Number)
		pix := f.Image.(*image.RGBA).Pix
		assert.Equal(t, i*3, int(pix[0])|int(pix[1])<<8)
		assert.InDelta(t, float64(i*3)/30, f.Time, 1e-9)
	}
}

func TestSource_Backpressure(t *testing.T) {
	dec := newFakeDecoder(30, 100)
	src, err := NewSource(dec, 30, 3)
	require.NoError(t, err)
	src.Start(context.Background())

	// Producer fills the queue, holds one more frame and blocks on put.
	assert.Eventually(t, func() bool { return dec.decoded.Load() == 4 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.EqualValues(t, 4, dec.decoded.Load())

	got := drain(t, src)
	assert.Len(t, got, 100)
}

func TestSource_DecodeErrorEndsStream(t *testing.T) {
	dec := newFakeDecoder(30, 60)
	dec.failAt = 9
	src, err := NewSource(dec, 30, 8)
	require.NoError(t, err)
	src.Start(context.Background())

	got := drain(t, src)
	assert.Len(t, got, 9)
	src.Wait()
	assert.EqualError(t, src.Err(), "corrupt packet")
}

func TestSource_CancelUnblocksProducer(t *testing.T) {
	dec := newFakeDecoder(30, 1000)
	src, err := NewSource(dec, 30, 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	src.Start(ctx)
	assert.Eventually(t, func() bool { return dec.decoded.Load() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	done := make(chan struct{})
	go func() {
		src.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("producer did not stop after cancel")
	}
	assert.ErrorIs(t, src.Err(), context.Canceled)
}

func TestSource_CancelUnblocksReader(t *testing.T) {
	src, err := NewSource(&blockingDecoder{}, 10, 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, ok := src.Read(ctx)
	assert.False(t, ok)
}

type blockingDecoder struct{}

func (blockingDecoder) Metadata() Metadata { return Metadata{FPS: 25, Width: 1, Height: 1} }
func (blockingDecoder) DecodeNext() (image.Image, error) {
	select {}
}
func (blockingDecoder) Close() error { return nil }

func TestNewSource_Rejects(t *testing.T) {
	_, err := NewSource(newFakeDecoder(0, 10), 10, 4)
	assert.ErrorIs(t, err, ErrInvalidSourceFPS)

	_, err = NewSource(newFakeDecoder(30, 10), 0, 4)
	assert.ErrorIs(t, err, ErrInvalidOptions)

	_, err = NewSource(newFakeDecoder(30, 10), 10, 0)
	assert.ErrorIs(t, err, ErrInvalidOptions)
}

func TestSource_WaitWithoutStart(t *testing.T) {
	src, err := NewSource(newFakeDecoder(30, 10), 10, 4)
	require.NoError(t, err)
	src.Wait()
	assert.NoError(t, src.Err())
	assert.True(t, src.HasMore())
}
