package camera

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
)

// StreamHandle is an opaque reference to an open device stream.
type StreamHandle string

// Device is the camera collaborator used by QR payments and profile
// picture capture. Streams must be released on every path, including
// failures after acquisition.
type Device interface {
	AcquireStream(ctx context.Context) (StreamHandle, error)
	Capture(ctx context.Context, stream StreamHandle) (models.ImageHandle, error)
	Release(ctx context.Context, stream StreamHandle) error
}

// MockDevice simulates a device. Available toggles the permission
// outcome so both acquisition branches can be exercised.
type MockDevice struct {
	available atomic.Bool

	mu   sync.Mutex
	next int
	open map[StreamHandle]bool
}

func NewMockDevice(available bool) *MockDevice {
	d := &MockDevice{open: make(map[StreamHandle]bool)}
	d.available.Store(available)
	return d
}

// SetAvailable flips the simulated permission state.
func (d *MockDevice) SetAvailable(v bool) {
	d.available.Store(v)
}

func (d *MockDevice) AcquireStream(ctx context.Context) (StreamHandle, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !d.available.Load() {
		return "", types.ErrDeviceUnavailable
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.next++
	handle := StreamHandle(fmt.Sprintf("stream-%d", d.next))
	d.open[handle] = true
	return handle, nil
}

func (d *MockDevice) Capture(ctx context.Context, stream StreamHandle) (models.ImageHandle, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open[stream] {
		return "", fmt.Errorf("capture on closed stream %q", stream)
	}
	return models.ImageHandle(fmt.Sprintf("capture-%s", stream)), nil
}

func (d *MockDevice) Release(_ context.Context, stream StreamHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open[stream] {
		return fmt.Errorf("release of unknown stream %q", stream)
	}
	delete(d.open, stream)
	return nil
}

// OpenStreams reports streams acquired but not yet released. Tests use
// it to assert the release-on-every-path invariant.
func (d *MockDevice) OpenStreams() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.open)
}
