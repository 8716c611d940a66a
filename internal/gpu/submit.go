//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/wgpu/hal"
)

// ErrSubmitTimeout is returned when the GPU does not finish a submission
// within the configured timeout.
var ErrSubmitTimeout = errors.New("gpu: submission timed out")

// DefaultSubmitTimeout bounds how long a pass waits for the GPU.
const DefaultSubmitTimeout = 5 * time.Second

// pollInterval is the sleep between completion polls.
const pollInterval = 100 * time.Microsecond

// submitAndWait finishes encoding, submits the command buffer and blocks
// until the queue reports it complete.
func submitAndWait(device hal.Device, queue hal.Queue, encoder hal.CommandEncoder, timeout time.Duration) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	index, err := queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return waitSubmission(queue, index, timeout)
}

// waitSubmission polls until the queue has completed submission index.
func waitSubmission(queue hal.Queue, index uint64, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: index %d after %v", ErrSubmitTimeout, index, timeout)
		}
		time.Sleep(pollInterval)
	}
	return nil
}
