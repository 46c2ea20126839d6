package ring

import "errors"

var (
	// ErrRegionTooSmall is returned when a region is too small to hold
	// the control block plus a usable data area.
	ErrRegionTooSmall = errors.New("ring: region too small")

	// ErrMisalignedRegion is returned when the data area's byte length is
	// not a whole number of units: 2 bytes for a Stream, one 4-byte slot
	// for a Queue.
	ErrMisalignedRegion = errors.New("ring: data area length is not a whole number of units")

	// ErrQueueFull is returned by Queue.TryPush when no slot is free.
	ErrQueueFull = errors.New("ring: queue full")

	// ErrQueueEmpty is returned by Queue.TryShift when no slot is ready.
	ErrQueueEmpty = errors.New("ring: queue empty")
)
