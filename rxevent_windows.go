// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build windows

package d2xxusb

import (
	"time"

	"golang.org/x/sys/windows"
)

// windowsRxEvent wraps a Win32 auto-reset event created with
// CreateEventW and waited on with WaitForSingleObject, per spec.md 4.1.
type windowsRxEvent struct {
	h windows.Handle
}

// newRxEvent is a var, not a plain func, so tests can stub it without
// touching a real Win32 event object.
var newRxEvent = func() (rxEvent, error) {
	h, err := windows.CreateEvent(nil, 0, 0, nil)
	if err != nil {
		return nil, &DriverNotAvailable{Reason: "CreateEventW: " + err.Error()}
	}
	return &windowsRxEvent{h: h}, nil
}

func (e *windowsRxEvent) wait(timeout time.Duration) bool {
	ms := uint32(timeout / time.Millisecond)
	r, err := windows.WaitForSingleObject(e.h, ms)
	return err == nil && r == windows.WAIT_OBJECT_0
}

func (e *windowsRxEvent) nativeToken() uintptr {
	return uintptr(e.h)
}

func (e *windowsRxEvent) close() error {
	return windows.CloseHandle(e.h)
}
