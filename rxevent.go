// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

import "time"

// rxEvent is a wait-one handle that the vendor driver signals when at
// least one byte is queued for read. It abstracts over the platform's
// native wait primitive: CreateEventW/WaitForSingleObject on Windows, the
// EVENT_HANDLE the POSIX ftd2xx.so exposes elsewhere.
type rxEvent interface {
	// wait blocks up to timeout for the event to signal, returning true
	// if it did.
	wait(timeout time.Duration) bool
	// nativeToken returns the platform-specific value to pass to
	// FT_SetEventNotification.
	nativeToken() uintptr
	// close releases the underlying OS object. Safe to call once.
	close() error
}
