// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

import (
	"log"
	"sync"
)

// Backend is the USB-to-D2XX translation backend: the drop-in
// replacement for a generic-USB backend that drives FTDI chips through
// the vendor D2XX driver. Obtain one with GetBackend.
type Backend struct {
	v vendorAPI
}

var (
	loadOnce     sync.Once
	loadedVendor vendorAPI
	loadErr      error
)

// GetBackend loads the vendor shared library on first call and returns a
// Backend wrapping it, or nil if the library failed to load or the
// driver currently reports zero devices. Library load happens at most
// once per process: a load failure is latched and not retried by
// subsequent calls.
func GetBackend() *Backend {
	loadOnce.Do(func() {
		v, err := loadNativeVendor()
		if err != nil {
			loadErr = err
			return
		}
		loadedVendor = newLoggingVendor(v, log.Default())
	})
	if loadErr != nil || loadedVendor == nil {
		return nil
	}
	n, _ := loadedVendor.createDeviceInfoList()
	if n == 0 {
		return nil
	}
	return &Backend{v: loadedVendor}
}

// LibraryVersion returns the vendor driver's own version triple, as
// reported by FT_GetLibraryVersion.
func (b *Backend) LibraryVersion() (major, minor, build uint8) {
	return b.v.libraryVersion()
}
