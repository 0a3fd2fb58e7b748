// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

// flagOpened is bit 0 of deviceInfoDetail.Flags: the vendor driver sets
// it on entries already opened by another process.
const flagOpened = 1 << 0

// LogicalDevice is what the upper layer sees as one USB device. For a
// multi-interface chip it is the coalesced result of the vendor driver's
// one-row-per-physical-interface enumeration; see enumerator.go.
//
// A LogicalDevice is immutable after EnumerateDevices returns it, except
// for the bitmap OR-ing the enumerator itself performs while coalescing.
// It is discarded along with the enumeration list that produced it.
type LogicalDevice struct {
	Flags               uint32
	ChipType            DevType
	ID                  uint32
	LocID               uint32
	handle              nativeHandle // vendor-internal token, opaque, unused post-enumeration
	Serial              string
	Description         string
	NumInterfaces       int
	AvailableInterfaces uint8
}

// VendorID returns the upper 16 bits of the packed vendor/product ID.
func (d *LogicalDevice) VendorID() uint16 {
	return uint16(d.ID >> 16)
}

// ProductID returns the lower 16 bits of the packed vendor/product ID.
func (d *LogicalDevice) ProductID() uint16 {
	return uint16(d.ID)
}

// Bus returns the bus number encoded in the location ID.
func (d *LogicalDevice) Bus() int {
	return int((d.LocID >> 4) & 0xF)
}

// Address returns the device address encoded in the location ID.
func (d *LogicalDevice) Address() int {
	return int(d.LocID & 0xF)
}
