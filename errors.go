// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

import "fmt"

// DriverNotAvailable is returned when the vendor shared library could not
// be loaded or one of its entry points could not be resolved.
type DriverNotAvailable struct {
	Reason string
}

func (e *DriverNotAvailable) Error() string {
	return "d2xxusb: driver not available: " + e.Reason
}

// VendorCallFailed wraps a non-zero status code returned by a vendor entry
// point.
type VendorCallFailed struct {
	Function   string
	Params     []interface{}
	Status     int32
	StatusName string
}

func (e *VendorCallFailed) Error() string {
	return fmt.Sprintf("d2xxusb: %s%v: %s", e.Function, e.Params, e.StatusName)
}

// OutOfRange is returned when a descriptor index, interface, alternate
// setting or endpoint index is outside the range the device supports.
type OutOfRange struct {
	What  string
	Value int
	Limit int
}

func (e *OutOfRange) Error() string {
	return fmt.Sprintf("d2xxusb: %s %d out of range (limit %d)", e.What, e.Value, e.Limit)
}

// NotImplemented is returned for a control transfer the dispatcher does
// not recognize.
type NotImplemented struct {
	Detail string
}

func (e *NotImplemented) Error() string {
	return "d2xxusb: not implemented: " + e.Detail
}

// InvalidBuffer is returned when the caller-supplied buffer is too small
// to hold the response of a control transfer.
type InvalidBuffer struct {
	Need int
	Got  int
}

func (e *InvalidBuffer) Error() string {
	return fmt.Sprintf("d2xxusb: buffer too small: need %d, got %d", e.Need, e.Got)
}
