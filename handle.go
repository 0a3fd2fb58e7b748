// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

const (
	readTimeout  = 5000 // ms
	writeTimeout = 1000 // ms
)

// OpenHandle is the backend's handle to one opened device, exclusively
// owned by the upper layer between OpenDevice and CloseDevice.
type OpenHandle struct {
	Device *LogicalDevice

	h  nativeHandle
	rx rxEvent

	eventChar   byte
	eventEnable bool
	errorChar   byte
	errorEnable bool
}

// OpenDevice opens d by serial number, appending the interface-A suffix
// per spec.md 4.5, sets up timeouts and the RX event subscription, and
// returns a fresh OpenHandle.
//
// Opening interface B/C/D of a multi-interface chip is not reachable
// through this call as specified; see SPEC_FULL.md section 9.
func (b *Backend) OpenDevice(d *LogicalDevice) (*OpenHandle, error) {
	serial := d.Serial + "A"
	nh, s := b.v.openBySerial(serial)
	if err := toErr("FT_OpenEx", []interface{}{serial}, s); err != nil {
		return nil, err
	}
	rx, err := newRxEvent()
	if err != nil {
		b.v.close(nh)
		return nil, err
	}
	if s := b.v.setTimeouts(nh, readTimeout, writeTimeout); s != statusOK {
		rx.close()
		b.v.close(nh)
		return nil, toErr("FT_SetTimeouts", []interface{}{readTimeout, writeTimeout}, s)
	}
	h := &OpenHandle{Device: d, h: nh, rx: rx}
	if s := b.v.setEventNotification(nh, eventRXChar, rx); s != statusOK {
		rx.close()
		b.v.close(nh)
		return nil, toErr("FT_SetEventNotification", []interface{}{eventRXChar}, s)
	}
	return h, nil
}

// CloseDevice releases h. The backend does not guard against a second
// close on the same handle: the first call releases the RX event and
// closes the vendor handle; a second call will fail on the now-invalid
// vendor handle. That is the caller's bug to avoid.
func (b *Backend) CloseDevice(h *OpenHandle) error {
	h.rx.close()
	s := b.v.close(h.h)
	return toErr("FT_Close", nil, s)
}

// SetConfiguration is a no-op: the vendor driver has no configuration
// concept distinct from the one implicit configuration it always
// presents.
func (b *Backend) SetConfiguration(h *OpenHandle, cfg int) error {
	return nil
}

// GetConfiguration always reports the device's single configuration.
func (b *Backend) GetConfiguration(h *OpenHandle) (int, error) {
	return 1, nil
}

// ClaimInterface is a no-op: the vendor driver has no per-interface claim
// concept.
func (b *Backend) ClaimInterface(h *OpenHandle, intf int) error {
	return nil
}

// ReleaseInterface is a no-op, symmetric with ClaimInterface.
func (b *Backend) ReleaseInterface(h *OpenHandle, intf int) error {
	return nil
}
