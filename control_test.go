// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

import (
	"bytes"
	"testing"
	"time"
)

func newTestHandle(v *fakeVendor, desc, serial string) *OpenHandle {
	return &OpenHandle{
		Device: &LogicalDevice{Description: desc, Serial: serial, ChipType: DevType232R},
		h:      1,
	}
}

func TestControlStringDescriptorLangID(t *testing.T) {
	v := newFakeVendor()
	b := &Backend{v: v}
	h := newTestHandle(v, "", "")

	data := make([]byte, 16)
	n, err := b.ControlTransfer(h, reqTypeStandard|reqDirIn, stdGetDescriptor, uint16(descTypeString)<<8|0, 0, data, time.Second)
	if err != nil {
		t.Fatalf("ControlTransfer() err = %v", err)
	}
	if n != 4 {
		t.Fatalf("n = %d, want 4", n)
	}
	want := []byte{0x04, 0x03, 0x09, 0x04}
	if !bytes.Equal(data[:4], want) {
		t.Errorf("data[:4] = %x, want %x", data[:4], want)
	}
}

func TestControlStringDescriptorManufacturer(t *testing.T) {
	v := newFakeVendor()
	b := &Backend{v: v}
	h := newTestHandle(v, "", "")

	data := make([]byte, 16)
	n, err := b.ControlTransfer(h, reqTypeStandard|reqDirIn, stdGetDescriptor, uint16(descTypeString)<<8|1, 0, data, time.Second)
	if err != nil {
		t.Fatalf("ControlTransfer() err = %v", err)
	}
	if n != 10 {
		t.Fatalf("n = %d, want 10", n)
	}
	if data[0] != 10 || data[1] != 0x03 {
		t.Fatalf("data[0:2] = %x, want [0a 03]", data[:2])
	}
	if got := string(data[2:10]); got != "F\x00T\x00D\x00I\x00" {
		t.Errorf("data[2:10] = %q, want UTF-16LE FTDI", got)
	}
}

func TestControlStringDescriptorProductSerial(t *testing.T) {
	v := newFakeVendor()
	b := &Backend{v: v}
	h := newTestHandle(v, "Widget", "SN001")

	data := make([]byte, 32)
	if _, err := b.ControlTransfer(h, reqTypeStandard|reqDirIn, stdGetDescriptor, uint16(descTypeString)<<8|2, 0, data, time.Second); err != nil {
		t.Fatalf("product ControlTransfer() err = %v", err)
	}
	if got := string(data[2:14]); got != "W\x00i\x00d\x00g\x00e\x00t\x00" {
		t.Errorf("product data[2:14] = %q", got)
	}

	data2 := make([]byte, 32)
	if _, err := b.ControlTransfer(h, reqTypeStandard|reqDirIn, stdGetDescriptor, uint16(descTypeString)<<8|3, 0, data2, time.Second); err != nil {
		t.Fatalf("serial ControlTransfer() err = %v", err)
	}
	if got := string(data2[2:12]); got != "S\x00N\x000\x000\x001\x00" {
		t.Errorf("serial data2[2:12] = %q", got)
	}
}

func TestControlUnknownRequestType(t *testing.T) {
	v := newFakeVendor()
	b := &Backend{v: v}
	h := newTestHandle(v, "", "")

	_, err := b.ControlTransfer(h, 0x21, 0, 0, 0, nil, time.Second)
	if _, ok := err.(*NotImplemented); !ok {
		t.Fatalf("err = %v (%T), want *NotImplemented", err, err)
	}
}

func TestControlBaudRate(t *testing.T) {
	v := newFakeVendor()
	b := &Backend{v: v}
	h := newTestHandle(v, "", "")

	_, err := b.ControlTransfer(h, reqTypeVendor, sioSetBaudrate, 0x4138, 0, nil, time.Second)
	if err != nil {
		t.Fatalf("ControlTransfer() err = %v", err)
	}
	if len(v.baudRateCalls) != 1 {
		t.Fatalf("setBaudRate called %d times, want 1", len(v.baudRateCalls))
	}
	if v.baudRateCalls[0] != 0 {
		t.Errorf("setBaudRate(%d), want 0", v.baudRateCalls[0])
	}
}

func TestControlModemStatus(t *testing.T) {
	v := newFakeVendor()
	v.modemStatus = 0x1234
	b := &Backend{v: v}
	h := newTestHandle(v, "", "")

	data := make([]byte, 2)
	n, err := b.ControlTransfer(h, reqTypeVendor|reqDirIn, sioPollModemStatus, 0, 0, data, time.Second)
	if err != nil {
		t.Fatalf("ControlTransfer() err = %v", err)
	}
	if n != 2 {
		t.Fatalf("n = %d, want 2", n)
	}
	if data[0] != 0x34 || data[1] != 0x12 {
		t.Errorf("data = %x, want [34 12]", data)
	}
}

func TestControlUnknownVendorRequest(t *testing.T) {
	v := newFakeVendor()
	b := &Backend{v: v}
	h := newTestHandle(v, "", "")

	_, err := b.ControlTransfer(h, reqTypeVendor, 0x7F, 0, 0, nil, time.Second)
	if _, ok := err.(*NotImplemented); !ok {
		t.Fatalf("err = %v (%T), want *NotImplemented", err, err)
	}
}

func TestControlReadEEPROMInvalidBuffer(t *testing.T) {
	v := newFakeVendor()
	b := &Backend{v: v}
	h := newTestHandle(v, "", "")

	_, err := b.ControlTransfer(h, reqTypeVendor|reqDirIn, sioReadEEPROM, 0, 0, make([]byte, 1), time.Second)
	if _, ok := err.(*InvalidBuffer); !ok {
		t.Fatalf("err = %v (%T), want *InvalidBuffer", err, err)
	}
}

func TestControlReadEEPROM(t *testing.T) {
	v := newFakeVendor()
	v.eeValues[4] = 0xBEEF
	b := &Backend{v: v}
	h := newTestHandle(v, "", "")

	data := make([]byte, 2)
	n, err := b.ControlTransfer(h, reqTypeVendor|reqDirIn, sioReadEEPROM, 0, 4, data, time.Second)
	if err != nil {
		t.Fatalf("ControlTransfer() err = %v", err)
	}
	if n != 2 || data[0] != 0xEF || data[1] != 0xBE {
		t.Errorf("n=%d data=%x, want n=2 data=[ef be]", n, data)
	}
}

func TestControlSetEventChar(t *testing.T) {
	v := newFakeVendor()
	b := &Backend{v: v}
	h := newTestHandle(v, "", "")

	if _, err := b.ControlTransfer(h, reqTypeVendor, sioSetEventChar, 0x010D, 0, nil, time.Second); err != nil {
		t.Fatalf("ControlTransfer() err = %v", err)
	}
	if h.eventChar != 0x0D || !h.eventEnable {
		t.Errorf("eventChar=%#x eventEnable=%v, want 0x0d/true", h.eventChar, h.eventEnable)
	}
	if len(v.charsCalls) != 1 {
		t.Fatalf("setChars called %d times, want 1", len(v.charsCalls))
	}
}

func TestControlSetBitmode(t *testing.T) {
	v := newFakeVendor()
	b := &Backend{v: v}
	h := newTestHandle(v, "", "")

	if _, err := b.ControlTransfer(h, reqTypeVendor, sioSetBitmode, 0x0201, 0, nil, time.Second); err != nil {
		t.Fatalf("ControlTransfer() err = %v", err)
	}
	if len(v.bitModeCalls) != 1 {
		t.Fatalf("setBitMode called %d times, want 1", len(v.bitModeCalls))
	}
	if v.bitModeCalls[0].mask != 0x01 || v.bitModeCalls[0].mode != 0x02 {
		t.Errorf("mask/mode = %#x/%#x, want 0x01/0x02", v.bitModeCalls[0].mask, v.bitModeCalls[0].mode)
	}
}
