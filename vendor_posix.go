// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !windows

package d2xxusb

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// posixVendor binds against ftd2xx.so with github.com/ebitengine/purego,
// a cgo-free dynamic loader. hostextra/d2xx/d2xx_posix.go links the same
// library statically through cgo; spec.md 4.1 requires dynamic loading,
// which purego provides without a cgo toolchain dependency.
type posixVendor struct {
	lib uintptr

	fGetLibraryVersion     func(ver unsafe.Pointer) int32
	fCreateDeviceInfoList   func(n unsafe.Pointer) int32
	fGetDeviceInfoDetail    func(index int32, flags, chipType, id, locID unsafe.Pointer, serial, desc unsafe.Pointer, h unsafe.Pointer) int32
	fOpenEx                 func(arg unsafe.Pointer, flags uint32, h unsafe.Pointer) int32
	fClose                  func(h uintptr) int32
	fResetDevice            func(h uintptr) int32
	fPurge                  func(h uintptr, mask uint32) int32
	fSetDtr                 func(h uintptr) int32
	fClrDtr                 func(h uintptr) int32
	fSetRts                 func(h uintptr) int32
	fClrRts                 func(h uintptr) int32
	fSetFlowControl         func(h uintptr, flow uint16, xon, xoff byte) int32
	fSetBaudRate            func(h uintptr, baud uint32) int32
	fSetDataCharacteristics func(h uintptr, wordLength, parity, stopBits byte) int32
	fSetBreakOn             func(h uintptr) int32
	fSetBreakOff            func(h uintptr) int32
	fGetModemStatus         func(h uintptr, m unsafe.Pointer) int32
	fSetChars               func(h uintptr, eventChar byte, eventEn byte, errorChar byte, errorEn byte) int32
	fSetLatencyTimer        func(h uintptr, ms byte) int32
	fGetLatencyTimer        func(h uintptr, ms unsafe.Pointer) int32
	fSetBitMode             func(h uintptr, mask, mode byte) int32
	fGetBitMode             func(h uintptr, m unsafe.Pointer) int32
	fSetTimeouts            func(h uintptr, readMS, writeMS uint32) int32
	fSetUSBParameters       func(h uintptr, in, out uint32) int32
	fSetEventNotification   func(h uintptr, mask uint32, event uintptr) int32
	fGetQueueStatus         func(h uintptr, n unsafe.Pointer) int32
	fRead                   func(h uintptr, buf unsafe.Pointer, n uint32, got unsafe.Pointer) int32
	fWrite                  func(h uintptr, buf unsafe.Pointer, n uint32, got unsafe.Pointer) int32
	fReadEE                 func(h uintptr, offset uint32, val unsafe.Pointer) int32
	fWriteEE                func(h uintptr, offset uint32, val uint16) int32
	fEraseEE                func(h uintptr) int32
	fEEUASize               func(h uintptr, n unsafe.Pointer) int32
	fEEUARead               func(h uintptr, buf unsafe.Pointer, n uint32, got unsafe.Pointer) int32
	fEEUAWrite              func(h uintptr, buf unsafe.Pointer, n uint32) int32
}

func loadNativeVendor() (vendorAPI, error) {
	lib, err := purego.Dlopen("ftd2xx.so", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, &DriverNotAvailable{Reason: err.Error()}
	}
	v := &posixVendor{lib: lib}
	binds := []struct {
		fptr interface{}
		name string
	}{
		{&v.fGetLibraryVersion, "FT_GetLibraryVersion"},
		{&v.fCreateDeviceInfoList, "FT_CreateDeviceInfoList"},
		{&v.fGetDeviceInfoDetail, "FT_GetDeviceInfoDetail"},
		{&v.fOpenEx, "FT_OpenEx"},
		{&v.fClose, "FT_Close"},
		{&v.fResetDevice, "FT_ResetDevice"},
		{&v.fPurge, "FT_Purge"},
		{&v.fSetDtr, "FT_SetDtr"},
		{&v.fClrDtr, "FT_ClrDtr"},
		{&v.fSetRts, "FT_SetRts"},
		{&v.fClrRts, "FT_ClrRts"},
		{&v.fSetFlowControl, "FT_SetFlowControl"},
		{&v.fSetBaudRate, "FT_SetBaudRate"},
		{&v.fSetDataCharacteristics, "FT_SetDataCharacteristics"},
		{&v.fSetBreakOn, "FT_SetBreakOn"},
		{&v.fSetBreakOff, "FT_SetBreakOff"},
		{&v.fGetModemStatus, "FT_GetModemStatus"},
		{&v.fSetChars, "FT_SetChars"},
		{&v.fSetLatencyTimer, "FT_SetLatencyTimer"},
		{&v.fGetLatencyTimer, "FT_GetLatencyTimer"},
		{&v.fSetBitMode, "FT_SetBitMode"},
		{&v.fGetBitMode, "FT_GetBitMode"},
		{&v.fSetTimeouts, "FT_SetTimeouts"},
		{&v.fSetUSBParameters, "FT_SetUSBParameters"},
		{&v.fSetEventNotification, "FT_SetEventNotification"},
		{&v.fGetQueueStatus, "FT_GetQueueStatus"},
		{&v.fRead, "FT_Read"},
		{&v.fWrite, "FT_Write"},
		{&v.fReadEE, "FT_ReadEE"},
		{&v.fWriteEE, "FT_WriteEE"},
		{&v.fEraseEE, "FT_EraseEE"},
		{&v.fEEUASize, "FT_EE_UASize"},
		{&v.fEEUARead, "FT_EE_UARead"},
		{&v.fEEUAWrite, "FT_EE_UAWrite"},
	}
	for _, b := range binds {
		purego.RegisterLibFunc(b.fptr, lib, b.name)
	}
	return v, nil
}

func (v *posixVendor) libraryVersion() (uint8, uint8, uint8) {
	var ver uint32
	v.fGetLibraryVersion(unsafe.Pointer(&ver))
	return uint8(ver >> 16), uint8(ver >> 8), uint8(ver)
}

func (v *posixVendor) createDeviceInfoList() (int, status) {
	var n uint32
	r := v.fCreateDeviceInfoList(unsafe.Pointer(&n))
	return int(n), status(r)
}

func (v *posixVendor) deviceInfoDetail(index int) (deviceInfoDetail, status) {
	var flags, chipType, id, locID uint32
	var h uintptr
	var serial [16]byte
	var desc [64]byte
	r := v.fGetDeviceInfoDetail(int32(index),
		unsafe.Pointer(&flags), unsafe.Pointer(&chipType), unsafe.Pointer(&id), unsafe.Pointer(&locID),
		unsafe.Pointer(&serial[0]), unsafe.Pointer(&desc[0]), unsafe.Pointer(&h))
	return deviceInfoDetail{
		Flags:          flags,
		ChipType:       DevType(chipType),
		ID:             id,
		LocID:          locID,
		Handle:         h,
		SerialRaw:      nulTerminated(serial[:]),
		DescriptionRaw: nulTerminated(desc[:]),
	}, status(r)
}

func (v *posixVendor) openBySerial(serial string) (nativeHandle, status) {
	cstr := append([]byte(serial), 0)
	const ftOpenBySerialNumber = 1
	var h uintptr
	r := v.fOpenEx(unsafe.Pointer(&cstr[0]), ftOpenBySerialNumber, unsafe.Pointer(&h))
	return nativeHandle(h), status(r)
}

func (v *posixVendor) close(h nativeHandle) status        { return status(v.fClose(uintptr(h))) }
func (v *posixVendor) resetDevice(h nativeHandle) status   { return status(v.fResetDevice(uintptr(h))) }
func (v *posixVendor) purge(h nativeHandle, mask uint32) status {
	return status(v.fPurge(uintptr(h), mask))
}

func (v *posixVendor) setDTR(h nativeHandle, on bool) status {
	if on {
		return status(v.fSetDtr(uintptr(h)))
	}
	return status(v.fClrDtr(uintptr(h)))
}

func (v *posixVendor) setRTS(h nativeHandle, on bool) status {
	if on {
		return status(v.fSetRts(uintptr(h)))
	}
	return status(v.fClrRts(uintptr(h)))
}

func (v *posixVendor) setFlowControl(h nativeHandle, flowControl uint16, xon, xoff byte) status {
	return status(v.fSetFlowControl(uintptr(h), flowControl, xon, xoff))
}

func (v *posixVendor) setBaudRate(h nativeHandle, baud uint32) status {
	return status(v.fSetBaudRate(uintptr(h), baud))
}

func (v *posixVendor) setDataCharacteristics(h nativeHandle, wordLength, parity, stopBits byte) status {
	return status(v.fSetDataCharacteristics(uintptr(h), wordLength, parity, stopBits))
}

func (v *posixVendor) setBreakOn(h nativeHandle) status  { return status(v.fSetBreakOn(uintptr(h))) }
func (v *posixVendor) setBreakOff(h nativeHandle) status { return status(v.fSetBreakOff(uintptr(h))) }

func (v *posixVendor) getModemStatus(h nativeHandle) (uint32, status) {
	var m uint32
	r := v.fGetModemStatus(uintptr(h), unsafe.Pointer(&m))
	return m, status(r)
}

func (v *posixVendor) setChars(h nativeHandle, eventChar byte, eventEn bool, errorChar byte, errorEn bool) status {
	return status(v.fSetChars(uintptr(h), eventChar, boolByte(eventEn), errorChar, boolByte(errorEn)))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func (v *posixVendor) setLatencyTimer(h nativeHandle, ms byte) status {
	return status(v.fSetLatencyTimer(uintptr(h), ms))
}

func (v *posixVendor) getLatencyTimer(h nativeHandle) (byte, status) {
	var ms byte
	r := v.fGetLatencyTimer(uintptr(h), unsafe.Pointer(&ms))
	return ms, status(r)
}

func (v *posixVendor) setBitMode(h nativeHandle, mask, mode byte) status {
	return status(v.fSetBitMode(uintptr(h), mask, mode))
}

func (v *posixVendor) getBitMode(h nativeHandle) (byte, status) {
	var m byte
	r := v.fGetBitMode(uintptr(h), unsafe.Pointer(&m))
	return m, status(r)
}

func (v *posixVendor) setTimeouts(h nativeHandle, readMS, writeMS uint32) status {
	return status(v.fSetTimeouts(uintptr(h), readMS, writeMS))
}

func (v *posixVendor) setUSBParameters(h nativeHandle, in, out uint32) status {
	return status(v.fSetUSBParameters(uintptr(h), in, out))
}

func (v *posixVendor) setEventNotification(h nativeHandle, eventMask uint32, event rxEvent) status {
	return status(v.fSetEventNotification(uintptr(h), eventMask, event.nativeToken()))
}

func (v *posixVendor) getQueueStatus(h nativeHandle) (uint32, status) {
	var n uint32
	r := v.fGetQueueStatus(uintptr(h), unsafe.Pointer(&n))
	return n, status(r)
}

func (v *posixVendor) read(h nativeHandle, buf []byte) (int, status) {
	var n uint32
	var p unsafe.Pointer
	if len(buf) > 0 {
		p = unsafe.Pointer(&buf[0])
	}
	r := v.fRead(uintptr(h), p, uint32(len(buf)), unsafe.Pointer(&n))
	return int(n), status(r)
}

func (v *posixVendor) write(h nativeHandle, buf []byte) (int, status) {
	var n uint32
	var p unsafe.Pointer
	if len(buf) > 0 {
		p = unsafe.Pointer(&buf[0])
	}
	r := v.fWrite(uintptr(h), p, uint32(len(buf)), unsafe.Pointer(&n))
	return int(n), status(r)
}

func (v *posixVendor) readEE(h nativeHandle, offset uint16) (uint16, status) {
	var val uint32
	r := v.fReadEE(uintptr(h), uint32(offset), unsafe.Pointer(&val))
	return uint16(val), status(r)
}

func (v *posixVendor) writeEE(h nativeHandle, offset uint16, value uint16) status {
	return status(v.fWriteEE(uintptr(h), uint32(offset), value))
}

func (v *posixVendor) eraseEE(h nativeHandle) status { return status(v.fEraseEE(uintptr(h))) }

func (v *posixVendor) eepromUASize(h nativeHandle) (int, status) {
	var n uint32
	r := v.fEEUASize(uintptr(h), unsafe.Pointer(&n))
	return int(n), status(r)
}

func (v *posixVendor) eepromUARead(h nativeHandle, buf []byte) status {
	var got uint32
	var p unsafe.Pointer
	if len(buf) > 0 {
		p = unsafe.Pointer(&buf[0])
	}
	return status(v.fEEUARead(uintptr(h), p, uint32(len(buf)), unsafe.Pointer(&got)))
}

func (v *posixVendor) eepromUAWrite(h nativeHandle, buf []byte) status {
	var p unsafe.Pointer
	if len(buf) > 0 {
		p = unsafe.Pointer(&buf[0])
	}
	return status(v.fEEUAWrite(uintptr(h), p, uint32(len(buf))))
}
