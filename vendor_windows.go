// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build windows

package d2xxusb

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// windowsVendor binds against ftd2xx.dll via golang.org/x/sys/windows,
// the typed equivalent of hostextra/d2xx/d2xx_windows.go's raw
// syscall.LoadDLL/FindProc pairing.
type windowsVendor struct {
	dll *windows.LazyDLL

	getLibraryVersion     *windows.LazyProc
	createDeviceInfoList  *windows.LazyProc
	getDeviceInfoDetail   *windows.LazyProc
	openEx                *windows.LazyProc
	close_                *windows.LazyProc
	resetDevice           *windows.LazyProc
	purge                 *windows.LazyProc
	setDtr                *windows.LazyProc
	clrDtr                *windows.LazyProc
	setRts                *windows.LazyProc
	clrRts                *windows.LazyProc
	setFlowControl        *windows.LazyProc
	setBaudRate           *windows.LazyProc
	setDataCharacteristics *windows.LazyProc
	setBreakOn            *windows.LazyProc
	setBreakOff           *windows.LazyProc
	getModemStatus        *windows.LazyProc
	setChars              *windows.LazyProc
	setLatencyTimer       *windows.LazyProc
	getLatencyTimer       *windows.LazyProc
	setBitMode            *windows.LazyProc
	getBitMode            *windows.LazyProc
	setTimeouts           *windows.LazyProc
	setUSBParameters      *windows.LazyProc
	setEventNotification  *windows.LazyProc
	getQueueStatus        *windows.LazyProc
	read_                 *windows.LazyProc
	write_                *windows.LazyProc
	readEE                *windows.LazyProc
	writeEE               *windows.LazyProc
	eraseEE               *windows.LazyProc
	eeUASize              *windows.LazyProc
	eeUARead              *windows.LazyProc
	eeUAWrite             *windows.LazyProc
}

func loadNativeVendor() (vendorAPI, error) {
	dll := windows.NewLazySystemDLL("ftd2xx.dll")
	v := &windowsVendor{
		dll:                    dll,
		getLibraryVersion:      dll.NewProc("FT_GetLibraryVersion"),
		createDeviceInfoList:   dll.NewProc("FT_CreateDeviceInfoList"),
		getDeviceInfoDetail:    dll.NewProc("FT_GetDeviceInfoDetail"),
		openEx:                 dll.NewProc("FT_OpenEx"),
		close_:                 dll.NewProc("FT_Close"),
		resetDevice:            dll.NewProc("FT_ResetDevice"),
		purge:                  dll.NewProc("FT_Purge"),
		setDtr:                 dll.NewProc("FT_SetDtr"),
		clrDtr:                 dll.NewProc("FT_ClrDtr"),
		setRts:                 dll.NewProc("FT_SetRts"),
		clrRts:                 dll.NewProc("FT_ClrRts"),
		setFlowControl:         dll.NewProc("FT_SetFlowControl"),
		setBaudRate:            dll.NewProc("FT_SetBaudRate"),
		setDataCharacteristics: dll.NewProc("FT_SetDataCharacteristics"),
		setBreakOn:             dll.NewProc("FT_SetBreakOn"),
		setBreakOff:            dll.NewProc("FT_SetBreakOff"),
		getModemStatus:         dll.NewProc("FT_GetModemStatus"),
		setChars:               dll.NewProc("FT_SetChars"),
		setLatencyTimer:        dll.NewProc("FT_SetLatencyTimer"),
		getLatencyTimer:        dll.NewProc("FT_GetLatencyTimer"),
		setBitMode:             dll.NewProc("FT_SetBitMode"),
		getBitMode:             dll.NewProc("FT_GetBitMode"),
		setTimeouts:            dll.NewProc("FT_SetTimeouts"),
		setUSBParameters:       dll.NewProc("FT_SetUSBParameters"),
		setEventNotification:   dll.NewProc("FT_SetEventNotification"),
		getQueueStatus:         dll.NewProc("FT_GetQueueStatus"),
		read_:                  dll.NewProc("FT_Read"),
		write_:                 dll.NewProc("FT_Write"),
		readEE:                 dll.NewProc("FT_ReadEE"),
		writeEE:                dll.NewProc("FT_WriteEE"),
		eraseEE:                dll.NewProc("FT_EraseEE"),
		eeUASize:               dll.NewProc("FT_EE_UASize"),
		eeUARead:               dll.NewProc("FT_EE_UARead"),
		eeUAWrite:              dll.NewProc("FT_EE_UAWrite"),
	}
	if err := dll.Load(); err != nil {
		return nil, &DriverNotAvailable{Reason: err.Error()}
	}
	for _, p := range []*windows.LazyProc{
		v.getLibraryVersion, v.createDeviceInfoList, v.getDeviceInfoDetail, v.openEx,
		v.close_, v.resetDevice, v.purge, v.setDtr, v.clrDtr, v.setRts, v.clrRts,
		v.setFlowControl, v.setBaudRate, v.setDataCharacteristics, v.setBreakOn,
		v.setBreakOff, v.getModemStatus, v.setChars, v.setLatencyTimer,
		v.getLatencyTimer, v.setBitMode, v.getBitMode, v.setTimeouts,
		v.setUSBParameters, v.setEventNotification, v.getQueueStatus, v.read_,
		v.write_, v.readEE, v.writeEE, v.eraseEE, v.eeUASize, v.eeUARead, v.eeUAWrite,
	} {
		if err := p.Find(); err != nil {
			return nil, &DriverNotAvailable{Reason: "missing entry point: " + err.Error()}
		}
	}
	return v, nil
}

func (v *windowsVendor) libraryVersion() (uint8, uint8, uint8) {
	var ver uint32
	v.getLibraryVersion.Call(uintptr(unsafe.Pointer(&ver)))
	return uint8(ver >> 16), uint8(ver >> 8), uint8(ver)
}

func (v *windowsVendor) createDeviceInfoList() (int, status) {
	var n uint32
	r, _, _ := v.createDeviceInfoList.Call(uintptr(unsafe.Pointer(&n)))
	return int(n), status(r)
}

func (v *windowsVendor) deviceInfoDetail(index int) (deviceInfoDetail, status) {
	var flags, chipType, id, locID uint32
	var h uintptr
	var serial [16]byte
	var desc [64]byte
	r, _, _ := v.getDeviceInfoDetail.Call(
		uintptr(index),
		uintptr(unsafe.Pointer(&flags)),
		uintptr(unsafe.Pointer(&chipType)),
		uintptr(unsafe.Pointer(&id)),
		uintptr(unsafe.Pointer(&locID)),
		uintptr(unsafe.Pointer(&serial[0])),
		uintptr(unsafe.Pointer(&desc[0])),
		uintptr(unsafe.Pointer(&h)),
	)
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

func (v *windowsVendor) openBySerial(serial string) (nativeHandle, status) {
	cstr, err := windows.BytePtrFromString(serial)
	if err != nil {
		return 0, status(6) // FT_INVALID_PARAMETER
	}
	const ftOpenBySerialNumber = 1
	var h uintptr
	r, _, _ := v.openEx.Call(uintptr(unsafe.Pointer(cstr)), uintptr(ftOpenBySerialNumber), uintptr(unsafe.Pointer(&h)))
	return nativeHandle(h), status(r)
}

func (v *windowsVendor) close(h nativeHandle) status {
	r, _, _ := v.close_.Call(uintptr(h))
	return status(r)
}

func (v *windowsVendor) resetDevice(h nativeHandle) status {
	r, _, _ := v.resetDevice.Call(uintptr(h))
	return status(r)
}

func (v *windowsVendor) purge(h nativeHandle, mask uint32) status {
	r, _, _ := v.purge.Call(uintptr(h), uintptr(mask))
	return status(r)
}

func (v *windowsVendor) setDTR(h nativeHandle, on bool) status {
	if on {
		r, _, _ := v.setDtr.Call(uintptr(h))
		return status(r)
	}
	r, _, _ := v.clrDtr.Call(uintptr(h))
	return status(r)
}

func (v *windowsVendor) setRTS(h nativeHandle, on bool) status {
	if on {
		r, _, _ := v.setRts.Call(uintptr(h))
		return status(r)
	}
	r, _, _ := v.clrRts.Call(uintptr(h))
	return status(r)
}

func (v *windowsVendor) setFlowControl(h nativeHandle, flowControl uint16, xon, xoff byte) status {
	r, _, _ := v.setFlowControl.Call(uintptr(h), uintptr(flowControl), uintptr(xon), uintptr(xoff))
	return status(r)
}

func (v *windowsVendor) setBaudRate(h nativeHandle, baud uint32) status {
	r, _, _ := v.setBaudRate.Call(uintptr(h), uintptr(baud))
	return status(r)
}

func (v *windowsVendor) setDataCharacteristics(h nativeHandle, wordLength, parity, stopBits byte) status {
	r, _, _ := v.setDataCharacteristics.Call(uintptr(h), uintptr(wordLength), uintptr(parity), uintptr(stopBits))
	return status(r)
}

func (v *windowsVendor) setBreakOn(h nativeHandle) status {
	r, _, _ := v.setBreakOn.Call(uintptr(h))
	return status(r)
}

func (v *windowsVendor) setBreakOff(h nativeHandle) status {
	r, _, _ := v.setBreakOff.Call(uintptr(h))
	return status(r)
}

func (v *windowsVendor) getModemStatus(h nativeHandle) (uint32, status) {
	var m uint32
	r, _, _ := v.getModemStatus.Call(uintptr(h), uintptr(unsafe.Pointer(&m)))
	return m, status(r)
}

func (v *windowsVendor) setChars(h nativeHandle, eventChar byte, eventEn bool, errorChar byte, errorEn bool) status {
	r, _, _ := v.setChars.Call(uintptr(h), uintptr(eventChar), boolUintptr(eventEn), uintptr(errorChar), boolUintptr(errorEn))
	return status(r)
}

func boolUintptr(b bool) uintptr {
	if b {
		return 1
	}
	return 0
}

func (v *windowsVendor) setLatencyTimer(h nativeHandle, ms byte) status {
	r, _, _ := v.setLatencyTimer.Call(uintptr(h), uintptr(ms))
	return status(r)
}

func (v *windowsVendor) getLatencyTimer(h nativeHandle) (byte, status) {
	var ms byte
	r, _, _ := v.getLatencyTimer.Call(uintptr(h), uintptr(unsafe.Pointer(&ms)))
	return ms, status(r)
}

func (v *windowsVendor) setBitMode(h nativeHandle, mask, mode byte) status {
	r, _, _ := v.setBitMode.Call(uintptr(h), uintptr(mask), uintptr(mode))
	return status(r)
}

func (v *windowsVendor) getBitMode(h nativeHandle) (byte, status) {
	var m byte
	r, _, _ := v.getBitMode.Call(uintptr(h), uintptr(unsafe.Pointer(&m)))
	return m, status(r)
}

func (v *windowsVendor) setTimeouts(h nativeHandle, readMS, writeMS uint32) status {
	r, _, _ := v.setTimeouts.Call(uintptr(h), uintptr(readMS), uintptr(writeMS))
	return status(r)
}

func (v *windowsVendor) setUSBParameters(h nativeHandle, in, out uint32) status {
	r, _, _ := v.setUSBParameters.Call(uintptr(h), uintptr(in), uintptr(out))
	return status(r)
}

func (v *windowsVendor) setEventNotification(h nativeHandle, eventMask uint32, event rxEvent) status {
	r, _, _ := v.setEventNotification.Call(uintptr(h), uintptr(eventMask), event.nativeToken())
	return status(r)
}

func (v *windowsVendor) getQueueStatus(h nativeHandle) (uint32, status) {
	var n uint32
	r, _, _ := v.getQueueStatus.Call(uintptr(h), uintptr(unsafe.Pointer(&n)))
	return n, status(r)
}

func (v *windowsVendor) read(h nativeHandle, buf []byte) (int, status) {
	var n uint32
	var p unsafe.Pointer
	if len(buf) > 0 {
		p = unsafe.Pointer(&buf[0])
	}
	r, _, _ := v.read_.Call(uintptr(h), uintptr(p), uintptr(len(buf)), uintptr(unsafe.Pointer(&n)))
	return int(n), status(r)
}

func (v *windowsVendor) write(h nativeHandle, buf []byte) (int, status) {
	var n uint32
	var p unsafe.Pointer
	if len(buf) > 0 {
		p = unsafe.Pointer(&buf[0])
	}
	r, _, _ := v.write_.Call(uintptr(h), uintptr(p), uintptr(len(buf)), uintptr(unsafe.Pointer(&n)))
	return int(n), status(r)
}

func (v *windowsVendor) readEE(h nativeHandle, offset uint16) (uint16, status) {
	var val uint16
	r, _, _ := v.readEE.Call(uintptr(h), uintptr(offset), uintptr(unsafe.Pointer(&val)))
	return val, status(r)
}

func (v *windowsVendor) writeEE(h nativeHandle, offset uint16, value uint16) status {
	r, _, _ := v.writeEE.Call(uintptr(h), uintptr(offset), uintptr(value))
	return status(r)
}

func (v *windowsVendor) eraseEE(h nativeHandle) status {
	r, _, _ := v.eraseEE.Call(uintptr(h))
	return status(r)
}

func (v *windowsVendor) eepromUASize(h nativeHandle) (int, status) {
	var n uint32
	r, _, _ := v.eeUASize.Call(uintptr(h), uintptr(unsafe.Pointer(&n)))
	return int(n), status(r)
}

func (v *windowsVendor) eepromUARead(h nativeHandle, buf []byte) status {
	var got uint32
	var p unsafe.Pointer
	if len(buf) > 0 {
		p = unsafe.Pointer(&buf[0])
	}
	r, _, _ := v.eeUARead.Call(uintptr(h), uintptr(p), uintptr(len(buf)), uintptr(unsafe.Pointer(&got)))
	return status(r)
}

func (v *windowsVendor) eepromUAWrite(h nativeHandle, buf []byte) status {
	var p unsafe.Pointer
	if len(buf) > 0 {
		p = unsafe.Pointer(&buf[0])
	}
	r, _, _ := v.eeUAWrite.Call(uintptr(h), uintptr(p), uintptr(len(buf)))
	return status(r)
}
