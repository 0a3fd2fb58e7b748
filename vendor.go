// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

import (
	"log"
	"time"
)

// nativeHandle is the opaque handle the vendor driver hands back from an
// open call. It is never interpreted by this package, only passed back
// to the driver.
type nativeHandle uintptr

// deviceInfoDetail is the raw, undecoded row the vendor driver's
// FT_GetDeviceInfoDetail returns for one enumeration entry. Serial and
// description are left as raw bytes; the enumerator decodes them as
// Windows code page 1252.
type deviceInfoDetail struct {
	Flags          uint32
	ChipType       DevType
	ID             uint32
	LocID          uint32
	Handle         uintptr
	SerialRaw      []byte
	DescriptionRaw []byte
}

// vendorAPI is the typed call wrapper's contract: one Go method per D2XX
// entry point, IN parameters passed as given, OUT parameters returned as
// additional return values, status always last (libraryVersion, which
// has no status to report, returns only the version). Platform-specific
// binding code (vendor_windows.go, vendor_posix.go) implements it against
// the real vendor shared library; tests implement it with a fake.
type vendorAPI interface {
	libraryVersion() (major, minor, build uint8)
	createDeviceInfoList() (int, status)
	deviceInfoDetail(index int) (deviceInfoDetail, status)
	openBySerial(serial string) (nativeHandle, status)
	close(h nativeHandle) status
	resetDevice(h nativeHandle) status
	purge(h nativeHandle, mask uint32) status
	setDTR(h nativeHandle, on bool) status
	setRTS(h nativeHandle, on bool) status
	setFlowControl(h nativeHandle, flowControl uint16, xon, xoff byte) status
	setBaudRate(h nativeHandle, baud uint32) status
	setDataCharacteristics(h nativeHandle, wordLength, parity, stopBits byte) status
	setBreakOn(h nativeHandle) status
	setBreakOff(h nativeHandle) status
	getModemStatus(h nativeHandle) (uint32, status)
	setChars(h nativeHandle, eventChar byte, eventEn bool, errorChar byte, errorEn bool) status
	setLatencyTimer(h nativeHandle, ms byte) status
	getLatencyTimer(h nativeHandle) (byte, status)
	setBitMode(h nativeHandle, mask, mode byte) status
	getBitMode(h nativeHandle) (byte, status)
	setTimeouts(h nativeHandle, readMS, writeMS uint32) status
	setUSBParameters(h nativeHandle, in, out uint32) status
	setEventNotification(h nativeHandle, eventMask uint32, event rxEvent) status
	getQueueStatus(h nativeHandle) (uint32, status)
	read(h nativeHandle, buf []byte) (int, status)
	write(h nativeHandle, buf []byte) (int, status)
	readEE(h nativeHandle, offset uint16) (uint16, status)
	writeEE(h nativeHandle, offset uint16, value uint16) status
	eraseEE(h nativeHandle) status
	eepromUASize(h nativeHandle) (int, status)
	eepromUARead(h nativeHandle, buf []byte) status
	eepromUAWrite(h nativeHandle, buf []byte) status
}

// nulTerminated returns the prefix of b up to (not including) its first
// NUL byte, the way hostextra/d2xx's toStr helper decodes fixed-size
// C string buffers.
func nulTerminated(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}
	return b
}

// FT_SetEventNotification event masks.
const (
	eventRXChar = 1 << 0
)

// FT_PURGE masks.
const (
	purgeRX = 1
	purgeTX = 2
)

// loggingVendor wraps a vendorAPI, logging the name, parameters,
// resulting status and duration of every call except libraryVersion and
// getQueueStatus, the way hostextra/d2xx's d2xxLoggingHandle wraps its
// d2xxHandle. Lines are written with logger.Printf and carry no log
// level; they are not filtered as debug output.
type loggingVendor struct {
	v      vendorAPI
	logger *log.Logger
}

func newLoggingVendor(v vendorAPI, logger *log.Logger) *loggingVendor {
	if logger == nil {
		logger = log.Default()
	}
	return &loggingVendor{v: v, logger: logger}
}

func (l *loggingVendor) logCall(start time.Time, name string, params []interface{}, s status) {
	l.logger.Printf("d2xxusb: %s%v -> %s (%s)", name, params, statusName(s), time.Since(start).Round(time.Microsecond))
}

func (l *loggingVendor) libraryVersion() (uint8, uint8, uint8) {
	return l.v.libraryVersion()
}

func (l *loggingVendor) createDeviceInfoList() (int, status) {
	start := time.Now()
	n, s := l.v.createDeviceInfoList()
	l.logCall(start, "FT_CreateDeviceInfoList", nil, s)
	return n, s
}

func (l *loggingVendor) deviceInfoDetail(index int) (deviceInfoDetail, status) {
	start := time.Now()
	d, s := l.v.deviceInfoDetail(index)
	l.logCall(start, "FT_GetDeviceInfoDetail", []interface{}{index}, s)
	return d, s
}

func (l *loggingVendor) openBySerial(serial string) (nativeHandle, status) {
	start := time.Now()
	h, s := l.v.openBySerial(serial)
	l.logCall(start, "FT_OpenEx", []interface{}{serial}, s)
	return h, s
}

func (l *loggingVendor) close(h nativeHandle) status {
	start := time.Now()
	s := l.v.close(h)
	l.logCall(start, "FT_Close", []interface{}{h}, s)
	return s
}

func (l *loggingVendor) resetDevice(h nativeHandle) status {
	start := time.Now()
	s := l.v.resetDevice(h)
	l.logCall(start, "FT_ResetDevice", []interface{}{h}, s)
	return s
}

func (l *loggingVendor) purge(h nativeHandle, mask uint32) status {
	start := time.Now()
	s := l.v.purge(h, mask)
	l.logCall(start, "FT_Purge", []interface{}{h, mask}, s)
	return s
}

func (l *loggingVendor) setDTR(h nativeHandle, on bool) status {
	start := time.Now()
	s := l.v.setDTR(h, on)
	l.logCall(start, "FT_SetDtr/FT_ClrDtr", []interface{}{h, on}, s)
	return s
}

func (l *loggingVendor) setRTS(h nativeHandle, on bool) status {
	start := time.Now()
	s := l.v.setRTS(h, on)
	l.logCall(start, "FT_SetRts/FT_ClrRts", []interface{}{h, on}, s)
	return s
}

func (l *loggingVendor) setFlowControl(h nativeHandle, flowControl uint16, xon, xoff byte) status {
	start := time.Now()
	s := l.v.setFlowControl(h, flowControl, xon, xoff)
	l.logCall(start, "FT_SetFlowControl", []interface{}{h, flowControl, xon, xoff}, s)
	return s
}

func (l *loggingVendor) setBaudRate(h nativeHandle, baud uint32) status {
	start := time.Now()
	s := l.v.setBaudRate(h, baud)
	l.logCall(start, "FT_SetBaudRate", []interface{}{h, baud}, s)
	return s
}

func (l *loggingVendor) setDataCharacteristics(h nativeHandle, wordLength, parity, stopBits byte) status {
	start := time.Now()
	s := l.v.setDataCharacteristics(h, wordLength, parity, stopBits)
	l.logCall(start, "FT_SetDataCharacteristics", []interface{}{h, wordLength, parity, stopBits}, s)
	return s
}

func (l *loggingVendor) setBreakOn(h nativeHandle) status {
	start := time.Now()
	s := l.v.setBreakOn(h)
	l.logCall(start, "FT_SetBreakOn", []interface{}{h}, s)
	return s
}

func (l *loggingVendor) setBreakOff(h nativeHandle) status {
	start := time.Now()
	s := l.v.setBreakOff(h)
	l.logCall(start, "FT_SetBreakOff", []interface{}{h}, s)
	return s
}

func (l *loggingVendor) getModemStatus(h nativeHandle) (uint32, status) {
	start := time.Now()
	m, s := l.v.getModemStatus(h)
	l.logCall(start, "FT_GetModemStatus", []interface{}{h}, s)
	return m, s
}

func (l *loggingVendor) setChars(h nativeHandle, eventChar byte, eventEn bool, errorChar byte, errorEn bool) status {
	start := time.Now()
	s := l.v.setChars(h, eventChar, eventEn, errorChar, errorEn)
	l.logCall(start, "FT_SetChars", []interface{}{h, eventChar, eventEn, errorChar, errorEn}, s)
	return s
}

func (l *loggingVendor) setLatencyTimer(h nativeHandle, ms byte) status {
	start := time.Now()
	s := l.v.setLatencyTimer(h, ms)
	l.logCall(start, "FT_SetLatencyTimer", []interface{}{h, ms}, s)
	return s
}

func (l *loggingVendor) getLatencyTimer(h nativeHandle) (byte, status) {
	start := time.Now()
	v, s := l.v.getLatencyTimer(h)
	l.logCall(start, "FT_GetLatencyTimer", []interface{}{h}, s)
	return v, s
}

func (l *loggingVendor) setBitMode(h nativeHandle, mask, mode byte) status {
	start := time.Now()
	s := l.v.setBitMode(h, mask, mode)
	l.logCall(start, "FT_SetBitMode", []interface{}{h, mask, mode}, s)
	return s
}

func (l *loggingVendor) getBitMode(h nativeHandle) (byte, status) {
	start := time.Now()
	v, s := l.v.getBitMode(h)
	l.logCall(start, "FT_GetBitMode", []interface{}{h}, s)
	return v, s
}

func (l *loggingVendor) setTimeouts(h nativeHandle, readMS, writeMS uint32) status {
	start := time.Now()
	s := l.v.setTimeouts(h, readMS, writeMS)
	l.logCall(start, "FT_SetTimeouts", []interface{}{h, readMS, writeMS}, s)
	return s
}

func (l *loggingVendor) setUSBParameters(h nativeHandle, in, out uint32) status {
	start := time.Now()
	s := l.v.setUSBParameters(h, in, out)
	l.logCall(start, "FT_SetUSBParameters", []interface{}{h, in, out}, s)
	return s
}

func (l *loggingVendor) setEventNotification(h nativeHandle, eventMask uint32, event rxEvent) status {
	start := time.Now()
	s := l.v.setEventNotification(h, eventMask, event)
	l.logCall(start, "FT_SetEventNotification", []interface{}{h, eventMask}, s)
	return s
}

func (l *loggingVendor) getQueueStatus(h nativeHandle) (uint32, status) {
	// FT_GetQueueStatus is on the bulk_read hot path; skip logging it
	// to avoid drowning out everything else, matching
	// hostextra/d2xx's annotation that this call is latency-sensitive.
	return l.v.getQueueStatus(h)
}

func (l *loggingVendor) read(h nativeHandle, buf []byte) (int, status) {
	start := time.Now()
	n, s := l.v.read(h, buf)
	l.logCall(start, "FT_Read", []interface{}{h, len(buf)}, s)
	return n, s
}

func (l *loggingVendor) write(h nativeHandle, buf []byte) (int, status) {
	start := time.Now()
	n, s := l.v.write(h, buf)
	l.logCall(start, "FT_Write", []interface{}{h, len(buf)}, s)
	return n, s
}

func (l *loggingVendor) readEE(h nativeHandle, offset uint16) (uint16, status) {
	start := time.Now()
	v, s := l.v.readEE(h, offset)
	l.logCall(start, "FT_ReadEE", []interface{}{h, offset}, s)
	return v, s
}

func (l *loggingVendor) writeEE(h nativeHandle, offset uint16, value uint16) status {
	start := time.Now()
	s := l.v.writeEE(h, offset, value)
	l.logCall(start, "FT_WriteEE", []interface{}{h, offset, value}, s)
	return s
}

func (l *loggingVendor) eraseEE(h nativeHandle) status {
	start := time.Now()
	s := l.v.eraseEE(h)
	l.logCall(start, "FT_EraseEE", []interface{}{h}, s)
	return s
}

func (l *loggingVendor) eepromUASize(h nativeHandle) (int, status) {
	start := time.Now()
	n, s := l.v.eepromUASize(h)
	l.logCall(start, "FT_EE_UASize", []interface{}{h}, s)
	return n, s
}

func (l *loggingVendor) eepromUARead(h nativeHandle, buf []byte) status {
	start := time.Now()
	s := l.v.eepromUARead(h, buf)
	l.logCall(start, "FT_EE_UARead", []interface{}{h, len(buf)}, s)
	return s
}

func (l *loggingVendor) eepromUAWrite(h nativeHandle, buf []byte) status {
	start := time.Now()
	s := l.v.eepromUAWrite(h, buf)
	l.logCall(start, "FT_EE_UAWrite", []interface{}{h, len(buf)}, s)
	return s
}
