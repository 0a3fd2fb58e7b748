// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

import "time"

// fakeVendor is a mock vendorAPI, in the spirit of
// hostextra/d2xx/driver_test.go's d2xxFakeHandle: calls record the
// arguments the tests inspect; openBySerial, setTimeouts and
// setEventNotification return an overridable status, close fails on an
// already-closed handle, and every other call returns statusOK.
type fakeVendor struct {
	devices []deviceInfoDetail

	openSerial string
	openHandle nativeHandle
	openStatus status
	closedHandles map[nativeHandle]bool

	timeoutsStatus         status
	timeoutsCalls          []struct{ readMS, writeMS uint32 }
	eventNotificationStatus status
	eventNotificationCalls []uint32
	callOrder              []string

	queueDepth uint32
	rxData     []byte

	writes [][]byte

	modemStatus  uint32
	latencyTimer byte
	bitModePins  byte

	baudRateCalls []uint32
	flowControlCalls []uint16
	dataCharCalls [][3]byte
	breakOnCalls, breakOffCalls int
	dtrCalls, rtsCalls []bool
	charsCalls []struct {
		eventChar   byte
		eventEnable bool
		errorChar   byte
		errorEnable bool
	}
	latencyTimerSet byte
	bitModeCalls    []struct{ mask, mode byte }
	eeValues        map[uint16]uint16
	eeWrites        []struct {
		offset uint16
		value  uint16
	}
	eraseCalls int
	purgeCalls []uint32
	resetCalls int
}

func newFakeVendor() *fakeVendor {
	return &fakeVendor{closedHandles: map[nativeHandle]bool{}, eeValues: map[uint16]uint16{}}
}

func (f *fakeVendor) libraryVersion() (uint8, uint8, uint8) { return 1, 4, 27 }

func (f *fakeVendor) createDeviceInfoList() (int, status) { return len(f.devices), statusOK }

func (f *fakeVendor) deviceInfoDetail(index int) (deviceInfoDetail, status) {
	if index < 0 || index >= len(f.devices) {
		return deviceInfoDetail{}, status(6)
	}
	return f.devices[index], statusOK
}

func (f *fakeVendor) openBySerial(serial string) (nativeHandle, status) {
	f.openSerial = serial
	f.callOrder = append(f.callOrder, "open")
	if f.openStatus != statusOK {
		return 0, f.openStatus
	}
	if f.openHandle == 0 {
		f.openHandle = 1
	}
	return f.openHandle, statusOK
}

func (f *fakeVendor) close(h nativeHandle) status {
	f.callOrder = append(f.callOrder, "close")
	if f.closedHandles[h] {
		return status(1) // FT_INVALID_HANDLE
	}
	f.closedHandles[h] = true
	return statusOK
}

func (f *fakeVendor) resetDevice(h nativeHandle) status {
	f.resetCalls++
	return statusOK
}

func (f *fakeVendor) purge(h nativeHandle, mask uint32) status {
	f.purgeCalls = append(f.purgeCalls, mask)
	return statusOK
}

func (f *fakeVendor) setDTR(h nativeHandle, on bool) status {
	f.dtrCalls = append(f.dtrCalls, on)
	return statusOK
}

func (f *fakeVendor) setRTS(h nativeHandle, on bool) status {
	f.rtsCalls = append(f.rtsCalls, on)
	return statusOK
}

func (f *fakeVendor) setFlowControl(h nativeHandle, flowControl uint16, xon, xoff byte) status {
	f.flowControlCalls = append(f.flowControlCalls, flowControl)
	return statusOK
}

func (f *fakeVendor) setBaudRate(h nativeHandle, baud uint32) status {
	f.baudRateCalls = append(f.baudRateCalls, baud)
	return statusOK
}

func (f *fakeVendor) setDataCharacteristics(h nativeHandle, wordLength, parity, stopBits byte) status {
	f.dataCharCalls = append(f.dataCharCalls, [3]byte{wordLength, parity, stopBits})
	return statusOK
}

func (f *fakeVendor) setBreakOn(h nativeHandle) status  { f.breakOnCalls++; return statusOK }
func (f *fakeVendor) setBreakOff(h nativeHandle) status { f.breakOffCalls++; return statusOK }

func (f *fakeVendor) getModemStatus(h nativeHandle) (uint32, status) { return f.modemStatus, statusOK }

func (f *fakeVendor) setChars(h nativeHandle, eventChar byte, eventEn bool, errorChar byte, errorEn bool) status {
	f.charsCalls = append(f.charsCalls, struct {
		eventChar   byte
		eventEnable bool
		errorChar   byte
		errorEnable bool
	}{eventChar, eventEn, errorChar, errorEn})
	return statusOK
}

func (f *fakeVendor) setLatencyTimer(h nativeHandle, ms byte) status {
	f.latencyTimerSet = ms
	return statusOK
}

func (f *fakeVendor) getLatencyTimer(h nativeHandle) (byte, status) { return f.latencyTimer, statusOK }

func (f *fakeVendor) setBitMode(h nativeHandle, mask, mode byte) status {
	f.bitModeCalls = append(f.bitModeCalls, struct{ mask, mode byte }{mask, mode})
	return statusOK
}

func (f *fakeVendor) getBitMode(h nativeHandle) (byte, status) { return f.bitModePins, statusOK }

func (f *fakeVendor) setTimeouts(h nativeHandle, readMS, writeMS uint32) status {
	f.callOrder = append(f.callOrder, "timeouts")
	f.timeoutsCalls = append(f.timeoutsCalls, struct{ readMS, writeMS uint32 }{readMS, writeMS})
	return f.timeoutsStatus
}

func (f *fakeVendor) setUSBParameters(h nativeHandle, in, out uint32) status { return statusOK }

func (f *fakeVendor) setEventNotification(h nativeHandle, eventMask uint32, event rxEvent) status {
	f.callOrder = append(f.callOrder, "eventNotification")
	f.eventNotificationCalls = append(f.eventNotificationCalls, eventMask)
	return f.eventNotificationStatus
}

func (f *fakeVendor) getQueueStatus(h nativeHandle) (uint32, status) { return f.queueDepth, statusOK }

func (f *fakeVendor) read(h nativeHandle, buf []byte) (int, status) {
	n := copy(buf, f.rxData)
	return n, statusOK
}

func (f *fakeVendor) write(h nativeHandle, buf []byte) (int, status) {
	cp := append([]byte(nil), buf...)
	f.writes = append(f.writes, cp)
	return len(buf), statusOK
}

func (f *fakeVendor) readEE(h nativeHandle, offset uint16) (uint16, status) {
	return f.eeValues[offset], statusOK
}

func (f *fakeVendor) writeEE(h nativeHandle, offset uint16, value uint16) status {
	f.eeWrites = append(f.eeWrites, struct {
		offset uint16
		value  uint16
	}{offset, value})
	return statusOK
}

func (f *fakeVendor) eraseEE(h nativeHandle) status { f.eraseCalls++; return statusOK }

func (f *fakeVendor) eepromUASize(h nativeHandle) (int, status) { return 0, statusOK }
func (f *fakeVendor) eepromUARead(h nativeHandle, buf []byte) status  { return statusOK }
func (f *fakeVendor) eepromUAWrite(h nativeHandle, buf []byte) status { return statusOK }

// fakeRxEvent is a mock rxEvent that signals or times out on command,
// used in place of the real platform RX-wait primitive so tests never
// touch OS event objects.
type fakeRxEvent struct {
	signals   bool
	closeCalls int
}

func (e *fakeRxEvent) wait(timeout time.Duration) bool { return e.signals }
func (e *fakeRxEvent) nativeToken() uintptr            { return 0 }
func (e *fakeRxEvent) close() error {
	e.closeCalls++
	return nil
}
