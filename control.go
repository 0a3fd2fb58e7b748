// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

import (
	"encoding/binary"
	"log"
	"time"
	"unicode/utf16"
)

// bmRequestType classification, per spec.md 4.7.
const (
	reqTypeStandard = 0x00
	reqTypeVendor   = 0x40
	reqTypeMask     = 0x7F
	reqDirIn        = 0x80
)

// Standard USB requests this backend recognizes.
const (
	stdGetDescriptor = 6
	descTypeString   = 3
)

// FTDI vendor-specific SIO requests.
const (
	sioReset           = 0x00
	sioSetModemCtrl    = 0x01
	sioSetFlowCtrl     = 0x02
	sioSetBaudrate     = 0x03
	sioSetData         = 0x04
	sioPollModemStatus = 0x05
	sioSetEventChar    = 0x06
	sioSetErrorChar    = 0x07
	sioSetLatencyTimer = 0x09
	sioGetLatencyTimer = 0x0A
	sioSetBitmode      = 0x0B
	sioReadPins        = 0x0C
	sioReadEEPROM      = 0x90
	sioWriteEEPROM     = 0x91
	sioEraseEEPROM     = 0x92
)

// SIO_RESET wValue sub-codes.
const (
	sioResetSIO     = 0
	sioResetPurgeRX = 1
	sioResetPurgeTX = 2
)

// Flow-control XON/XOFF bytes FTDI chips use, per spec.md 4.7.
const (
	xonChar  = 0x11
	xoffChar = 0x13
)

// ControlTransfer routes (bmRequestType, bRequest, wValue, wIndex) to the
// standard-descriptor responder or a vendor SIO action, per spec.md 4.7.
func (b *Backend) ControlTransfer(h *OpenHandle, bmRequestType, bRequest byte, wValue, wIndex uint16, data []byte, timeout time.Duration) (int, error) {
	dirIn := bmRequestType&reqDirIn != 0
	switch bmRequestType & reqTypeMask {
	case reqTypeStandard:
		return b.controlStandard(h, bRequest, wValue, dirIn, data)
	case reqTypeVendor:
		return b.controlVendor(h, bRequest, wValue, wIndex, data)
	default:
		return 0, &NotImplemented{Detail: "bmRequestType"}
	}
}

func (b *Backend) controlStandard(h *OpenHandle, bRequest byte, wValue uint16, dirIn bool, data []byte) (int, error) {
	if bRequest != stdGetDescriptor || !dirIn {
		return 0, &NotImplemented{Detail: "standard request"}
	}
	descType := byte(wValue >> 8)
	if descType != descTypeString {
		return 0, &NotImplemented{Detail: "descriptor type"}
	}
	index := byte(wValue)
	switch index {
	case 0:
		copy(data, []byte{0x04, 0x03, 0x09, 0x04})
		return 4, nil
	case 1:
		return writeStringDescriptor(data, "FTDI"), nil
	case 2:
		return writeStringDescriptor(data, h.Device.Description), nil
	case 3:
		return writeStringDescriptor(data, h.Device.Serial), nil
	default:
		return 0, &NotImplemented{Detail: "string index"}
	}
}

// writeStringDescriptor encodes s as a USB string descriptor (length
// byte, type byte, UTF-16LE payload) into data and returns the length.
func writeStringDescriptor(data []byte, s string) int {
	u16 := utf16.Encode([]rune(s))
	data[0] = byte(2 * (len(u16) + 1))
	data[1] = descTypeString
	off := 2
	for _, c := range u16 {
		binary.LittleEndian.PutUint16(data[off:], c)
		off += 2
	}
	return int(data[0])
}

func (b *Backend) controlVendor(h *OpenHandle, bRequest byte, wValue, wIndex uint16, data []byte) (int, error) {
	switch bRequest {
	case sioReset:
		return 0, b.sioReset(h, wValue)
	case sioSetModemCtrl:
		return 0, b.sioSetModemCtrl(h, wValue)
	case sioSetFlowCtrl:
		s := b.v.setFlowControl(h.h, wIndex&0xFF00, xonChar, xoffChar)
		return 0, toErr("FT_SetFlowControl", []interface{}{wIndex & 0xFF00}, s)
	case sioSetBaudrate:
		return 0, b.sioSetBaudRate(h, wValue, wIndex)
	case sioSetData:
		return 0, b.sioSetData(h, wValue)
	case sioPollModemStatus:
		m, s := b.v.getModemStatus(h.h)
		if err := toErr("FT_GetModemStatus", nil, s); err != nil {
			return 0, err
		}
		data[0] = byte(m)
		data[1] = byte(m >> 8)
		return 2, nil
	case sioSetEventChar:
		h.eventChar = byte(wValue)
		h.eventEnable = wValue&0xFF00 != 0
		s := b.v.setChars(h.h, h.eventChar, h.eventEnable, h.errorChar, h.errorEnable)
		return 0, toErr("FT_SetChars", nil, s)
	case sioSetErrorChar:
		h.errorChar = byte(wValue)
		h.errorEnable = wValue&0xFF00 != 0
		s := b.v.setChars(h.h, h.eventChar, h.eventEnable, h.errorChar, h.errorEnable)
		return 0, toErr("FT_SetChars", nil, s)
	case sioSetLatencyTimer:
		s := b.v.setLatencyTimer(h.h, byte(wValue))
		return 0, toErr("FT_SetLatencyTimer", []interface{}{byte(wValue)}, s)
	case sioGetLatencyTimer:
		ms, s := b.v.getLatencyTimer(h.h)
		if err := toErr("FT_GetLatencyTimer", nil, s); err != nil {
			return 0, err
		}
		data[0] = ms
		return 1, nil
	case sioSetBitmode:
		mode := byte(wValue >> 8)
		mask := byte(wValue)
		s := b.v.setBitMode(h.h, mask, mode)
		return 0, toErr("FT_SetBitMode", []interface{}{mask, mode}, s)
	case sioReadPins:
		pins, s := b.v.getBitMode(h.h)
		if err := toErr("FT_GetBitMode", nil, s); err != nil {
			return 0, err
		}
		data[0] = pins
		return 1, nil
	case sioReadEEPROM:
		if len(data) < 2 {
			return 0, &InvalidBuffer{Need: 2, Got: len(data)}
		}
		v, s := b.v.readEE(h.h, wIndex)
		if err := toErr("FT_ReadEE", []interface{}{wIndex}, s); err != nil {
			return 0, err
		}
		data[0] = byte(v)
		data[1] = byte(v >> 8)
		return 2, nil
	case sioWriteEEPROM:
		s := b.v.writeEE(h.h, wIndex, wValue)
		return 0, toErr("FT_WriteEE", []interface{}{wIndex, wValue}, s)
	case sioEraseEEPROM:
		s := b.v.eraseEE(h.h)
		return 0, toErr("FT_EraseEE", nil, s)
	default:
		return 0, &NotImplemented{Detail: "SIO request"}
	}
}

func (b *Backend) sioReset(h *OpenHandle, wValue uint16) error {
	switch wValue {
	case sioResetSIO:
		return toErr("FT_ResetDevice", nil, b.v.resetDevice(h.h))
	case sioResetPurgeRX:
		return toErr("FT_Purge", []interface{}{"RX"}, b.v.purge(h.h, purgeRX))
	case sioResetPurgeTX:
		return toErr("FT_Purge", []interface{}{"TX"}, b.v.purge(h.h, purgeTX))
	default:
		return &NotImplemented{Detail: "reset sub-request"}
	}
}

func (b *Backend) sioSetModemCtrl(h *OpenHandle, wValue uint16) error {
	if wValue&0x0100 != 0 {
		if s := b.v.setDTR(h.h, wValue&0x0001 != 0); s != statusOK {
			return toErr("FT_SetDtr/FT_ClrDtr", nil, s)
		}
	}
	if wValue&0x0200 != 0 {
		if s := b.v.setRTS(h.h, wValue&0x0002 != 0); s != statusOK {
			return toErr("FT_SetRts/FT_ClrRts", nil, s)
		}
	}
	return nil
}

// sioSetBaudRate decodes the FTDI baud-rate divisor encoding for
// observability, then passes baudrate=0 to the vendor driver, which
// picks the actual rate from the serial number. See SPEC_FULL.md section
// 9: this is a documented deviation, not a bug.
func (b *Backend) sioSetBaudRate(h *OpenHandle, wValue, wIndex uint16) error {
	divisor := wValue & 0x3FFF
	subdivisor := (wValue >> 14) & 3
	if h.Device.ChipType.IsRType() {
		subdivisor |= uint16(wIndex&1) << 2
	} else if h.Device.ChipType.IsHType() {
		subdivisor |= (wIndex & 0x100) >> 6
	}
	baseClock := uint32(3000000)
	if wIndex>>9&1 != 0 {
		baseClock = 12000000
	}
	log.Printf("d2xxusb: SIO_SET_BAUDRATE divisor=%#x subdivisor=%#x baseClock=%d, passing 0 to FT_SetBaudRate", divisor, subdivisor, baseClock)
	return toErr("FT_SetBaudRate", []interface{}{uint32(0)}, b.v.setBaudRate(h.h, 0))
}

func (b *Backend) sioSetData(h *OpenHandle, wValue uint16) error {
	wordLength := byte(wValue & 0xF)
	parity := byte((wValue >> 8) & 0x7)
	stopBits := byte((wValue >> 11) & 0x3)
	lineBreak := (wValue >> 14) & 0x1
	if s := b.v.setDataCharacteristics(h.h, wordLength, parity, stopBits); s != statusOK {
		return toErr("FT_SetDataCharacteristics", []interface{}{wordLength, parity, stopBits}, s)
	}
	if lineBreak != 0 {
		return toErr("FT_SetBreakOn", nil, b.v.setBreakOn(h.h))
	}
	return toErr("FT_SetBreakOff", nil, b.v.setBreakOff(h.h))
}
