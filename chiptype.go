// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

import "strconv"

// DevType identifies the FTDI chip family behind a LogicalDevice, as
// reported by the vendor driver's FT_GetDeviceInfoDetail/FT_GetDeviceInfo
// chip-type field. Values follow the FT_DEVICE enum from FTDI's D2XX
// Programmer's Guide; the later HP/HA variants, which postdate the
// classic enum, are assigned sequential codes following DevTypeUMFTPD3A,
// ending with DevType4232HA (see DESIGN.md).
type DevType uint32

const (
	DevTypeBM DevType = iota
	DevTypeAM
	DevType100AX
	DevTypeUnknown
	DevType2232C
	DevType232R
	DevType2232H
	DevType4232H
	DevType232H
	DevTypeXSeries
	DevType4222H0
	DevType4222H12
	DevType4222H3
	DevType4222Prog
	DevType900
	DevType930
	DevTypeUMFTPD3A
	DevType2233HP
	DevType4233HP
	DevType2232HP
	DevType4232HP
	DevType233HP
	DevType232HP
	DevType2232HA
	DevType4232HA
)

// DevType232RN is an alias: the D2XX driver does not distinguish the RN
// revision of the 232R from the 232R itself at the FT_DEVICE level.
const DevType232RN = DevType232R

func (t DevType) String() string {
	switch t {
	case DevTypeBM:
		return "FT232BM"
	case DevTypeAM:
		return "FT232AM"
	case DevType100AX:
		return "FT100AX"
	case DevType2232C:
		return "FT2232C"
	case DevType232R:
		return "FT232R"
	case DevType2232H:
		return "FT2232H"
	case DevType4232H:
		return "FT4232H"
	case DevType232H:
		return "FT232H"
	case DevTypeXSeries:
		return "FT-X"
	case DevType2233HP:
		return "FT2233HP"
	case DevType4233HP:
		return "FT4233HP"
	case DevType2232HP:
		return "FT2232HP"
	case DevType4232HP:
		return "FT4232HP"
	case DevType233HP:
		return "FT233HP"
	case DevType232HP:
		return "FT232HP"
	case DevType2232HA:
		return "FT2232HA"
	case DevType4232HA:
		return "FT4232HA"
	case DevTypeUnknown:
		return "unknown"
	default:
		return "DevType(" + strconv.FormatUint(uint64(t), 10) + ")"
	}
}

// IsRType reports whether t belongs to the R-type family: the original
// BM, 232R (and its RN revision), and 2232C.
func (t DevType) IsRType() bool {
	switch t {
	case DevTypeBM, DevType232R, DevType2232C:
		return true
	default:
		return false
	}
}

// IsHType reports whether t belongs to the H-type family.
func (t DevType) IsHType() bool {
	switch t {
	case DevType232H, DevType232HP, DevType233HP, DevType2232H, DevType2232HA,
		DevType2232HP, DevType2233HP, DevType4232H, DevType4232HA, DevType4232HP,
		DevType4233HP:
		return true
	default:
		return false
	}
}

// IsMultiInterface reports whether devices of this chip type expose more
// than one physical interface to the vendor driver.
func (t DevType) IsMultiInterface() bool {
	return t.NumInterfaces() > 1
}

// NumInterfaces returns the number of physical interfaces a chip of this
// type exposes: 1, 2, or 4. It is a property of chip type only, never
// derived from the vendor driver's per-interface enumeration rows.
func (t DevType) NumInterfaces() int {
	switch t {
	case DevType2232C, DevType2232H, DevType2232HA, DevType2232HP, DevType2233HP:
		return 2
	case DevType4232H, DevType4232HA, DevType4232HP, DevType4233HP:
		return 4
	default:
		return 1
	}
}
