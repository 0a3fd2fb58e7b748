// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

import (
	"golang.org/x/text/encoding/charmap"
)

// multiInterfaceTypes is the set of chip types the vendor driver
// enumerates as one row per physical interface.
var multiInterfaceTypes = map[DevType]bool{
	DevType2232C:  true,
	DevType2232H:  true,
	DevType2232HA: true,
	DevType2232HP: true,
	DevType2233HP: true,
	DevType4232H:  true,
	DevType4232HA: true,
	DevType4232HP: true,
	DevType4233HP: true,
}

// EnumerateDevices calls the vendor driver's list API, decodes each
// entry, and coalesces per-physical-interface rows of multi-interface
// chips into one LogicalDevice per physical chip, per spec.md 4.4.
func (b *Backend) EnumerateDevices() ([]*LogicalDevice, error) {
	n, s := b.v.createDeviceInfoList()
	if err := toErr("FT_CreateDeviceInfoList", nil, s); err != nil {
		return nil, err
	}

	order := make([]string, 0, n)
	bySerial := map[string]*LogicalDevice{}
	var anonymous []*LogicalDevice

	for i := 0; i < n; i++ {
		raw, s := b.v.deviceInfoDetail(i)
		if err := toErr("FT_GetDeviceInfoDetail", []interface{}{i}, s); err != nil {
			return nil, err
		}
		if raw.Flags&flagOpened != 0 {
			continue
		}

		serial := decodeCP1252(raw.SerialRaw)
		desc := decodeCP1252(raw.DescriptionRaw)
		var iface int
		var hasIface bool
		if multiInterfaceTypes[raw.ChipType] && serial != "" {
			last := serial[len(serial)-1]
			if last >= 'A' && last <= 'D' {
				iface = int(last - 'A')
				hasIface = true
				serial = serial[:len(serial)-1]
				desc = trimTrailingSpace(trimSuffixByte(desc, last))
			}
		}

		d := &LogicalDevice{
			Flags:         raw.Flags,
			ChipType:      raw.ChipType,
			ID:            raw.ID,
			LocID:         raw.LocID,
			handle:        nativeHandle(raw.Handle),
			Serial:        serial,
			Description:   desc,
			NumInterfaces: raw.ChipType.NumInterfaces(),
		}
		if hasIface {
			d.AvailableInterfaces = 1 << uint(iface)
		}

		if existing, ok := bySerial[serial]; ok && serial != "" {
			existing.AvailableInterfaces |= d.AvailableInterfaces
			continue
		}
		if serial != "" {
			bySerial[serial] = d
			order = append(order, serial)
		} else {
			anonymous = append(anonymous, d)
		}
	}

	out := make([]*LogicalDevice, 0, len(order)+len(anonymous))
	for _, serial := range order {
		out = append(out, bySerial[serial])
	}
	out = append(out, anonymous...)
	return out, nil
}

// decodeCP1252 decodes raw FTDI serial/description byte buffers as
// Windows code page 1252, per spec.md 4.4 step 2.
func decodeCP1252(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	s, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(s)
}

func trimSuffixByte(s string, c byte) string {
	if len(s) > 0 && s[len(s)-1] == c {
		return s[:len(s)-1]
	}
	return s
}

func trimTrailingSpace(s string) string {
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}
