// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

import "strconv"

// status is the raw 32-bit value a D2XX entry point returns; 0 means
// success.
type status int32

const statusOK status = 0

// statusName decodes the 20 defined FT_STATUS codes plus an unknown
// fallback, following the D2XX Programmer's Guide.
func statusName(s status) string {
	switch s {
	case 0:
		return "FT_OK"
	case 1:
		return "FT_INVALID_HANDLE"
	case 2:
		return "FT_DEVICE_NOT_FOUND"
	case 3:
		return "FT_DEVICE_NOT_OPENED"
	case 4:
		return "FT_IO_ERROR"
	case 5:
		return "FT_INSUFFICIENT_RESOURCES"
	case 6:
		return "FT_INVALID_PARAMETER"
	case 7:
		return "FT_INVALID_BAUD_RATE"
	case 8:
		return "FT_DEVICE_NOT_OPENED_FOR_ERASE"
	case 9:
		return "FT_DEVICE_NOT_OPENED_FOR_WRITE"
	case 10:
		return "FT_FAILED_TO_WRITE_DEVICE"
	case 11:
		return "FT_EEPROM_READ_FAILED"
	case 12:
		return "FT_EEPROM_WRITE_FAILED"
	case 13:
		return "FT_EEPROM_ERASE_FAILED"
	case 14:
		return "FT_EEPROM_NOT_PRESENT"
	case 15:
		return "FT_EEPROM_NOT_PROGRAMMED"
	case 16:
		return "FT_INVALID_ARGS"
	case 17:
		return "FT_NOT_SUPPORTED"
	case 18:
		return "FT_OTHER_ERROR"
	case 19:
		return "FT_DEVICE_LIST_NOT_READY"
	default:
		return "FT_UNKNOWN(" + strconv.Itoa(int(s)) + ")"
	}
}

// toErr turns a non-zero vendor status into a *VendorCallFailed. It
// returns nil for statusOK.
func toErr(function string, params []interface{}, s status) error {
	if s == statusOK {
		return nil
	}
	return &VendorCallFailed{
		Function:   function,
		Params:     params,
		Status:     int32(s),
		StatusName: statusName(s),
	}
}
