// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package d2xxusb implements a generic-USB backend on top of FTDI's
// proprietary D2XX driver.
//
// It lets code written against a libusb-style backend interface
// (enumerate, open, claim interface, control transfer, bulk transfer)
// drive FTDI USB-to-serial and multi-protocol bridge chips through the
// vendor's D2XX kernel-mode driver instead of generic USB, which is
// useful on hosts where D2XX is the only working path to the chip.
//
// The package enumerates devices the D2XX driver exposes, synthesizes
// plausible USB descriptors for them, and translates every control and
// bulk transfer the caller issues into D2XX C ABI calls. Higher-level
// FTDI protocol handling (MPSSE, UART framing, I2C, SPI, GPIO) is not
// part of this package; it is expected to sit on top of it, talking to
// it exactly as it would to a real generic-USB backend.
package d2xxusb
