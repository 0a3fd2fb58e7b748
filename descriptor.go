// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

// DeviceDescriptor mirrors the USB standard device descriptor, synthesized
// from a LogicalDevice's enumeration data. All fields not derived from
// the device are fixed, per spec.md 4.3.
type DeviceDescriptor struct {
	BcdUSB             uint16
	BDeviceClass       byte
	BDeviceSubClass    byte
	BDeviceProtocol    byte
	BMaxPacketSize0    byte
	IDVendor           uint16
	IDProduct          uint16
	BcdDevice          uint16
	IManufacturer      byte
	IProduct           byte
	ISerialNumber      byte
	BNumConfigurations byte
	Bus                int
	Address            int
}

// ConfigurationDescriptor mirrors the USB standard configuration
// descriptor. This backend always synthesizes exactly one configuration.
type ConfigurationDescriptor struct {
	WTotalLength        uint16
	BNumInterfaces      byte
	BConfigurationValue byte
	BmAttributes        byte
	BMaxPower           byte
}

// InterfaceDescriptor mirrors the USB standard interface descriptor for
// one of the device's logical interfaces.
type InterfaceDescriptor struct {
	BInterfaceNumber   byte
	BAlternateSetting  byte
	BNumEndpoints      byte
	BInterfaceClass    byte
	BInterfaceSubClass byte
	BInterfaceProtocol byte
	IInterface         byte
}

// EndpointDescriptor mirrors the USB standard endpoint descriptor. Every
// interface this backend synthesizes has exactly two: IN and OUT.
type EndpointDescriptor struct {
	BEndpointAddress byte
	BmAttributes     byte
	WMaxPacketSize   uint16
	BInterval        byte
}

const (
	epIn  = 0x81
	epOut = 0x02

	epAttrBulk = 0x02
	maxPacket  = 64
)

// DeviceDescriptor synthesizes d's device descriptor, per spec.md 4.3.
func (b *Backend) DeviceDescriptor(d *LogicalDevice) DeviceDescriptor {
	return DeviceDescriptor{
		BcdUSB:             0x0200,
		BMaxPacketSize0:    0x40,
		IDVendor:           d.VendorID(),
		IDProduct:          d.ProductID(),
		BcdDevice:          0x0900,
		IManufacturer:      1,
		IProduct:           2,
		ISerialNumber:      3,
		BNumConfigurations: 1,
		Bus:                d.Bus(),
		Address:            d.Address(),
	}
}

// ConfigurationDescriptor synthesizes d's single configuration descriptor.
// config must be 0; values of 1 or more are OutOfRange. Negative values
// are not rejected.
func (b *Backend) ConfigurationDescriptor(d *LogicalDevice, config int) (ConfigurationDescriptor, error) {
	if config >= 1 {
		return ConfigurationDescriptor{}, &OutOfRange{What: "configuration", Value: config, Limit: 1}
	}
	return ConfigurationDescriptor{
		WTotalLength:        0x0020,
		BNumInterfaces:      byte(d.NumInterfaces),
		BConfigurationValue: 1,
		BmAttributes:        0xA0,
		BMaxPower:           0x2D,
	}, nil
}

// InterfaceDescriptor synthesizes the descriptor for interface intf,
// alternate setting alt, of d's configuration config.
func (b *Backend) InterfaceDescriptor(d *LogicalDevice, intf, alt, config int) (InterfaceDescriptor, error) {
	if config >= 1 {
		return InterfaceDescriptor{}, &OutOfRange{What: "configuration", Value: config, Limit: 1}
	}
	if intf >= d.NumInterfaces {
		return InterfaceDescriptor{}, &OutOfRange{What: "interface", Value: intf, Limit: d.NumInterfaces}
	}
	if alt >= 1 {
		return InterfaceDescriptor{}, &OutOfRange{What: "alt setting", Value: alt, Limit: 1}
	}
	return InterfaceDescriptor{
		BInterfaceNumber:   byte(intf),
		BNumEndpoints:      2,
		BInterfaceClass:    0xFF,
		BInterfaceSubClass: 0xFF,
		BInterfaceProtocol: 0xFF,
		IInterface:         2,
	}, nil
}

// EndpointDescriptor synthesizes the descriptor for endpoint index ep
// (0 = IN, 1 = OUT) of interface intf, alternate setting alt, of d's
// configuration config.
func (b *Backend) EndpointDescriptor(d *LogicalDevice, ep, intf, alt, config int) (EndpointDescriptor, error) {
	if _, err := b.InterfaceDescriptor(d, intf, alt, config); err != nil {
		return EndpointDescriptor{}, err
	}
	if ep >= 2 {
		return EndpointDescriptor{}, &OutOfRange{What: "endpoint", Value: ep, Limit: 2}
	}
	addr := byte(epIn)
	if ep == 1 {
		addr = epOut
	}
	return EndpointDescriptor{
		BEndpointAddress: addr,
		BmAttributes:     epAttrBulk,
		WMaxPacketSize:   maxPacket,
	}, nil
}
