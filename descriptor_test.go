// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

import "testing"

func TestDescriptorConsistency(t *testing.T) {
	b := &Backend{v: newFakeVendor()}
	d := &LogicalDevice{ID: 0x04036010, LocID: 0x21, NumInterfaces: 2}

	cfg, err := b.ConfigurationDescriptor(d, 0)
	if err != nil {
		t.Fatalf("ConfigurationDescriptor() err = %v", err)
	}
	if int(cfg.BNumInterfaces) != d.NumInterfaces {
		t.Errorf("BNumInterfaces = %d, want %d", cfg.BNumInterfaces, d.NumInterfaces)
	}

	if _, err := b.InterfaceDescriptor(d, 2, 0, 0); err == nil {
		t.Fatalf("InterfaceDescriptor(intf=2) on a 2-interface device: want OutOfRange, got nil")
	} else if _, ok := err.(*OutOfRange); !ok {
		t.Errorf("err type = %T, want *OutOfRange", err)
	}

	intf, err := b.InterfaceDescriptor(d, 1, 0, 0)
	if err != nil {
		t.Fatalf("InterfaceDescriptor(intf=1) err = %v", err)
	}
	if intf.BInterfaceNumber != 1 {
		t.Errorf("BInterfaceNumber = %d, want 1", intf.BInterfaceNumber)
	}

	in, err := b.EndpointDescriptor(d, 0, 0, 0, 0)
	if err != nil {
		t.Fatalf("EndpointDescriptor(ep=0) err = %v", err)
	}
	if in.BEndpointAddress != 0x81 {
		t.Errorf("IN address = %#x, want 0x81", in.BEndpointAddress)
	}
	out, err := b.EndpointDescriptor(d, 1, 0, 0, 0)
	if err != nil {
		t.Fatalf("EndpointDescriptor(ep=1) err = %v", err)
	}
	if out.BEndpointAddress != 0x02 {
		t.Errorf("OUT address = %#x, want 0x02", out.BEndpointAddress)
	}
	if _, err := b.EndpointDescriptor(d, 2, 0, 0, 0); err == nil {
		t.Errorf("EndpointDescriptor(ep=2): want OutOfRange, got nil")
	}
}

func TestDeviceDescriptorFields(t *testing.T) {
	b := &Backend{v: newFakeVendor()}
	d := &LogicalDevice{ID: 0x04036014, LocID: 0x32}
	desc := b.DeviceDescriptor(d)
	if desc.IDVendor != 0x0403 || desc.IDProduct != 0x6014 {
		t.Errorf("IDVendor/IDProduct = %#x/%#x, want 0x0403/0x6014", desc.IDVendor, desc.IDProduct)
	}
	if desc.BcdDevice != 0x0900 || desc.BcdUSB != 0x0200 || desc.BMaxPacketSize0 != 0x40 {
		t.Errorf("fixed fields wrong: %+v", desc)
	}
	if desc.Bus != 3 || desc.Address != 2 {
		t.Errorf("Bus/Address = %d/%d, want 3/2", desc.Bus, desc.Address)
	}
}
