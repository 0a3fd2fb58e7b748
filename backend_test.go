// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

import "testing"

func TestCloseDeviceIdempotence(t *testing.T) {
	v := newFakeVendor()
	b := &Backend{v: v}
	rx := &fakeRxEvent{}
	h := &OpenHandle{Device: &LogicalDevice{}, h: 1, rx: rx}

	if err := b.CloseDevice(h); err != nil {
		t.Fatalf("first CloseDevice() err = %v, want nil", err)
	}
	if rx.closeCalls != 1 {
		t.Errorf("rx.closeCalls = %d, want 1", rx.closeCalls)
	}

	err := b.CloseDevice(h)
	if err == nil {
		t.Fatalf("second CloseDevice(): want a *VendorCallFailed, got nil")
	}
	if _, ok := err.(*VendorCallFailed); !ok {
		t.Errorf("err type = %T, want *VendorCallFailed", err)
	}
}

func TestClaimReleaseConfigurationNoop(t *testing.T) {
	b := &Backend{v: newFakeVendor()}
	h := &OpenHandle{Device: &LogicalDevice{}}

	if err := b.ClaimInterface(h, 0); err != nil {
		t.Errorf("ClaimInterface() err = %v", err)
	}
	if err := b.ReleaseInterface(h, 0); err != nil {
		t.Errorf("ReleaseInterface() err = %v", err)
	}
	if err := b.SetConfiguration(h, 1); err != nil {
		t.Errorf("SetConfiguration() err = %v", err)
	}
	cfg, err := b.GetConfiguration(h)
	if err != nil || cfg != 1 {
		t.Errorf("GetConfiguration() = %d, %v, want 1, nil", cfg, err)
	}
}
