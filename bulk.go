// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package d2xxusb

import "time"

// rxWait is the maximum time BulkRead waits on the RX event before
// reporting an empty read, per spec.md 5.
const rxWait = 10 * time.Millisecond

// BulkWrite passes data to the vendor driver's write call. The vendor
// driver does not honour timeout; the value set at OpenDevice time
// applies instead.
func (b *Backend) BulkWrite(h *OpenHandle, ep, intf int, data []byte, timeout time.Duration) (int, error) {
	n, s := b.v.write(h.h, data)
	return n, toErr("FT_Write", []interface{}{len(data)}, s)
}

// BulkRead implements spec.md 4.6's five-step translation: short-buffer
// guard, RX-event wait, queue-depth query, 2-byte modem-status prefix,
// clipped read into buf starting at offset 2.
func (b *Backend) BulkRead(h *OpenHandle, ep, intf int, buf []byte, timeout time.Duration) (int, error) {
	if len(buf) < 2 {
		return 0, nil
	}
	if !h.rx.wait(rxWait) {
		return 0, nil
	}
	queued, s := b.v.getQueueStatus(h.h)
	if err := toErr("FT_GetQueueStatus", nil, s); err != nil {
		return 0, err
	}
	if queued == 0 {
		return 0, nil
	}
	buf[0] = 0
	buf[1] = 0
	want := int(queued)
	if room := len(buf) - 2; want > room {
		want = room
	}
	n, s := b.v.read(h.h, buf[2:2+want])
	if err := toErr("FT_Read", []interface{}{want}, s); err != nil {
		return 0, err
	}
	return n + 2, nil
}
