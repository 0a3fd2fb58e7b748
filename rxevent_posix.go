// Copyright 2018 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !windows

package d2xxusb

import (
	"errors"
	"time"
	"unsafe"

	"github.com/ebitengine/purego"
)

// posixEventHandle mirrors libftd2xx's EVENT_HANDLE struct:
//
//	typedef struct _EVENT_HANDLE {
//	    pthread_cond_t  eCondVar;
//	    pthread_mutex_t eMutex;
//	    int             iVar;
//	} EVENT_HANDLE;
//
// The cond/mutex fields are opaque to Go; they're sized generously to fit
// glibc's largest published layout on every architecture ftd2xx.so ships
// for, and are only ever touched by libc/libpthread through purego calls,
// never interpreted directly.
type posixEventHandle struct {
	condVar [64]byte
	mutex   [48]byte
	iVar    int32
}

var (
	pthreadCondInit      func(cond, attr unsafe.Pointer) int32
	pthreadMutexInit     func(mutex, attr unsafe.Pointer) int32
	pthreadMutexLock     func(mutex unsafe.Pointer) int32
	pthreadMutexUnlock   func(mutex unsafe.Pointer) int32
	pthreadCondTimedwait func(cond, mutex, abstime unsafe.Pointer) int32
	pthreadCondDestroy   func(cond unsafe.Pointer) int32
	pthreadMutexDestroy  func(mutex unsafe.Pointer) int32
)

func init() {
	libc, err := purego.Dlopen("libc.so.6", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return
	}
	purego.RegisterLibFunc(&pthreadCondInit, libc, "pthread_cond_init")
	purego.RegisterLibFunc(&pthreadMutexInit, libc, "pthread_mutex_init")
	purego.RegisterLibFunc(&pthreadMutexLock, libc, "pthread_mutex_lock")
	purego.RegisterLibFunc(&pthreadMutexUnlock, libc, "pthread_mutex_unlock")
	purego.RegisterLibFunc(&pthreadCondTimedwait, libc, "pthread_cond_timedwait")
	purego.RegisterLibFunc(&pthreadCondDestroy, libc, "pthread_cond_destroy")
	purego.RegisterLibFunc(&pthreadMutexDestroy, libc, "pthread_mutex_destroy")
}

type posixRxEvent struct {
	h *posixEventHandle
}

// newRxEvent is a var, not a plain func, so tests can stub it without
// touching real libpthread objects.
var newRxEvent = func() (rxEvent, error) {
	if pthreadCondInit == nil {
		return nil, &DriverNotAvailable{Reason: "libc pthread symbols unavailable"}
	}
	h := &posixEventHandle{}
	if r := pthreadCondInit(unsafe.Pointer(&h.condVar[0]), nil); r != 0 {
		return nil, errors.New("d2xxusb: pthread_cond_init failed")
	}
	if r := pthreadMutexInit(unsafe.Pointer(&h.mutex[0]), nil); r != 0 {
		return nil, errors.New("d2xxusb: pthread_mutex_init failed")
	}
	return &posixRxEvent{h: h}, nil
}

func (e *posixRxEvent) wait(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	ts := struct{ sec, nsec int64 }{deadline.Unix(), int64(deadline.Nanosecond())}
	pthreadMutexLock(unsafe.Pointer(&e.h.mutex[0]))
	defer pthreadMutexUnlock(unsafe.Pointer(&e.h.mutex[0]))
	r := pthreadCondTimedwait(unsafe.Pointer(&e.h.condVar[0]), unsafe.Pointer(&e.h.mutex[0]), unsafe.Pointer(&ts))
	return r == 0
}

func (e *posixRxEvent) nativeToken() uintptr {
	return uintptr(unsafe.Pointer(e.h))
}

func (e *posixRxEvent) close() error {
	pthreadCondDestroy(unsafe.Pointer(&e.h.condVar[0]))
	pthreadMutexDestroy(unsafe.Pointer(&e.h.mutex[0]))
	return nil
}
