//go:build darwin

package capture

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreAudio -framework AudioToolbox -framework Foundation -framework CoreFoundation
#include <CoreAudio/CoreAudio.h>
#include <CoreAudio/AudioHardwareTapping.h>
#include <CoreAudio/CATapDescription.h>
#include <Foundation/Foundation.h>
#include <pthread.h>
#include <stdlib.h>
#include <string.h>

// Ring buffer filled by the aggregate device IOProc and drained from Go.
// Single producer (the IOProc), single consumer (the poll loop).
typedef struct {
	float          *buf;
	size_t          cap;
	size_t          len;
	pthread_mutex_t mu;
} tapRing;

static tapRing *tapnote_ring_new(size_t cap) {
	tapRing *r = calloc(1, sizeof(tapRing));
	if (!r) {
		return NULL;
	}
	r->buf = malloc(cap * sizeof(float));
	if (!r->buf) {
		free(r);
		return NULL;
	}
	r->cap = cap;
	pthread_mutex_init(&r->mu, NULL);
	return r;
}

static void tapnote_ring_free(tapRing *r) {
	if (!r) {
		return;
	}
	pthread_mutex_destroy(&r->mu);
	free(r->buf);
	free(r);
}

// tapnote_ring_drain copies up to max samples into dst and returns the count.
static size_t tapnote_ring_drain(tapRing *r, float *dst, size_t max) {
	pthread_mutex_lock(&r->mu);
	size_t n = r->len < max ? r->len : max;
	memcpy(dst, r->buf, n * sizeof(float));
	memmove(r->buf, r->buf + n, (r->len - n) * sizeof(float));
	r->len -= n;
	pthread_mutex_unlock(&r->mu);
	return n;
}

static OSStatus tapnote_ioproc(
	AudioObjectID          inDevice,
	const AudioTimeStamp  *inNow,
	const AudioBufferList *inInputData,
	const AudioTimeStamp  *inInputTime,
	AudioBufferList       *outOutputData,
	const AudioTimeStamp  *inOutputTime,
	void                  *inClientData
) {
	tapRing *r = (tapRing *)inClientData;
	pthread_mutex_lock(&r->mu);
	for (UInt32 i = 0; i < inInputData->mNumberBuffers; i++) {
		const AudioBuffer *ab = &inInputData->mBuffers[i];
		size_t n = ab->mDataByteSize / sizeof(float);
		size_t room = r->cap - r->len;
		if (n > room) {
			n = room; // drop the tail on overflow
		}
		memcpy(r->buf + r->len, ab->mData, n * sizeof(float));
		r->len += n;
	}
	pthread_mutex_unlock(&r->mu);
	return noErr;
}

// tapnote_create_tap creates a global stereo process tap (macOS 14.2+).
// Creating the tap is the point where macOS shows the Audio Capture
// consent dialog if it has not been granted yet.
static OSStatus tapnote_create_tap(AudioObjectID *tapOut) {
	if (@available(macOS 14.2, *)) {
		CATapDescription *desc =
			[[CATapDescription alloc] initStereoGlobalTapButExcludeProcesses:@[]];
		desc.privateTap = YES;
		OSStatus status = AudioHardwareCreateProcessTap(desc, tapOut);
		[desc release];
		return status;
	}
	return kAudioHardwareUnsupportedOperationError;
}

static OSStatus tapnote_tap_uid(AudioObjectID tap, CFStringRef *uidOut) {
	AudioObjectPropertyAddress addr = {
		kAudioTapPropertyUID,
		kAudioObjectPropertyScopeGlobal,
		kAudioObjectPropertyElementMain,
	};
	UInt32 size = sizeof(CFStringRef);
	return AudioObjectGetPropertyData(tap, &addr, 0, NULL, &size, uidOut);
}

// tapnote_create_aggregate wraps the tap in a private aggregate device so a
// regular device IOProc can pull samples out of it.
static OSStatus tapnote_create_aggregate(CFStringRef tapUID, AudioObjectID *aggOut) {
	NSDictionary *desc = @{
		@(kAudioAggregateDeviceNameKey): @"TapNote System Audio",
		@(kAudioAggregateDeviceUIDKey): [[NSUUID UUID] UUIDString],
		@(kAudioAggregateDeviceIsPrivateKey): @YES,
		@(kAudioAggregateDeviceTapListKey): @[
			@{ @(kAudioSubTapUIDKey): (__bridge NSString *)tapUID },
		],
	};
	return AudioHardwareCreateAggregateDevice((__bridge CFDictionaryRef)desc, aggOut);
}

static OSStatus tapnote_start(AudioObjectID agg, tapRing *ring, AudioDeviceIOProcID *procOut) {
	OSStatus status = AudioDeviceCreateIOProcID(agg, tapnote_ioproc, ring, procOut);
	if (status != noErr) {
		return status;
	}
	status = AudioDeviceStart(agg, *procOut);
	if (status != noErr) {
		AudioDeviceDestroyIOProcID(agg, *procOut);
	}
	return status;
}

static void tapnote_stop(AudioObjectID agg, AudioDeviceIOProcID proc) {
	AudioDeviceStop(agg, proc);
	AudioDeviceDestroyIOProcID(agg, proc);
}

static void tapnote_destroy_aggregate(AudioObjectID agg) {
	AudioHardwareDestroyAggregateDevice(agg);
}

static void tapnote_destroy_tap(AudioObjectID tap) {
	AudioHardwareDestroyProcessTap(tap);
}
*/
import "C"

import (
	"fmt"
	"sync"
	"time"
	"unsafe"
)

const (
	ringSamples   = 1 << 16
	chunkSamples  = 2048
	drainInterval = 10 * time.Millisecond
)

// coreAudioEngine captures system audio through a Core Audio process tap.
type coreAudioEngine struct {
	tap C.AudioObjectID
}

func newSystemAudioEngine() (Engine, error) {
	var tap C.AudioObjectID
	if status := C.tapnote_create_tap(&tap); status != 0 {
		return nil, osStatusErr("create process tap", status)
	}
	return &coreAudioEngine{tap: tap}, nil
}

func (e *coreAudioEngine) Stream() (Stream, error) {
	var uid C.CFStringRef
	if status := C.tapnote_tap_uid(e.tap, &uid); status != 0 {
		return nil, osStatusErr("read tap UID", status)
	}
	defer C.CFRelease(C.CFTypeRef(uid))

	var agg C.AudioObjectID
	if status := C.tapnote_create_aggregate(uid, &agg); status != 0 {
		return nil, osStatusErr("create aggregate device", status)
	}

	ring := C.tapnote_ring_new(ringSamples)
	if ring == nil {
		C.tapnote_destroy_aggregate(agg)
		return nil, fmt.Errorf("allocate capture ring")
	}

	var proc C.AudioDeviceIOProcID
	if status := C.tapnote_start(agg, ring, &proc); status != 0 {
		C.tapnote_ring_free(ring)
		C.tapnote_destroy_aggregate(agg)
		return nil, osStatusErr("start aggregate device", status)
	}

	s := &tapStream{
		agg:     agg,
		proc:    proc,
		ring:    ring,
		chunkCh: make(chan *Chunk, 4),
		stopCh:  make(chan struct{}),
	}
	go s.loop()
	return s, nil
}

func (e *coreAudioEngine) Close() error {
	C.tapnote_destroy_tap(e.tap)
	return nil
}

// tapStream polls the IOProc ring and delivers chunks.
type tapStream struct {
	agg     C.AudioObjectID
	proc    C.AudioDeviceIOProcID
	ring    *C.tapRing
	chunkCh chan *Chunk
	stopCh  chan struct{}
	once    sync.Once
}

func (s *tapStream) Chunks() <-chan *Chunk { return s.chunkCh }

func (s *tapStream) Close() error {
	s.once.Do(func() {
		close(s.stopCh)
	})
	return nil
}

func (s *tapStream) loop() {
	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()
	defer close(s.chunkCh)
	defer func() {
		C.tapnote_stop(s.agg, s.proc)
		C.tapnote_destroy_aggregate(s.agg)
		C.tapnote_ring_free(s.ring)
	}()

	buf := make([]float32, chunkSamples)
	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			n := C.tapnote_ring_drain(s.ring, (*C.float)(unsafe.Pointer(&buf[0])), chunkSamples)
			if n == 0 {
				continue
			}
			samples := make([]float32, int(n))
			copy(samples, buf[:n])
			select {
			case s.chunkCh <- &Chunk{Samples: samples, Timestamp: time.Now()}:
			default:
			}
		}
	}
}

// osStatusErr maps Core Audio statuses to errors, surfacing TCC denials as
// the typed sentinel so callers do not have to parse error text.
func osStatusErr(op string, status C.OSStatus) error {
	if status == C.kAudioDevicePermissionsError {
		return fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}
	return fmt.Errorf("%s: OSStatus %d", op, int32(status))
}
