//go:build headless

package main

import (
	"testing"
	"time"
)

func TestHeadlessOutput_DrainsInRealTime(t *testing.T) {
	op, err := NewOtoPlayer()
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := op.Configure(DefaultAudioConfig()); err != nil {
		t.Fatalf("configure failed: %v", err)
	}
	if err := op.Configure(DefaultAudioConfig()); err == nil {
		t.Fatal("second configure should fail")
	}

	a, b := NewWaveBuf(SAMPLES_PER_BUF), NewWaveBuf(SAMPLES_PER_BUF)
	if err := op.Queue(a); err != nil {
		t.Fatalf("queue failed: %v", err)
	}
	if err := op.Queue(b); err != nil {
		t.Fatalf("queue failed: %v", err)
	}
	if err := op.Start(); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if !op.IsStarted() {
		t.Fatal("expected device started")
	}

	deadline := time.Now().Add(2 * time.Second)
	for a.Status() != WAVEBUF_DONE && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if a.Status() != WAVEBUF_DONE {
		t.Fatal("first buffer was never consumed")
	}

	if err := op.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if op.IsStarted() || b.Status() != WAVEBUF_DONE {
		t.Fatalf("close should stop and release, started=%v b=%s", op.IsStarted(), b.Status())
	}
}

func TestHeadlessEngine_RefillsAgainstDevice(t *testing.T) {
	op, _ := NewOtoPlayer()
	e, err := NewSynthEngine(op)
	if err != nil {
		t.Fatalf("engine start failed: %v", err)
	}
	defer e.Close()

	deadline := time.Now().Add(3 * time.Second)
	for e.Stats().Refills < 3 && time.Now().Before(deadline) {
		e.Tick()
		time.Sleep(5 * time.Millisecond)
	}
	if e.Stats().Refills < 3 {
		t.Fatalf("expected refills to keep up with playback, got %d", e.Stats().Refills)
	}
}
