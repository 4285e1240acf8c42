package main

import (
	"testing"
)

const sweepScript = `
function frame(n)
	if n >= 2 then
		return nil
	end
	return { x = slice_x(3), y = HEIGHT / 2, touch = true, bend = 0.5, key = n, wave = -1 }
end
`

func TestScriptInput_Frames(t *testing.T) {
	si, err := NewScriptInputString("sweep", sweepScript)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	defer si.Close()

	in := si.Poll()
	if !in.Touching || in.TouchX != sliceCenterX(3) || in.TouchY != LOGICAL_HEIGHT/2 {
		t.Fatalf("unexpected first frame %+v", in)
	}
	if in.Bend != 0.5 || in.KeyDelta != 0 || in.WaveDelta != -1 || in.Quit {
		t.Fatalf("unexpected first frame controls %+v", in)
	}

	in = si.Poll()
	if in.KeyDelta != 1 {
		t.Fatalf("expected key delta 1 on frame 1, got %d", in.KeyDelta)
	}

	if in = si.Poll(); !in.Quit {
		t.Fatal("nil return should quit")
	}
	if si.Frames() != 2 {
		t.Fatalf("expected 2 frames, got %d", si.Frames())
	}
	if in = si.Poll(); !in.Quit {
		t.Fatal("script should stay finished")
	}
}

func TestScriptInput_QuitField(t *testing.T) {
	si, err := NewScriptInputString("quit", `function frame(n) return { quit = n > 0, touch = false } end`)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	defer si.Close()

	if in := si.Poll(); in.Quit || in.Touching {
		t.Fatalf("unexpected first frame %+v", in)
	}
	if in := si.Poll(); !in.Quit {
		t.Fatal("quit=true should quit")
	}
}

func TestScriptInput_Globals(t *testing.T) {
	si, err := NewScriptInputString("globals", `function frame(n) return { x = WIDTH, y = SLICES, bend = TPS } end`)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	defer si.Close()

	in := si.Poll()
	if in.TouchX != LOGICAL_WIDTH || in.TouchY != NOTE_SLICES || in.Bend != DEFAULT_TPS {
		t.Fatalf("unexpected globals %+v", in)
	}
}

func TestScriptInput_RuntimeErrorQuits(t *testing.T) {
	si, err := NewScriptInputString("broken", `function frame(n) error("boom") end`)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	defer si.Close()

	if in := si.Poll(); !in.Quit {
		t.Fatal("runtime error should quit")
	}
}

func TestScriptInput_NonTableQuits(t *testing.T) {
	si, err := NewScriptInputString("number", `function frame(n) return 7 end`)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	defer si.Close()

	if in := si.Poll(); !in.Quit {
		t.Fatal("non-table return should quit")
	}
}

func TestScriptInput_LoadErrors(t *testing.T) {
	if _, err := NewScriptInputString("empty", `x = 1`); err == nil {
		t.Fatal("expected error for a script without frame()")
	}
	if _, err := NewScriptInputString("syntax", `function frame(`); err == nil {
		t.Fatal("expected syntax error")
	}
	if _, err := NewScriptInput("does-not-exist.lua"); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
