package audio

import (
	"testing"

	"github.com/Southclaws/fault/ftag"

	"github.com/ingyamilmolinar/rhythmlab/core/model"
)

func TestLibraryResolvesEverySoundSet(t *testing.T) {
	lib := NewLibrary()
	want := map[model.Sound][2]Instrument{
		model.Click:  {ClickHigh, ClickLow},
		model.Drums1: {Kick{}, Snare{}},
		model.Drums2: {Tom{}, HiHat{}},
	}
	for s, pair := range want {
		for track := 1; track <= 2; track++ {
			inst, err := lib.Lookup(s, track)
			if err != nil {
				t.Fatalf("%s track %d: %v", s, track, err)
			}
			if inst != pair[track-1] {
				t.Fatalf("%s track %d = %#v, want %#v", s, track, inst, pair[track-1])
			}
		}
	}
}

func TestLibraryThirdTrackAlternates(t *testing.T) {
	lib := NewLibrary()
	inst, err := lib.Lookup(model.Drums1, 3)
	if err != nil || inst != (Kick{}) {
		t.Fatalf("track 3 should reuse the first resource, got %#v %v", inst, err)
	}
}

func TestLibraryUnknownIsNotFound(t *testing.T) {
	_, err := NewLibrary().Get("cowbell")
	if err == nil || ftag.Get(err) != ftag.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestLibraryNames(t *testing.T) {
	names := NewLibrary().Names()
	has := map[string]bool{}
	for _, n := range names {
		has[n] = true
	}
	for _, n := range []string{"Click_1", "Drums 2_2", IDClap, IDKick} {
		if !has[n] {
			t.Fatalf("Names() missing %q: %v", n, names)
		}
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
}
