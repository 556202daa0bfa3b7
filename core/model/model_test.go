package model

import "testing"

func TestMnemonicIsSymmetric(t *testing.T) {
	const bread = "Pass - the - bread - and - but-ter"
	if got := Mnemonic("3", "4"); got != bread {
		t.Fatalf("Mnemonic(3,4) = %q", got)
	}
	if got := Mnemonic("4", "3"); got != bread {
		t.Fatalf("Mnemonic(4,3) = %q", got)
	}
	if got := Mnemonic(" 2", "3 "); got != "Not - diff-i-cult" {
		t.Fatalf("Mnemonic(2,3) = %q", got)
	}
	if got := MnemonicFor(5, 4); got != "I'm - look-ing - for - a - home - to - buy" {
		t.Fatalf("MnemonicFor(5,4) = %q", got)
	}
}

func TestMnemonicDefault(t *testing.T) {
	for _, pair := range [][2]string{{"7", "9"}, {"3", "3"}, {"", ""}, {"03", "4"}} {
		if got := Mnemonic(pair[0], pair[1]); got != NoPhrase {
			t.Fatalf("Mnemonic(%q,%q) = %q, want %q", pair[0], pair[1], got, NoPhrase)
		}
	}
}

func TestSoundResourceNames(t *testing.T) {
	cases := []struct {
		s     Sound
		track int
		want  string
	}{
		{Click, 1, "Click_1"},
		{Drums1, 2, "Drums 1_2"},
		{Drums2, 1, "Drums 2_1"},
	}
	for _, tc := range cases {
		if got := tc.s.Resource(tc.track); got != tc.want {
			t.Fatalf("%v.Resource(%d) = %q, want %q", tc.s, tc.track, got, tc.want)
		}
	}
}

func TestParseSound(t *testing.T) {
	cases := map[string]Sound{
		"Click":   Click,
		"Drums 1": Drums1,
		"drums-2": Drums2,
		"DRUMS_1": Drums1,
		"cowbell": Click,
	}
	for in, want := range cases {
		if got := ParseSound(in); got != want {
			t.Fatalf("ParseSound(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSettingsNotifiesOnChange(t *testing.T) {
	s := NewSettings(Click)
	var seen []Sound
	s.Subscribe(func(v Sound) { seen = append(seen, v) })
	s.SetSound(Click)
	s.SetSound(Drums2)
	s.SetSound(Drums2)
	if len(seen) != 1 || seen[0] != Drums2 {
		t.Fatalf("expected a single Drums2 notification, got %v", seen)
	}
	if s.Sound() != Drums2 {
		t.Fatalf("Sound() = %v", s.Sound())
	}
}
