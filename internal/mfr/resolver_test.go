package mfr

import (
	"errors"
	"testing"
)

func TestResolveBuiltinAliases(t *testing.T) {
	r := NewResolver(nil)

	testCases := []struct {
		name     string
		input    string
		wantName string
	}{
		{"abbreviation", "AT", "AeroTech"},
		{"rms suffix", "AT-RMS", "AeroTech"},
		{"rcs prefix", "RCS/AeroTech", "AeroTech"},
		{"full name", "Estes Industries", "Estes Industries"},
		{"single letter", "e", "Estes Industries"},
		{"cesaroni legacy", "Pro38", "Cesaroni Technology"},
		{"case insensitive", "CESARONI", "Cesaroni Technology"},
		{"underscore spelling", "cesaroni_technology_inc", "Cesaroni Technology"},
		{"rasp header code", "RV", "Rocketvision Flight-Star"},
		{"weco maps to klima", "Sachsen Feuerwerk", "Raketenmodellbau Klima"},
		{"prox line", "AMW/ProX", "AMW ProX"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c, ok, err := r.Resolve(tc.input)
			if err != nil {
				t.Fatalf("Resolve(%q) error: %v", tc.input, err)
			}
			if !ok {
				t.Fatalf("Resolve(%q) found nothing", tc.input)
			}
			if c.Name != tc.wantName {
				t.Errorf("Resolve(%q) = %q, want %q", tc.input, c.Name, tc.wantName)
			}
		})
	}
}

func TestResolveUnknown(t *testing.T) {
	r := NewResolver(nil)
	_, ok, err := r.Resolve("Totally Unknown Rocketry Concern")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if ok {
		t.Errorf("expected unknown manufacturer to be unresolved")
	}
}

func TestResolveFirstWordFallback(t *testing.T) {
	r := NewResolver(nil)
	// "Quest Aerospace GmbH" is not in the table, but "quest" is.
	c, ok, err := r.Resolve("Quest Aerospace GmbH")
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if !ok || c.Name != "Quest Aerospace" {
		t.Errorf("got %q (found=%v), want Quest Aerospace", c.Name, ok)
	}
}

func TestResolveCanonicalListExtendsTable(t *testing.T) {
	r := NewResolver([]Canonical{
		{Name: "New Space Motors", Abbrev: "NSM"},
	})

	for _, input := range []string{"New Space Motors", "NSM", "new-space-motors", "new_space_motors"} {
		c, ok, err := r.Resolve(input)
		if err != nil {
			t.Fatalf("Resolve(%q) error: %v", input, err)
		}
		if !ok || c.Name != "New Space Motors" {
			t.Errorf("Resolve(%q) = %q (found=%v), want New Space Motors", input, c.Name, ok)
		}
	}
}

func TestResolveAmbiguousAlias(t *testing.T) {
	// Two manufacturers claim the same abbreviation; resolving it must be
	// a hard error, never a silent pick.
	r := NewResolver([]Canonical{
		{Name: "Northern Star Motors", Abbrev: "NSM"},
		{Name: "New Space Motors", Abbrev: "NSM"},
	})

	_, _, err := r.Resolve("NSM")
	if !errors.Is(err, ErrAmbiguousManufacturer) {
		t.Fatalf("Resolve(NSM) err = %v, want %v", err, ErrAmbiguousManufacturer)
	}

	// The unambiguous full names still resolve.
	c, ok, err := r.Resolve("Northern Star Motors")
	if err != nil || !ok || c.Name != "Northern Star Motors" {
		t.Errorf("full name resolution broken: %q %v %v", c.Name, ok, err)
	}
}

func TestResolveSameNameNoCollision(t *testing.T) {
	// The canonical list restating a builtin manufacturer is not a collision.
	r := NewResolver([]Canonical{
		{Name: "AeroTech", Abbrev: "AeroTech"},
		{Name: "Estes Industries", Abbrev: "Estes"},
	})

	c, ok, err := r.Resolve("aerotech")
	if err != nil || !ok || c.Name != "AeroTech" {
		t.Errorf("Resolve(aerotech) = %q %v %v", c.Name, ok, err)
	}
}
