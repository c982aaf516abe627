package caret

import "testing"

func TestVersion_IsSemver(t *testing.T) {
	if !IsSemver(Version()) {
		t.Fatalf("embedded version must be semver: got %q", Version())
	}
}

func TestVersionTag_PrefixesV(t *testing.T) {
	if got, want := VersionTag(), "v"+Version(); got != want {
		t.Fatalf("version tag: got %q, want %q", got, want)
	}
}

func TestIsSemver(t *testing.T) {
	cases := []struct {
		version string
		want    bool
	}{
		{version: "0.1.0", want: true},
		{version: "1.2.3-alpha.1", want: true},
		{version: "2.0.0+build.7", want: true},
		{version: "v1.2.3", want: true},
		{version: "1.2", want: false},
		{version: "01.2.3", want: false},
		{version: "dev", want: false},
	}

	for _, tc := range cases {
		got := IsSemver(tc.version)
		if got != tc.want {
			t.Fatalf("IsSemver(%q): got %v, want %v", tc.version, got, tc.want)
		}
	}
}

func TestResolveVersion(t *testing.T) {
	cases := []struct {
		build string
		want  string
	}{
		{build: "v1.4.0", want: "1.4.0"},
		{build: "1.4.0-rc.1", want: "1.4.0-rc.1"},
		{build: "", want: Version()},
		{build: "dev", want: Version()},
	}

	for _, tc := range cases {
		if got := ResolveVersion(tc.build); got != tc.want {
			t.Fatalf("ResolveVersion(%q): got %q, want %q", tc.build, got, tc.want)
		}
	}
}
