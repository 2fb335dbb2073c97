package util

import (
	"testing"
)

type testFlag struct {
	Dist int32
}

func TestFlagsDefault(t *testing.T) {
	flags := NewFlags[testFlag](10, testFlag{100})
	flag := flags.Get(3)
	if flag.Dist != 100 {
		t.Errorf("flag.Dist = %v; want 100", flag.Dist)
	}
}

func TestFlagsMutate(t *testing.T) {
	flags := NewFlags[testFlag](10, testFlag{100})
	flag := flags.Get(3)
	flag.Dist = 7
	flag2 := flags.Get(3)
	if flag2.Dist != 7 {
		t.Errorf("flag2.Dist = %v; want 7", flag2.Dist)
	}
}

func TestFlagsReset(t *testing.T) {
	flags := NewFlags[testFlag](10, testFlag{100})
	for i := int32(0); i < 10; i++ {
		flags.Get(i).Dist = i
	}
	flags.Reset()
	for i := int32(0); i < 10; i++ {
		flag := flags.Get(i)
		if flag.Dist != 100 {
			t.Errorf("flag.Dist = %v after Reset; want 100", flag.Dist)
		}
	}
}
