package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFindPbfFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "town.PBF"), []byte("x"), 0644)

	file, err := _FindPbfFile(dir)
	if err != nil {
		t.Fatalf("_FindPbfFile() error = %v", err)
	}
	if filepath.Base(file) != "town.PBF" {
		t.Errorf("_FindPbfFile() = %v; want town.PBF", file)
	}

	empty := t.TempDir()
	if _, err := _FindPbfFile(empty); err == nil {
		t.Errorf("_FindPbfFile(empty) = nil error; want error")
	}
}

func TestCacheKey(t *testing.T) {
	dir := t.TempDir()
	file_a := filepath.Join(dir, "town.pbf")
	file_b := filepath.Join(dir, "town2.pbf")
	os.WriteFile(file_a, []byte("content-a"), 0644)
	os.WriteFile(file_b, []byte("content-b"), 0644)

	key_a, err := _CacheKey(file_a)
	if err != nil {
		t.Fatalf("_CacheKey() error = %v", err)
	}
	if !strings.HasPrefix(key_a, "town-") {
		t.Errorf("_CacheKey() = %v; want town- prefix", key_a)
	}
	if len(key_a) != len("town-")+8 {
		t.Errorf("_CacheKey() = %v; want 8 hex digest chars", key_a)
	}

	key_b, _ := _CacheKey(file_b)
	if key_a == key_b {
		t.Errorf("different files share cache key %v", key_a)
	}

	// same content, same digest
	file_c := filepath.Join(dir, "town.pbf")
	key_c, _ := _CacheKey(file_c)
	if key_a != key_c {
		t.Errorf("identical file maps to different keys: %v != %v", key_a, key_c)
	}
}

func TestCacheComplete(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "town-12345678")
	if _CacheComplete(prefix) {
		t.Errorf("_CacheComplete() = true for empty dir")
	}
	for _, suffix := range []string{"-nodes", "-edges", "-geom", "-graph", "-weight"} {
		os.WriteFile(prefix+suffix, []byte("x"), 0644)
	}
	if _CacheComplete(prefix) {
		t.Errorf("_CacheComplete() = true without buildings")
	}
	os.WriteFile(prefix+"-buildings", []byte("{}"), 0644)
	if !_CacheComplete(prefix) {
		t.Errorf("_CacheComplete() = false for full component set")
	}
}
