package source

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"testing"

	perrors "github.com/matzehuels/photowall/pkg/errors"
)

func populate(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func take(s Source, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s.Next()
	}
	return out
}

func TestDirSortedAndCyclic(t *testing.T) {
	dir := populate(t, "c.jpg", "a.jpg", "b.jpg")
	d, err := NewDir(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 3 {
		t.Errorf("Len() = %d, want 3", d.Len())
	}

	got := take(d, 7)
	want := []string{"a.jpg", "b.jpg", "c.jpg", "a.jpg", "b.jpg", "c.jpg", "a.jpg"}
	for i := range want {
		want[i] = filepath.Join(dir, want[i])
	}
	if !slices.Equal(got, want) {
		t.Errorf("sequence = %v\nwant %v", got, want)
	}
}

func TestDirDeterministic(t *testing.T) {
	dir := populate(t, "3.png", "1.png", "2.png", "10.png")
	a, err := NewDir(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewDir(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(take(a, 9), take(b, 9)) {
		t.Error("two sources over an unchanged directory should agree")
	}
}

func TestDirShuffledOnce(t *testing.T) {
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	dir := populate(t, names...)

	d, err := NewDir(dir, rand.New(rand.NewPCG(3, 4)))
	if err != nil {
		t.Fatal(err)
	}
	first := take(d, len(names))
	second := take(d, len(names))
	if !slices.Equal(first, second) {
		t.Error("shuffle must happen once, cycles repeat the same order")
	}

	sorted := slices.Clone(first)
	slices.Sort(sorted)
	for i, n := range names {
		if sorted[i] != filepath.Join(dir, n) {
			t.Fatalf("shuffled sequence lost or duplicated entries: %v", first)
		}
	}

	same, err := NewDir(dir, rand.New(rand.NewPCG(3, 4)))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(first, take(same, len(names))) {
		t.Error("same seed should give the same order")
	}
}

func TestDirKeepsSubdirectories(t *testing.T) {
	dir := populate(t, "a.png")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	d, err := NewDir(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 2 {
		t.Errorf("Len() = %d, want raw entries including the subdirectory", d.Len())
	}
}

func TestDirEmpty(t *testing.T) {
	_, err := NewDir(t.TempDir(), nil)
	if !perrors.Is(err, perrors.ErrCodeSourceEmpty) {
		t.Fatalf("NewDir(empty) = %v, want SourceEmptyError", err)
	}
}

func TestDirMissing(t *testing.T) {
	if _, err := NewDir(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Fatal("NewDir(missing) should fail")
	}
}
