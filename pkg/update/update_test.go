package update

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/symtools/symver/pkg/vmap"
)

const openMap = "LIBX_1_0_0 {\n    a;\n};\n\nLIBX_1_1_0 unreleased {\n    b;\n} LIBX_1_0_0;\n"

func newTestRunner() (*Runner, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRunner(log.New(&buf)), &buf
}

func writeMap(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func noticeStrings(notices []Notice) []string {
	var out []string
	for _, n := range notices {
		out = append(out, n.String())
	}
	return out
}

func TestRunAddsSymbols(t *testing.T) {
	runner, _ := newTestRunner()
	path := writeMap(t, t.TempDir(), "libx.map", openMap)

	res, err := runner.Run(Request{MapPath: path, Observed: []string{"a", "b", "c"}})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if res.Target != "LIBX_1_1_0" {
		t.Errorf("Target = %q, want LIBX_1_1_0", res.Target)
	}
	if got, want := noticeStrings(res.Notices), []string{"Added: a", "Added: c"}; !equalStrings(got, want) {
		t.Errorf("Notices = %v, want %v", got, want)
	}
	if !res.Written || res.Path != path {
		t.Errorf("Written = %v Path = %q, want write to %q", res.Written, res.Path, path)
	}
	if res.Backup != path+".old" {
		t.Errorf("Backup = %q, want %q", res.Backup, path+".old")
	}
	if got := readFile(t, res.Backup); got != openMap {
		t.Errorf("backup content = %q, want original map", got)
	}

	g, err := vmap.ParseFile(path, vmap.Options{})
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	r, _ := g.Release("LIBX_1_1_0")
	for _, s := range []string{"a", "b", "c"} {
		if !r.HasSymbol(s) {
			t.Errorf("updated release missing symbol %q", s)
		}
	}
}

func TestRunNoOp(t *testing.T) {
	runner, buf := newTestRunner()
	path := writeMap(t, t.TempDir(), "libx.map", openMap)

	res, err := runner.Run(Request{MapPath: path, Observed: []string{"b"}})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if len(res.Notices) != 0 {
		t.Errorf("Notices = %v, want none", res.Notices)
	}
	if res.Written {
		t.Error("no-op run should not write")
	}
	if got := readFile(t, path); got != openMap {
		t.Error("no-op run modified the map")
	}
	if _, err := os.Stat(path + ".old"); !os.IsNotExist(err) {
		t.Error("no-op run created a backup")
	}
	if buf.Len() != 0 {
		t.Errorf("no-op run logged: %q", buf.String())
	}
}

func TestRunIdempotent(t *testing.T) {
	runner, _ := newTestRunner()
	path := writeMap(t, t.TempDir(), "libx.map", openMap)
	observed := []string{"a", "b"}

	if _, err := runner.Run(Request{MapPath: path, Observed: observed}); err != nil {
		t.Fatalf("first Run error: %v", err)
	}
	first := readFile(t, path)

	res, err := runner.Run(Request{MapPath: path, Observed: observed})
	if err != nil {
		t.Fatalf("second Run error: %v", err)
	}
	if len(res.Notices) != 0 || res.Written {
		t.Errorf("second run should be a no-op, got notices %v written %v", res.Notices, res.Written)
	}
	if got := readFile(t, path); got != first {
		t.Error("second run changed the map")
	}
}

func TestRunFinalize(t *testing.T) {
	runner, _ := newTestRunner()
	path := writeMap(t, t.TempDir(), "libx.map", openMap)

	res, err := runner.Run(Request{MapPath: path, Observed: []string{"b", "c"}, Finalize: true})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	want := []string{"Added: c", "Finalized: LIBX_1_1_0"}
	if got := noticeStrings(res.Notices); !equalStrings(got, want) {
		t.Errorf("Notices = %v, want %v", got, want)
	}

	g, err := vmap.ParseFile(path, vmap.Options{})
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	r, _ := g.Release("LIBX_1_1_0")
	if !r.Released {
		t.Error("finalized release should parse back as released")
	}
	if g.Open() != nil {
		t.Error("map should have no open release after finalize")
	}
}

func TestRunFinalizeAlreadyReleased(t *testing.T) {
	runner, buf := newTestRunner()
	src := "LIBX_1_0_0 {\n    a;\n};\n"
	path := writeMap(t, t.TempDir(), "libx.map", src)

	res, err := runner.Run(Request{
		MapPath:  path,
		Observed: []string{"a"},
		Release:  "LIBX_1_0_0",
		Finalize: true,
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(res.Notices) != 0 || res.Written {
		t.Errorf("finalizing a released release should be a no-op, got %v written %v", res.Notices, res.Written)
	}
	if got := readFile(t, path); got != src {
		t.Error("map changed")
	}
	if strings.Contains(buf.String(), "WARN") {
		t.Errorf("unexpected warning: %q", buf.String())
	}
}

func TestRunReleasedImmutable(t *testing.T) {
	runner, _ := newTestRunner()
	src := "LIBX_1_0_0 {\n    a;\n};\n\nLIBX_1_1_0 unreleased {\n};\n"
	path := writeMap(t, t.TempDir(), "libx.map", src)

	_, err := runner.Run(Request{
		MapPath:  path,
		Observed: []string{"a", "b"},
		Release:  "LIBX_1_0_0",
	})
	if !errors.Is(err, ErrReleaseImmutable) {
		t.Fatalf("Run error = %v, want ErrReleaseImmutable", err)
	}
	if err.Error() != "Released releases cannot be modified. Abort." {
		t.Errorf("error text = %q", err.Error())
	}
	if got := readFile(t, path); got != src {
		t.Error("rejected run modified the map")
	}
}

func TestRunABIBreak(t *testing.T) {
	runner, _ := newTestRunner()
	path := writeMap(t, t.TempDir(), "libx.map", openMap)

	_, err := runner.Run(Request{MapPath: path, Observed: []string{}})
	if !errors.Is(err, ErrABIBreak) {
		t.Fatalf("Run error = %v, want ErrABIBreak", err)
	}
	if got := err.Error(); got != "ABI break detected: symbols would be removed: b" {
		t.Errorf("error text = %q", got)
	}
	if got := readFile(t, path); got != openMap {
		t.Error("rejected run modified the map")
	}
}

func TestRunABIBreakAllowed(t *testing.T) {
	runner, buf := newTestRunner()
	path := writeMap(t, t.TempDir(), "libx.map", openMap)

	res, err := runner.Run(Request{MapPath: path, Observed: []string{}, AllowBreak: true})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if got, want := noticeStrings(res.Notices), []string{"Removed: b"}; !equalStrings(got, want) {
		t.Errorf("Notices = %v, want %v", got, want)
	}
	if !strings.Contains(buf.String(), "ABI break detected: symbols were removed.") {
		t.Errorf("missing break warning in log: %q", buf.String())
	}

	g, err := vmap.ParseFile(path, vmap.Options{})
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	r, _ := g.Release("LIBX_1_1_0")
	if r.HasSymbol("b") {
		t.Error("removed symbol still recorded")
	}
}

func TestRunUnknownRelease(t *testing.T) {
	runner, _ := newTestRunner()
	path := writeMap(t, t.TempDir(), "libx.map", openMap)

	_, err := runner.Run(Request{MapPath: path, Observed: []string{"b"}, Release: "LIBX_9_9_9"})
	if !errors.Is(err, ErrUnknownRelease) {
		t.Fatalf("Run error = %v, want ErrUnknownRelease", err)
	}
	if !strings.Contains(err.Error(), "LIBX_9_9_9") {
		t.Errorf("error should name the release, got %q", err.Error())
	}
}

func TestRunDryRun(t *testing.T) {
	runner, buf := newTestRunner()
	path := writeMap(t, t.TempDir(), "libx.map", openMap)

	res, err := runner.Run(Request{MapPath: path, Observed: []string{"b", "c"}, DryRun: true})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if got, want := noticeStrings(res.Notices), []string{"Added: c"}; !equalStrings(got, want) {
		t.Errorf("Notices = %v, want %v", got, want)
	}
	if res.Written {
		t.Error("dry run should not write")
	}
	if got := readFile(t, path); got != openMap {
		t.Error("dry run modified the map")
	}
	if _, err := os.Stat(path + ".old"); !os.IsNotExist(err) {
		t.Error("dry run created a backup")
	}
	if !strings.Contains(buf.String(), "Dry run: no files were modified.") {
		t.Errorf("missing dry run notice in log: %q", buf.String())
	}
}

func TestRunCreatesOpenRelease(t *testing.T) {
	runner, _ := newTestRunner()
	src := "LIBX_1_0_0 {\n    a;\n};\n"
	path := writeMap(t, t.TempDir(), "libx.map", src)

	res, err := runner.Run(Request{MapPath: path, Observed: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.Target != "LIBX_1_1_0" {
		t.Errorf("Target = %q, want LIBX_1_1_0", res.Target)
	}
	if got, want := noticeStrings(res.Notices), []string{"Added: a", "Added: b"}; !equalStrings(got, want) {
		t.Errorf("Notices = %v, want %v", got, want)
	}

	g, err := vmap.ParseFile(path, vmap.Options{})
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	r, ok := g.Release("LIBX_1_1_0")
	if !ok {
		t.Fatal("new open release not written")
	}
	if r.Released {
		t.Error("new release should be unreleased")
	}
	if r.Parent != "LIBX_1_0_0" {
		t.Errorf("Parent = %q, want LIBX_1_0_0", r.Parent)
	}
	if !r.HasSymbol("a") || !r.HasSymbol("b") {
		t.Errorf("new release symbols = %v, want a and b", r.Symbols())
	}
}

func TestRunLeavesOtherReleasesAlone(t *testing.T) {
	// Each release's symbol set is self-contained: the open release absorbs
	// everything the artifact exports, and the released base keeps exactly
	// the set it was frozen with.
	runner, _ := newTestRunner()
	path := writeMap(t, t.TempDir(), "libx.map", openMap)

	if _, err := runner.Run(Request{MapPath: path, Observed: []string{"a", "b"}}); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	g, err := vmap.ParseFile(path, vmap.Options{})
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	base, _ := g.Release("LIBX_1_0_0")
	if got := base.Symbols(); !equalStrings(got, []string{"a"}) {
		t.Errorf("base release symbols = %v, want [a]", got)
	}
	open, _ := g.Release("LIBX_1_1_0")
	if !open.HasSymbol("a") || !open.HasSymbol("b") {
		t.Errorf("open release symbols = %v, want a and b", open.Symbols())
	}
}

func TestRunParseErrorPropagates(t *testing.T) {
	runner, _ := newTestRunner()
	path := writeMap(t, t.TempDir(), "bad.map", "LIBX {\n    foo\n};\n")

	_, err := runner.Run(Request{MapPath: path, Observed: []string{"foo"}})
	var perr *vmap.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Run error = %v, want *vmap.ParseError", err)
	}
}

func TestRunMissingMap(t *testing.T) {
	runner, _ := newTestRunner()

	_, err := runner.Run(Request{
		MapPath:  filepath.Join(t.TempDir(), "absent.map"),
		Observed: []string{"a"},
	})
	if err == nil {
		t.Fatal("Run should fail for a missing map")
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
