package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls  []string
	counts []int
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Generate(ctx context.Context, count int) error {
	f.calls = append(f.calls, "generate")
	f.counts = append(f.counts, count)
	return nil
}
func (f *fakeExec) List(ctx context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Current(ctx context.Context) error {
	f.calls = append(f.calls, "current")
	return nil
}
func (f *fakeExec) Next(ctx context.Context) error { f.calls = append(f.calls, "next"); return nil }
func (f *fakeExec) Reset(ctx context.Context) error {
	f.calls = append(f.calls, "reset")
	return nil
}
func (f *fakeExec) Export(ctx context.Context) error {
	f.calls = append(f.calls, "export")
	return nil
}
func (f *fakeExec) Archives(ctx context.Context) error {
	f.calls = append(f.calls, "archives")
	return nil
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"generate 5",
		"list",
		"current",
		"next",
		"export",
		"archives",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	want := []string{"login", "generate", "list", "current", "next", "export", "archives", "logout"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Fatalf("calls[%d] = %q, want %q (all: %v)", i, exec.calls[i], want[i], exec.calls)
		}
	}
	if len(exec.counts) != 1 || exec.counts[0] != 5 {
		t.Fatalf("generate counts = %v, want [5]", exec.counts)
	}
}

func TestRunREPL_GenerateDefaultsToOne(t *testing.T) {
	silencePrintln(t)

	sc := bufio.NewScanner(strings.NewReader("generate\nexit\n"))
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.counts) != 1 || exec.counts[0] != 1 {
		t.Fatalf("generate counts = %v, want [1]", exec.counts)
	}
}

func TestRunREPL_GenerateUsage(t *testing.T) {
	silencePrintln(t)

	sc := bufio.NewScanner(strings.NewReader("generate zero\ngenerate 0\ngenerate -3\nexit\n"))
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_ShortAliases(t *testing.T) {
	silencePrintln(t)

	sc := bufio.NewScanner(strings.NewReader("l\nn\nquit\n"))
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	want := []string{"list", "next"}
	if len(exec.calls) != len(want) || exec.calls[0] != "list" || exec.calls[1] != "next" {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
}

func TestRunREPL_EOFStops(t *testing.T) {
	silencePrintln(t)

	sc := bufio.NewScanner(strings.NewReader(""))
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
