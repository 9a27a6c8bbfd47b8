package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	ids   []int64
	views []string
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
func (f *fakeExec) GoogleLogin(ctx context.Context) error {
	f.calls = append(f.calls, "google")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Tours(ctx context.Context) error {
	f.calls = append(f.calls, "tours")
	return nil
}
func (f *fakeExec) TourDetail(ctx context.Context, id int64) error {
	f.calls = append(f.calls, "tour")
	f.ids = append(f.ids, id)
	return nil
}
func (f *fakeExec) Countries(ctx context.Context) error {
	f.calls = append(f.calls, "countries")
	return nil
}
func (f *fakeExec) Destinations(ctx context.Context) error {
	f.calls = append(f.calls, "destinations")
	return nil
}
func (f *fakeExec) OpenProtected(ctx context.Context, view string) error {
	f.calls = append(f.calls, "protected")
	f.views = append(f.views, view)
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"tours",
		"tour 42",
		"countries",
		"destinations",
		"whoami",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "tours", "tour", "countries", "destinations", "protected"}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
	if len(exec.ids) != 1 || exec.ids[0] != 42 {
		t.Fatalf("unexpected tour ids: %v", exec.ids)
	}
	if len(exec.views) != 1 || exec.views[0] != "whoami" {
		t.Fatalf("unexpected protected views: %v", exec.views)
	}
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("tour\ntour abc\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_PhotoRoutesThroughGuard(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("photo\nexit\n")
	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.views) != 1 || exec.views[0] != "photo" {
		t.Fatalf("unexpected protected views: %v", exec.views)
	}
}
