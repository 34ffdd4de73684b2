package main

import "testing"

func TestMainWiring(t *testing.T) {
	origSetVersion := setVersionInfo
	origExecute := executeCmd
	origExit := exit
	t.Cleanup(func() {
		setVersionInfo = origSetVersion
		executeCmd = origExecute
		exit = origExit
	})

	calls := struct {
		version bool
		exec    bool
		code    int
	}{code: -1}

	setVersionInfo = func(v, c, d string) {
		calls.version = true
		if v == "" || c == "" || d == "" {
			t.Fatalf("expected version info to be set")
		}
	}
	executeCmd = func() int {
		calls.exec = true
		return 1
	}
	exit = func(code int) { calls.code = code }

	main()

	if !calls.version || !calls.exec || calls.code != 1 {
		t.Fatalf("expected all wiring calls and exit code 1, got %+v", calls)
	}
}
