package main

import (
	"bytes"
	"strings"
	"testing"
)

// runCLI executes the root command with the given arguments inside dir and
// captures its combined output.
func runCLI(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(dir)

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("output %q does not contain %q", haystack, needle)
	}
}

func TestRootShowsHelp(t *testing.T) {
	out, err := runCLI(t, t.TempDir())
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	requireContains(t, out, "post")
	requireContains(t, out, "add")
	requireContains(t, out, "queue")
}

func TestAddAndQueueList(t *testing.T) {
	dir := t.TempDir()

	out, err := runCLI(t, dir, "add", "https://redd.it/abc", "cats,fun", "Hello")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, "Queued https://redd.it/abc")

	out, err = runCLI(t, dir, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "https://redd.it/abc")
	requireContains(t, out, "cats,fun")
	requireContains(t, out, "Hello")
}

func TestQueueClear(t *testing.T) {
	dir := t.TempDir()

	if _, err := runCLI(t, dir, "add", "https://redd.it/abc", "", "t"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := runCLI(t, dir, "queue", "clear")
	if err != nil {
		t.Fatalf("queue clear: %v", err)
	}
	requireContains(t, out, "Removed 1 entries")

	out, err = runCLI(t, dir, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "Queue is empty")
}

func TestAddRequiresThreeArgs(t *testing.T) {
	if _, err := runCLI(t, t.TempDir(), "add", "https://redd.it/abc"); err == nil {
		t.Fatal("expected argument error")
	}
}

func TestPostRejectsPartialArgs(t *testing.T) {
	if _, err := runCLI(t, t.TempDir(), "post", "https://redd.it/abc", "tags"); err == nil {
		t.Fatal("expected argument error for two args")
	}
}

func TestPostWithoutCredentialsFails(t *testing.T) {
	for _, key := range []string{
		"REDDIT_USER_AGENT", "REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET",
		"VK_TOKEN", "VK_GROUP_ID",
	} {
		t.Setenv(key, "")
	}
	_, err := runCLI(t, t.TempDir(), "post", "https://redd.it/abc", "cats", "Hello")
	if err == nil {
		t.Fatal("expected configuration error without credentials")
	}
	requireContains(t, err.Error(), "configuration error")
}

func TestConfigInitAndShow(t *testing.T) {
	t.Setenv("REDDIT_CLIENT_ID", "")
	t.Setenv("VK_TOKEN", "")
	dir := t.TempDir()

	out, err := runCLI(t, dir, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "rtvk.toml")

	// Second init must refuse to overwrite.
	if _, err := runCLI(t, dir, "config", "init"); err == nil {
		t.Fatal("expected error when rtvk.toml already exists")
	}

	out, err = runCLI(t, dir, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "queue path")
	requireContains(t, out, "(not set)")
}

func TestHistoryEmpty(t *testing.T) {
	out, err := runCLI(t, t.TempDir(), "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No published posts recorded")
}

func TestUnknownCommandFails(t *testing.T) {
	if _, err := runCLI(t, t.TempDir(), "frobnicate"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}
