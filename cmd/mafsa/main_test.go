package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile writes content to a file in a fresh temp dir and returns its path
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	return path
}

// runCLI runs the command line and returns exit code, stdout and stderr
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

const fruits = "pear\napple\nfig\napricot\nplum\n"

func TestCLIQueries(t *testing.T) {
	words := writeFile(t, "words.txt", fruits)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"contains", []string{"contains", "fig", "kiwi"}, "fig\ttrue\nkiwi\tfalse\n"},
		{"prefix", []string{"prefix", "ap"}, "apple\napricot\n"},
		{"index", []string{"index", "0", "4"}, "0\tapple\n4\tplum\n"},
		{"rank", []string{"rank", "pear", "kiwi"}, "pear\t3\nkiwi\t-1\n"},
		{"list", []string{"list"}, "apple\napricot\nfig\npear\nplum\n"},
		{"list range", []string{"list", "--from", "1", "--to", "3"}, "apricot\nfig\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, append([]string{"--words", words}, tt.args...)...)
			if code != 0 {
				t.Fatalf("exit code %d, stderr: %s", code, stderr)
			}
			if stdout != tt.want {
				t.Errorf("stdout = %q, want %q", stdout, tt.want)
			}
		})
	}
}

func TestCLIStats(t *testing.T) {
	words := writeFile(t, "words.txt", "nation\nration\n")
	code, stdout, stderr := runCLI(t, "--words", words, "stats")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{"words\t2\n", "trie states\t13\n", "states\t7\n"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, stdout)
		}
	}
}

func TestCLIErrors(t *testing.T) {
	words := writeFile(t, "words.txt", fruits)
	dup := writeFile(t, "dup.txt", "a\nb\na\n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no word list", []string{"list"}, "no word list"},
		{"missing file", []string{"--words", filepath.Join(t.TempDir(), "nope"), "list"}, "failed to read word list"},
		{"duplicate", []string{"--words", dup, "list"}, "duplicate key"},
		{"index out of range", []string{"--words", words, "index", "5"}, "index 5 out of range [0, 5)"},
		{"bad index", []string{"--words", words, "index", "x"}, "invalid index"},
		{"bad locale", []string{"--words", words, "--locale", "!!", "list"}, "invalid locale"},
		{"bad log level", []string{"--words", words, "--log-level", "loud", "list"}, "invalid log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr %q does not mention %q", stderr, tt.want)
			}
		})
	}
}

func TestCLIEmptyLines(t *testing.T) {
	words := writeFile(t, "words.txt", "b\n\na\n")

	if code, _, _ := runCLI(t, "--words", words, "list"); code != 1 {
		t.Errorf("empty line accepted without --allow-empty")
	}

	code, stdout, stderr := runCLI(t, "--words", words, "--allow-empty", "list")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if stdout != "\na\nb\n" {
		t.Errorf("stdout = %q, want %q", stdout, "\na\nb\n")
	}
}

func TestCLILocale(t *testing.T) {
	words := writeFile(t, "words.txt", "b\nB\na\n")

	_, ordinal, _ := runCLI(t, "--words", words, "list")
	if ordinal != "B\na\nb\n" {
		t.Errorf("code point order = %q", ordinal)
	}

	code, collated, stderr := runCLI(t, "--words", words, "--locale", "en", "list")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if collated != "a\nb\nB\n" {
		t.Errorf("collated order = %q, want %q", collated, "a\nb\nB\n")
	}
}

func TestCLIEnvironment(t *testing.T) {
	words := writeFile(t, "words.txt", fruits)
	t.Setenv("MAFSA_WORDS", words)

	code, stdout, stderr := runCLI(t, "contains", "plum")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if stdout != "plum\ttrue\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestCLIConfigFile(t *testing.T) {
	words := writeFile(t, "words.txt", fruits)
	config := writeFile(t, "mafsa.yaml", "words: "+words+"\nlog-level: debug\n")

	code, stdout, stderr := runCLI(t, "--config", config, "rank", "fig")
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if stdout != "fig\t2\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if !strings.Contains(stderr, "automaton built") {
		t.Errorf("debug build record missing from stderr: %s", stderr)
	}
}

func TestCLIScan(t *testing.T) {
	words := writeFile(t, "words.txt", "cat\ndog\n")
	text := writeFile(t, "text.txt", "a cat chased a dog")

	code, stdout, stderr := runCLI(t, "--words", words, "scan", text)
	if code != 0 {
		t.Fatalf("exit code %d, stderr: %s", code, stderr)
	}
	if stdout != "2\tcat\n15\tdog\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestCLICheck(t *testing.T) {
	words := writeFile(t, "words.txt", fruits)
	var input strings.Builder
	for range 500 {
		input.WriteString("apple\nkiwi\nplum\n")
	}
	in := writeFile(t, "input.txt", input.String())

	for _, workers := range []string{"1", "3", "16"} {
		t.Run(workers, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, "--words", words, "check", in, "--workers", workers)
			if code != 0 {
				t.Fatalf("exit code %d, stderr: %s", code, stderr)
			}
			if got := strings.Count(stdout, "missing\tkiwi\n"); got != 500 {
				t.Errorf("reported %d missing lines, want 500", got)
			}
			if !strings.HasSuffix(stdout, "1000 of 1500 present\n") {
				t.Errorf("summary missing: %q", stdout[max(0, len(stdout)-40):])
			}
		})
	}

	if code, _, stderr := runCLI(t, "--words", words, "check", in, "--workers", "0"); code != 1 || !strings.Contains(stderr, "workers") {
		t.Errorf("workers=0: exit code %d, stderr %q", code, stderr)
	}
}
