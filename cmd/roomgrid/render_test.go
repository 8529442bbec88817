package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

const buildingsJSON = `[{"Code":"DANA","Description":"Dana Hall"},{"Code":"SCI","Description":"Science Center"}]`

const coursesCSV = `Subj,Number,Title,Meetings/0/Location,Meetings/0/Start,Meetings/0/End,Meetings/0/M,Meetings/0/T,Meetings/0/W,Meetings/0/R,Meetings/0/F
CS,101,Intro,DANA 113,09:00,10:50,Y,N,Y,N,Y
PH,110,Physics,SCI 2,10:00,10:50,N,Y,N,N,N`

func writeFixtures(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	b := filepath.Join(dir, "buildings.json")
	c := filepath.Join(dir, "courses.csv")
	if err := os.WriteFile(b, []byte(buildingsJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c, []byte(coursesCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return b, c
}

func TestPrintInventoryAndGrid(t *testing.T) {
	buildings, courses := writeFixtures(t)
	ctx := context.Background()

	a, err := newApp(ctx, buildings, courses, false, false, zerolog.Nop())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}

	var out bytes.Buffer
	if err := a.printInventory(ctx, &out); err != nil {
		t.Fatalf("printInventory: %v", err)
	}
	if err := a.printRoom(ctx, &out, "DANA 113"); err != nil {
		t.Fatalf("printRoom: %v", err)
	}

	text := out.String()
	for _, want := range []string{"DANA", "113", "2 unique rooms", "Monday", "9:00", "CS 101", "Found 1 courses using this room (6 time slots occupied)"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestSampleMode(t *testing.T) {
	buildings, _ := writeFixtures(t)
	ctx := context.Background()

	a, err := newApp(ctx, buildings, "", false, true, zerolog.Nop())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}

	var out bytes.Buffer
	if err := a.printRoom(ctx, &out, "SCI 301"); err != nil {
		t.Fatalf("printRoom: %v", err)
	}
	if !strings.Contains(out.String(), "TEST 301") {
		t.Errorf("sample grid missing TEST 301:\n%s", out.String())
	}
}

func TestUnloadableExportFallsBackToSample(t *testing.T) {
	buildings, _ := writeFixtures(t)
	dir := t.TempDir()
	headerOnly := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(headerOnly, []byte("Subj,Number,Meetings/0/Location\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.csv"), headerOnly} {
		a, err := newApp(context.Background(), buildings, path, false, false, zerolog.Nop())
		if err != nil {
			t.Fatalf("newApp(%s): %v", path, err)
		}
		var out bytes.Buffer
		if err := a.printRoom(context.Background(), &out, "DANA 101"); err != nil {
			t.Fatalf("printRoom(%s): %v", path, err)
		}
		if !strings.Contains(out.String(), "TEST 101") {
			t.Errorf("%s: expected sample courses:\n%s", path, out.String())
		}
	}
}

func TestNewAppRequiresCourses(t *testing.T) {
	buildings, _ := writeFixtures(t)
	if _, err := newApp(context.Background(), buildings, "", false, false, zerolog.Nop()); err == nil {
		t.Fatal("expected an error without --courses or --sample")
	}
}

func TestPrintRoomFormat(t *testing.T) {
	buildings, courses := writeFixtures(t)
	a, err := newApp(context.Background(), buildings, courses, false, false, zerolog.Nop())
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	if err := a.printRoom(context.Background(), &bytes.Buffer{}, "DANA"); err == nil {
		t.Fatal("expected an error for a room without a number")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("CS 101", 10); got != "CS 101" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("BIOCHEM 4501L", 8); got != "BIOCHEM…" {
		t.Errorf("truncate long = %q", got)
	}
}
