package probfile

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestFormatRoute(t *testing.T) {
	if got := FormatRoute([]int{1, 2, 3}); got != "[1,2,3]" {
		t.Errorf("FormatRoute = %q, want [1,2,3]", got)
	}
	if got := FormatRoute([]int{7}); got != "[7]" {
		t.Errorf("FormatRoute = %q, want [7]", got)
	}
}

func TestPlanRoundTrip(t *testing.T) {
	routes := [][]int{{4, 1}, {2}, {3, 5, 6}}

	var buf bytes.Buffer
	if err := WritePlan(&buf, routes); err != nil {
		t.Fatalf("WritePlan: %v", err)
	}
	got, err := ParsePlan(&buf)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if !reflect.DeepEqual(got, routes) {
		t.Errorf("round trip = %v, want %v", got, routes)
	}
}

func TestParsePlanSkipsBlankLines(t *testing.T) {
	got, err := ParsePlan(strings.NewReader("[1]\n\n[2,3]\n"))
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d routes, want 2", len(got))
	}
}

func TestParsePlanRejectsUnbracketed(t *testing.T) {
	if _, err := ParsePlan(strings.NewReader("1,2,3\n")); err == nil {
		t.Fatal("expected error for unbracketed route")
	}
}

func TestParsePlanRejectsBadID(t *testing.T) {
	_, err := ParsePlan(strings.NewReader("[1,x]\n"))
	if err == nil {
		t.Fatal("expected error for non-numeric load id")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("error %q should name the line", err)
	}
}
