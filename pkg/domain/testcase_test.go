package domain

import (
	"reflect"
	"testing"
)

func TestRender(t *testing.T) {
	c := TestCase{
		Start: "A",
		Transitions: []Transition{
			{ID: 0, From: "A", To: "B", Label: "go"},
			{ID: 4, From: "B", To: "C"},
		},
	}

	want := []Step{
		{Source: "A", Label: "go", Target: "B"},
		{Source: "B", Label: "E4", Target: "C"},
	}
	if got := Render(c); !reflect.DeepEqual(got, want) {
		t.Errorf("Render() = %v, want %v", got, want)
	}
	if got := c.String(); got != "A--go-->B--E4-->C" {
		t.Errorf("String() = %q", got)
	}
	if c.End() != "C" {
		t.Errorf("End() = %q, want C", c.End())
	}
}

func TestRender_EmptyCase(t *testing.T) {
	c := TestCase{Start: "A"}
	if got := Render(c); len(got) != 0 {
		t.Errorf("expected no steps, got %v", got)
	}
	if c.String() != "A" {
		t.Errorf("String() = %q, want A", c.String())
	}
	if c.End() != "A" {
		t.Errorf("End() = %q, want A", c.End())
	}
}
