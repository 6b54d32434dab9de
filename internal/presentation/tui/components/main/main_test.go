package mainview

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	got := Render(Props{
		Width:  100,
		Height: 50,
		Header: "HEADER",
		Body:   "BODY",
	})

	if !strings.Contains(got, "HEADER") {
		t.Error("Missing header")
	}
	if !strings.Contains(got, "BODY") {
		t.Error("Missing body")
	}
	if strings.Index(got, "HEADER") > strings.Index(got, "BODY") {
		t.Error("Header should be rendered above the body")
	}
}

func TestRender_BodyOnly(t *testing.T) {
	got := Render(Props{Width: 20, Height: 3, Body: "BODY"})
	if !strings.Contains(got, "BODY") {
		t.Error("Missing body")
	}
}
