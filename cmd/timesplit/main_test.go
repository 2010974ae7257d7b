package main

import "testing"

func TestParseFormArgs(t *testing.T) {
	v := ParseFormArgs([]string{"title=dentist", "starts_at_time(4i)=10", "broken", "starts_at_date=2020-03-15", "title=checkup"})
	t.Logf("%v", v)
	if v.Get("starts_at_time(4i)") != "10" {
		t.Fatalf("unexpected %v", v)
	}
	if v.Get("starts_at_date") != "2020-03-15" {
		t.Fatalf("unexpected %v", v)
	}
	if len(v["title"]) != 2 || v["title"][1] != "checkup" {
		t.Fatalf("unexpected %v", v["title"])
	}
	if v.Has("broken") {
		t.Fatal("arg without '=' should be ignored")
	}
}
