package util

import "testing"

func TestIsBlankStr(t *testing.T) {
	for _, s := range []string{"", " ", "\t\n "} {
		if !IsBlankStr(s) {
			t.Fatalf("'%s' should be blank", s)
		}
	}
	if IsBlankStr(" a ") {
		t.Fatal("' a ' should not be blank")
	}
}

func BenchmarkIsBlankStr(b *testing.B) {
	for i := 0; i < b.N; i++ {
		IsBlankStr("   abc  ")
	}
}
