package mrpack

import "testing"

func TestSHA1Hex(t *testing.T) {
	// echo -n "hello" | sha1sum
	got := SHA1Hex([]byte("hello"))
	want := "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"
	if got != want {
		t.Errorf("SHA1Hex(%q) = %q, want %q", "hello", got, want)
	}
}

func TestVerifySHA1(t *testing.T) {
	data := []byte("hello")
	if !VerifySHA1(data, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d") {
		t.Error("VerifySHA1 should match the correct digest")
	}
	if VerifySHA1(data, "0000000000000000000000000000000000000") {
		t.Error("VerifySHA1 should reject a mismatched digest")
	}
}

func TestVerifySHA1EmptyExpectedAlwaysPasses(t *testing.T) {
	if !VerifySHA1([]byte("anything"), "") {
		t.Error("VerifySHA1 with no expected hash should pass")
	}
}
