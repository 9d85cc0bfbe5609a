package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "secret123" {
		t.Fatalf("hash equals plaintext")
	}
	if !Verify("secret123", hash) {
		t.Fatalf("expected hash to verify against original plaintext")
	}
	if Verify("secret124", hash) {
		t.Fatalf("expected verification to fail for a different plaintext")
	}
}

func TestHashIsSalted(t *testing.T) {
	h1, err := Hash("secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	h2, err := Hash("secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same plaintext should differ")
	}
	if !Verify("secret123", h1) || !Verify("secret123", h2) {
		t.Fatalf("both salted hashes should verify")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	for _, hash := range []string{"", "not-a-bcrypt-hash", "$2a$garbage"} {
		if Verify("secret123", hash) {
			t.Fatalf("malformed hash %q should not verify", hash)
		}
	}
}
