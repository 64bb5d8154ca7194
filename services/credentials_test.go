package services

import "testing"

func TestPlainVerifier(t *testing.T) {
	v := PlainVerifier{Username: "manager", Password: "s3cret@@"}

	tests := []struct {
		user, pass string
		want       bool
	}{
		{"manager", "s3cret@@", true},
		{"manager", "s3cret", false},
		{"Manager", "s3cret@@", false},
		{"", "", false},
	}
	for _, tt := range tests {
		if got := v.Verify(tt.user, tt.pass); got != tt.want {
			t.Errorf("Verify(%q, %q) = %v, want %v", tt.user, tt.pass, got, tt.want)
		}
	}
}

func TestPlainVerifier_EmptyPasswordNeverMatches(t *testing.T) {
	v := PlainVerifier{Username: "admin"}
	if v.Verify("admin", "") {
		t.Error("empty configured password must reject every login")
	}
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := HashPassword("Tt123123@@")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Tt123123@@" {
		t.Fatal("hash equals the plain password")
	}

	v := BcryptVerifier{Username: "manager", Hash: hash}
	tests := []struct {
		user, pass string
		want       bool
	}{
		{"manager", "Tt123123@@", true},
		{"manager", "wrong", false},
		{"other", "Tt123123@@", false},
	}
	for _, tt := range tests {
		if got := v.Verify(tt.user, tt.pass); got != tt.want {
			t.Errorf("Verify(%q, %q) = %v, want %v", tt.user, tt.pass, got, tt.want)
		}
	}
	if (BcryptVerifier{Username: "manager"}).Verify("manager", "") {
		t.Error("empty hash must reject every login")
	}
}
