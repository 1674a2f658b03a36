package gateway

import "testing"

func TestSignatureVector(t *testing.T) {
	// HMAC-SHA256("order_1|pay_1", "s3cret") 的 hex 编码
	const want = "44422d618d76e6e81c5f002f4d5108385750b52eb8db4e9c7a4231ddfac02840"

	got := Signature("order_1", "pay_1", "s3cret")
	if got != want {
		t.Fatalf("Signature() = %s, want %s", got, want)
	}
}

func TestVerifySignature(t *testing.T) {
	sig := Signature("order_1", "pay_1", "s3cret")

	if !VerifySignature("order_1", "pay_1", sig, "s3cret") {
		t.Fatal("valid signature rejected")
	}

	// 任意一个字符被篡改都必须拒绝
	corrupted := []byte(sig)
	if corrupted[0] == 'a' {
		corrupted[0] = 'b'
	} else {
		corrupted[0] = 'a'
	}
	if VerifySignature("order_1", "pay_1", string(corrupted), "s3cret") {
		t.Fatal("corrupted signature accepted")
	}

	if VerifySignature("order_1", "pay_1", sig, "wrong-secret") {
		t.Fatal("signature accepted with wrong secret")
	}
}
