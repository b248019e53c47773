package message_test

import (
	"bytes"
	"errors"
	"testing"

	"e2ekeys/internal/crypto"
	"e2ekeys/internal/domain"
	"e2ekeys/internal/services/message"
)

func makeKeyPair(t *testing.T) domain.KeyPair {
	t.Helper()
	priv, pub, err := crypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	return domain.KeyPair{Public: pub, Private: priv, KeyID: "k"}
}

func TestRoundTrip(t *testing.T) {
	codec := message.New()
	for _, p := range [][]byte{[]byte("hello"), {}, bytes.Repeat([]byte{0xAB}, 4096)} {
		a, b := makeKeyPair(t), makeKeyPair(t)

		msg, err := codec.EncryptForUser(a, b.Public.Slice(), p)
		if err != nil {
			t.Fatalf("EncryptForUser: %v", err)
		}
		got, err := codec.DecryptFromUser(b, a.Public.Slice(), msg)
		if err != nil {
			t.Fatalf("DecryptFromUser: %v", err)
		}
		if !bytes.Equal(got, p) {
			t.Fatalf("got %q, want %q", got, p)
		}
	}
}

func TestSenderCanReadOwnMessage(t *testing.T) {
	codec := message.New()
	a, b := makeKeyPair(t), makeKeyPair(t)
	msg, err := codec.EncryptForUser(a, b.Public.Slice(), []byte("note to self"))
	if err != nil {
		t.Fatalf("EncryptForUser: %v", err)
	}
	if _, err := codec.DecryptFromUser(a, b.Public.Slice(), msg); err != nil {
		t.Fatalf("sender decrypt: %v", err)
	}
}

func TestFailClosed(t *testing.T) {
	codec := message.New()
	a, b := makeKeyPair(t), makeKeyPair(t)
	msg, err := codec.EncryptForUser(a, b.Public.Slice(), []byte("attack at dawn"))
	if err != nil {
		t.Fatalf("EncryptForUser: %v", err)
	}

	for i := range msg.Ciphertext {
		for bit := 0; bit < 8; bit++ {
			tampered := msg
			tampered.Ciphertext = append([]byte(nil), msg.Ciphertext...)
			tampered.Ciphertext[i] ^= 1 << bit
			if pt, err := codec.DecryptFromUser(b, a.Public.Slice(), tampered); !errors.Is(err, domain.ErrDecryptionFailure) || pt != nil {
				t.Fatalf("ciphertext byte %d bit %d: pt=%q err=%v", i, bit, pt, err)
			}
		}
	}
	for i := range msg.Nonce {
		for bit := 0; bit < 8; bit++ {
			tampered := msg
			tampered.Nonce = append([]byte(nil), msg.Nonce...)
			tampered.Nonce[i] ^= 1 << bit
			if pt, err := codec.DecryptFromUser(b, a.Public.Slice(), tampered); !errors.Is(err, domain.ErrDecryptionFailure) || pt != nil {
				t.Fatalf("nonce byte %d bit %d: pt=%q err=%v", i, bit, pt, err)
			}
		}
	}
}

func TestRotatedPeerKeyFails(t *testing.T) {
	codec := message.New()
	a, b := makeKeyPair(t), makeKeyPair(t)
	msg, err := codec.EncryptForUser(a, b.Public.Slice(), []byte("hello"))
	if err != nil {
		t.Fatalf("EncryptForUser: %v", err)
	}

	aNew := makeKeyPair(t)
	if _, err := codec.DecryptFromUser(b, aNew.Public.Slice(), msg); !errors.Is(err, domain.ErrDecryptionFailure) {
		t.Fatalf("got %v, want ErrDecryptionFailure", err)
	}
}

func TestInvalidPeerKey(t *testing.T) {
	codec := message.New()
	a := makeKeyPair(t)
	if _, err := codec.EncryptForUser(a, []byte("short"), []byte("x")); !errors.Is(err, domain.ErrInvalidKey) {
		t.Fatalf("got %v, want ErrInvalidKey", err)
	}
}
