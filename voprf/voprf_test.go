package voprf

import (
	"bytes"
	"testing"
)

var testSuites = []struct {
	name string
	cs   CipherSuite
}{
	{"Ristretto255-SHA512", Ristretto255SHA512},
	{"P256-SHA256", P256SHA256Suite},
}

func TestNonVerifiableEndToEnd(t *testing.T) {
	for _, suite := range testSuites {
		t.Run(suite.name, func(t *testing.T) {
			cs := suite.cs
			server, err := NewNonVerifiableServer(cs, nil)
			if err != nil {
				t.Fatalf("NewNonVerifiableServer failed: %v", err)
			}

			input := []byte("example input")
			client, blinded, err := BlindNonVerifiable(cs, nil, input)
			if err != nil {
				t.Fatalf("BlindNonVerifiable failed: %v", err)
			}

			evaluation, err := server.Evaluate(cs, blinded, nil)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}

			output, err := client.Finalize(cs, input, evaluation, nil)
			if err != nil {
				t.Fatalf("Finalize failed: %v", err)
			}
			if len(output) == 0 {
				t.Fatal("Finalize returned empty output")
			}

			// Recomputing the OPRF from scratch with the same key and input
			// must yield the same output (determinism / PRF correctness).
			client2, blinded2, err := BlindNonVerifiable(cs, nil, input)
			if err != nil {
				t.Fatalf("second BlindNonVerifiable failed: %v", err)
			}
			evaluation2, err := server.Evaluate(cs, blinded2, nil)
			if err != nil {
				t.Fatalf("second Evaluate failed: %v", err)
			}
			output2, err := client2.Finalize(cs, input, evaluation2, nil)
			if err != nil {
				t.Fatalf("second Finalize failed: %v", err)
			}
			if !bytes.Equal(output, output2) {
				t.Error("PRF output is not deterministic for the same key and input")
			}

			// A different input must produce a different output.
			client3, blinded3, _ := BlindNonVerifiable(cs, nil, []byte("different input"))
			evaluation3, _ := server.Evaluate(cs, blinded3, nil)
			output3, _ := client3.Finalize(cs, []byte("different input"), evaluation3, nil)
			if bytes.Equal(output, output3) {
				t.Error("different inputs produced the same PRF output")
			}
		})
	}
}

func TestNonVerifiableMetadataChangesOutput(t *testing.T) {
	for _, suite := range testSuites {
		t.Run(suite.name, func(t *testing.T) {
			cs := suite.cs
			server, _ := NewNonVerifiableServer(cs, nil)
			input := []byte("metadata test")

			client1, blinded1, _ := BlindNonVerifiable(cs, nil, input)
			eval1, err := server.Evaluate(cs, blinded1, []byte("info-a"))
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			out1, err := client1.Finalize(cs, input, eval1, []byte("info-a"))
			if err != nil {
				t.Fatalf("Finalize failed: %v", err)
			}

			client2, blinded2, _ := BlindNonVerifiable(cs, nil, input)
			eval2, err := server.Evaluate(cs, blinded2, []byte("info-b"))
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			out2, err := client2.Finalize(cs, input, eval2, []byte("info-b"))
			if err != nil {
				t.Fatalf("Finalize failed: %v", err)
			}

			if bytes.Equal(out1, out2) {
				t.Error("different metadata produced the same PRF output")
			}
		})
	}
}

func TestVerifiableEndToEnd(t *testing.T) {
	for _, suite := range testSuites {
		t.Run(suite.name, func(t *testing.T) {
			cs := suite.cs
			server, err := NewVerifiableServer(cs, nil)
			if err != nil {
				t.Fatalf("NewVerifiableServer failed: %v", err)
			}
			pk := server.PublicKey()

			input := []byte("verifiable example")
			client, blinded, err := BlindVerifiable(cs, nil, input)
			if err != nil {
				t.Fatalf("BlindVerifiable failed: %v", err)
			}

			evaluation, proof, err := server.Evaluate(cs, nil, blinded, nil)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}

			output, err := client.Finalize(cs, input, evaluation, proof, pk, nil)
			if err != nil {
				t.Fatalf("Finalize failed: %v", err)
			}
			if len(output) == 0 {
				t.Fatal("Finalize returned empty output")
			}
		})
	}
}

func TestVerifiableRejectsWrongPublicKey(t *testing.T) {
	for _, suite := range testSuites {
		t.Run(suite.name, func(t *testing.T) {
			cs := suite.cs
			server, _ := NewVerifiableServer(cs, nil)
			impostor, _ := NewVerifiableServer(cs, nil)

			input := []byte("impersonation attempt")
			client, blinded, _ := BlindVerifiable(cs, nil, input)
			evaluation, proof, err := server.Evaluate(cs, nil, blinded, nil)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}

			if _, err := client.Finalize(cs, input, evaluation, proof, impostor.PublicKey(), nil); err == nil {
				t.Error("Finalize accepted a proof against the wrong public key")
			}
		})
	}
}

func TestVerifiableRejectsTamperedProof(t *testing.T) {
	for _, suite := range testSuites {
		t.Run(suite.name, func(t *testing.T) {
			cs := suite.cs
			server, _ := NewVerifiableServer(cs, nil)
			pk := server.PublicKey()

			input := []byte("tamper test")
			client, blinded, _ := BlindVerifiable(cs, nil, input)
			evaluation, proof, err := server.Evaluate(cs, nil, blinded, nil)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}

			// Swap in an unrelated scalar for the proof's s component.
			other, _ := NewVerifiableServer(cs, nil)
			_ = other
			unrelated, err := cs.Group.RandomScalar(nil)
			if err != nil {
				t.Fatalf("RandomScalar failed: %v", err)
			}
			tampered := &Proof{C: proof.C, S: unrelated}

			if _, err := client.Finalize(cs, input, evaluation, tampered, pk, nil); err == nil {
				t.Error("Finalize accepted a tampered proof")
			}
		})
	}
}

func TestVerifiableBatch(t *testing.T) {
	for _, suite := range testSuites {
		t.Run(suite.name, func(t *testing.T) {
			cs := suite.cs
			server, _ := NewVerifiableServer(cs, nil)
			pk := server.PublicKey()

			inputs := [][]byte{[]byte("one"), []byte("two"), []byte("three")}
			clients := make([]*VerifiableClient, len(inputs))
			blindedElements := make([]*BlindedElement, len(inputs))
			for i, in := range inputs {
				c, b, err := BlindVerifiable(cs, nil, in)
				if err != nil {
					t.Fatalf("BlindVerifiable failed: %v", err)
				}
				clients[i] = c
				blindedElements[i] = b
			}

			evaluations, proof, err := BatchEvaluateVerifiable(cs, nil, server, blindedElements, nil)
			if err != nil {
				t.Fatalf("BatchEvaluateVerifiable failed: %v", err)
			}

			outputs, err := BatchFinalizeVerifiable(cs, inputs, clients, evaluations, proof, pk, nil)
			if err != nil {
				t.Fatalf("BatchFinalizeVerifiable failed: %v", err)
			}
			if len(outputs) != len(inputs) {
				t.Fatalf("got %d outputs, want %d", len(outputs), len(inputs))
			}
			for i, out := range outputs {
				if len(out) == 0 {
					t.Errorf("output %d is empty", i)
				}
			}

			// A mismatched batch length must be rejected.
			if _, err := BatchFinalizeVerifiable(cs, inputs[:2], clients, evaluations, proof, pk, nil); err == nil {
				t.Error("expected ErrBatch for mismatched batch lengths")
			}
		})
	}
}

func TestKeyDerivationIsDeterministic(t *testing.T) {
	for _, suite := range testSuites {
		t.Run(suite.name, func(t *testing.T) {
			cs := suite.cs
			seed := []byte("a fixed 32+ byte seed value used for testing")

			s1, err := NewVerifiableServerFromSeed(cs, seed, nil)
			if err != nil {
				t.Fatalf("NewVerifiableServerFromSeed failed: %v", err)
			}
			s2, err := NewVerifiableServerFromSeed(cs, seed, nil)
			if err != nil {
				t.Fatalf("NewVerifiableServerFromSeed failed: %v", err)
			}
			if !bytes.Equal(s1.SerializeKey(cs), s2.SerializeKey(cs)) {
				t.Error("deriving a key pair from the same seed twice produced different keys")
			}
		})
	}
}

func TestEmptyInputRejected(t *testing.T) {
	cs := Ristretto255SHA512
	if _, _, err := BlindNonVerifiable(cs, nil, nil); err == nil {
		t.Error("expected ErrInput for an empty input")
	}
}

func TestOversizedInputRejected(t *testing.T) {
	cs := Ristretto255SHA512
	huge := make([]byte, 70000)
	if _, _, err := BlindNonVerifiable(cs, nil, huge); err == nil {
		t.Error("expected ErrInput for an oversized input")
	}
}

func TestOversizedMetadataRejected(t *testing.T) {
	cs := Ristretto255SHA512
	server, err := NewNonVerifiableServer(cs, nil)
	if err != nil {
		t.Fatalf("NewNonVerifiableServer failed: %v", err)
	}
	_, blinded, err := BlindNonVerifiable(cs, nil, []byte("metadata bound"))
	if err != nil {
		t.Fatalf("BlindNonVerifiable failed: %v", err)
	}

	// info of length maxInfoLen must be accepted...
	okInfo := make([]byte, maxInfoLen)
	if _, err := server.Evaluate(cs, blinded, okInfo); err != nil {
		t.Errorf("Evaluate rejected info at the maximum allowed length: %v", err)
	}

	// ...but one byte more must be rejected with ErrMetadata.
	tooLong := make([]byte, maxInfoLen+1)
	if _, err := server.Evaluate(cs, blinded, tooLong); err == nil {
		t.Error("expected ErrMetadata for info exceeding maxInfoLen")
	}
}

func BenchmarkBlindNonVerifiable(b *testing.B) {
	cs := Ristretto255SHA512
	input := []byte("benchmark-password")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = BlindNonVerifiable(cs, nil, input)
	}
}

func BenchmarkNonVerifiableEvaluate(b *testing.B) {
	cs := Ristretto255SHA512
	server, _ := NewNonVerifiableServer(cs, nil)
	_, blinded, _ := BlindNonVerifiable(cs, nil, []byte("benchmark-password"))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = server.Evaluate(cs, blinded, nil)
	}
}

func BenchmarkNonVerifiableFinalize(b *testing.B) {
	cs := Ristretto255SHA512
	server, _ := NewNonVerifiableServer(cs, nil)
	client, blinded, _ := BlindNonVerifiable(cs, nil, []byte("benchmark-password"))
	evaluation, _ := server.Evaluate(cs, blinded, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = client.Finalize(cs, []byte("benchmark-password"), evaluation, nil)
	}
}

func BenchmarkVerifiableEvaluate(b *testing.B) {
	cs := Ristretto255SHA512
	server, _ := NewVerifiableServer(cs, nil)
	_, blinded, _ := BlindVerifiable(cs, nil, []byte("benchmark-password"))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = server.Evaluate(cs, nil, blinded, nil)
	}
}

func BenchmarkVerifiableFinalize(b *testing.B) {
	cs := Ristretto255SHA512
	server, _ := NewVerifiableServer(cs, nil)
	pk := server.PublicKey()
	client, blinded, _ := BlindVerifiable(cs, nil, []byte("benchmark-password"))
	evaluation, proof, _ := server.Evaluate(cs, nil, blinded, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = client.Finalize(cs, []byte("benchmark-password"), evaluation, proof, pk, nil)
	}
}
