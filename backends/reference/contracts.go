package reference

import (
	"github.com/tuneinsight/fhecore/core/engine"
)

var (
	_ engine.DestructionEngine[Entity] = (*Engine[uint64])(nil)
	_ engine.DestructionEngine[Entity] = (*CleartextEngine[float64])(nil)

	_ engine.CleartextCreationEngine[uint32, *Cleartext[uint32]]    = (*CleartextEngine[uint32])(nil)
	_ engine.CleartextCreationEngine[float64, *Cleartext[float64]]  = (*CleartextEngine[float64])(nil)
	_ engine.CleartextRetrievalEngine[*Cleartext[float64], float64] = (*CleartextEngine[float64])(nil)

	_ engine.PlaintextCreationEngine[uint64, *Plaintext[uint64]]                                                     = (*Engine[uint64])(nil)
	_ engine.PlaintextRetrievalEngine[*Plaintext[uint64], uint64]                                                    = (*Engine[uint64])(nil)
	_ engine.PlaintextVectorCreationEngine[uint32, *PlaintextVector[uint32]]                                         = (*Engine[uint32])(nil)
	_ engine.PlaintextVectorRetrievalEngine[*PlaintextVector[uint32], uint32]                                        = (*Engine[uint32])(nil)
	_ engine.LweSecretKeyGenerationEngine[*LweSecretKey[uint64]]                                                     = (*Engine[uint64])(nil)
	_ engine.GlweSecretKeyGenerationEngine[*GlweSecretKey[uint64]]                                                   = (*Engine[uint64])(nil)
	_ engine.LweKeyswitchKeyGenerationEngine[*LweSecretKey[uint64], *LweSecretKey[uint64], *LweKeyswitchKey[uint64]] = (*Engine[uint64])(nil)

	_ engine.LweCiphertextEncryptionEngine[*LweSecretKey[uint64], *Plaintext[uint64], *LweCiphertext[uint64]]           = (*Engine[uint64])(nil)
	_ engine.LweCiphertextDiscardingEncryptionEngine[*LweSecretKey[uint64], *Plaintext[uint64], *LweCiphertext[uint64]] = (*Engine[uint64])(nil)
	_ engine.LweCiphertextDecryptionEngine[*LweSecretKey[uint64], *LweCiphertext[uint64], *Plaintext[uint64]]           = (*Engine[uint64])(nil)

	_ engine.GlweCiphertextEncryptionEngine[*GlweSecretKey[uint64], *PlaintextVector[uint64], *GlweCiphertext[uint64]] = (*Engine[uint64])(nil)
	_ engine.GlweCiphertextDecryptionEngine[*GlweSecretKey[uint64], *GlweCiphertext[uint64], *PlaintextVector[uint64]] = (*Engine[uint64])(nil)
	_ engine.GgswCiphertextScalarEncryptionEngine[*GlweSecretKey[uint64], *Plaintext[uint64], *GgswCiphertext[uint64]] = (*Engine[uint64])(nil)

	_ engine.LweCiphertextDiscardingKeyswitchEngine[*LweKeyswitchKey[uint64], *LweCiphertext[uint64], *LweCiphertext[uint64]]                  = (*Engine[uint64])(nil)
	_ engine.LweCiphertextDiscardingNegationEngine[*LweCiphertext[uint32], *LweCiphertext[uint32]]                                             = (*Engine[uint32])(nil)
	_ engine.LweCiphertextDiscardingAdditionEngine[*LweCiphertext[uint64], *LweCiphertext[uint64]]                                             = (*Engine[uint64])(nil)
	_ engine.LweCiphertextDiscardingCleartextMultiplicationEngine[*LweCiphertext[uint64], *Cleartext[uint64], *LweCiphertext[uint64]]          = (*Engine[uint64])(nil)
	_ engine.GlweCiphertextTensorProductEngine[*GlweCiphertext[uint64], *GlweCiphertext[uint64], *Cleartext[float64], *GlweCiphertext[uint64]] = (*Engine[uint64])(nil)
)
