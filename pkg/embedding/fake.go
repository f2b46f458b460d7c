package embedding

import (
	"context"
	"hash/fnv"
)

// FakeEmbedder is a deterministic, offline Embedder used by tests: the
// same text always produces the same vector, and no network call is
// made. Dimension is fixed per instance, matching the real contract.
type FakeEmbedder struct {
	Dimension int
	// Unavailable forces Available() to return false, for exercising the
	// fallback-to-TF-IDF path without a real provider.
	Unavailable bool
	// FailOn, if set, makes Embed fail for any text equal to this value;
	// used to simulate a single document or query embedding failure.
	FailOn string
}

// NewFakeEmbedder returns a FakeEmbedder with the given vector dimension.
func NewFakeEmbedder(dimension int) *FakeEmbedder {
	return &FakeEmbedder{Dimension: dimension}
}

func (f *FakeEmbedder) Available() bool {
	return !f.Unavailable
}

func (f *FakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.FailOn != "" && text == f.FailOn {
		return nil, ErrDocumentFailed
	}

	vec := make([]float32, f.Dimension)
	h := fnv.New64a()
	for i := range vec {
		h.Write([]byte{byte(i)})
		h.Write([]byte(text))
		sum := h.Sum64()
		// Map the hash into [-1, 1] deterministically.
		vec[i] = float32(sum%2000)/1000 - 1
	}
	return vec, nil
}
