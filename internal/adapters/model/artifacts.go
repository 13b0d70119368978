// Package model loads the trained classifier and vectorizer artifact pair.
//
// The artifacts are held for the lifetime of the API process, but the
// rule-based aspect scoring never consults them. A failed load is reported
// and the service keeps running without them.
package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

type Artifact struct {
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256"`
	data   []byte
}

// Pair is the classifier plus its fitted vectorizer.
type Pair struct {
	Model      Artifact `json:"model"`
	Vectorizer Artifact `json:"vectorizer"`
}

// Load reads both artifacts. Both must be present for the pair to load.
func Load(modelPath, vectorizerPath string) (*Pair, error) {
	m, err := readArtifact(modelPath)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	v, err := readArtifact(vectorizerPath)
	if err != nil {
		return nil, fmt.Errorf("load vectorizer: %w", err)
	}
	return &Pair{Model: m, Vectorizer: v}, nil
}

func readArtifact(path string) (Artifact, error) {
	if path == "" {
		return Artifact{}, fmt.Errorf("artifact path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, err
	}
	if len(b) == 0 {
		return Artifact{}, fmt.Errorf("%s is empty", path)
	}
	sum := sha256.Sum256(b)
	return Artifact{Path: path, Size: int64(len(b)), SHA256: hex.EncodeToString(sum[:]), data: b}, nil
}

// Loaded is nil-safe so callers can hold a *Pair that failed to load.
func (p *Pair) Loaded() bool {
	return p != nil && len(p.Model.data) > 0 && len(p.Vectorizer.data) > 0
}
