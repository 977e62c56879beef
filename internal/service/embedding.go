package service

import (
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
)

// GenerateEmbedding maps recipe text onto the three-dimensional vector column
// that search uses for similarity ordering. It packs cheap lexical features
// (text length, vowel count, consonant count) as a deterministic stand-in for
// model embeddings, so recipes with similar wording land near each other.
func GenerateEmbedding(text string) pgvector.Vector {
	lowered := strings.ToLower(text)

	var vowels, consonants float32
	for _, r := range lowered {
		switch {
		case strings.ContainsRune("aeiou", r):
			vowels++
		case r >= 'a' && r <= 'z':
			consonants++
		}
	}

	return pgvector.NewVector([]float32{float32(len(lowered)), vowels, consonants})
}
