// Package simhash computes 64-bit similarity fingerprints for page
// content and page layout. Near-identical inputs produce fingerprints
// within a small Hamming distance, which is what batch analysis uses to
// group duplicate pages.
package simhash

import (
	"fmt"
	"hash/fnv"
	"math/bits"
	"strings"
)

// Fingerprint computes a 64-bit SimHash of the given text.
// Uses FNV-64a hash on word-level tokens with bit vector accumulation.
func Fingerprint(text string) uint64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	var vector [64]int

	for _, word := range words {
		h := fnv.New64a()
		h.Write([]byte(word))
		hash := h.Sum64()

		for i := 0; i < 64; i++ {
			if hash&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	var fingerprint uint64
	for i := 0; i < 64; i++ {
		if vector[i] > 0 {
			fingerprint |= 1 << uint(i)
		}
	}

	return fingerprint
}

// Distance returns the Hamming distance between two SimHash fingerprints.
func Distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// Similar returns true if the Hamming distance between two fingerprints
// is less than or equal to the threshold.
func Similar(a, b uint64, threshold int) bool {
	return Distance(a, b) <= threshold
}

// Hex renders a fingerprint as a fixed-width hex string for reports.
func Hex(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}

// GroupNear clusters indexes whose fingerprints sit within threshold of
// the group's first member. A zero fingerprint means no content and is
// never grouped. Only groups of two or more are returned, members in
// input order.
func GroupNear(fps []uint64, threshold int) [][]int {
	var groups [][]int
	used := make([]bool, len(fps))

	for i, fp := range fps {
		if used[i] || fp == 0 {
			continue
		}
		group := []int{i}
		for j := i + 1; j < len(fps); j++ {
			if used[j] || fps[j] == 0 {
				continue
			}
			if Similar(fp, fps[j], threshold) {
				group = append(group, j)
				used[j] = true
			}
		}
		if len(group) > 1 {
			used[i] = true
			groups = append(groups, group)
		}
	}
	return groups
}
