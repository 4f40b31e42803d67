package internal

import (
	"iter"
)

// IterSeq2Concat concatenates multiple dual-return iterators into a single iterator sequence.
func IterSeq2Concat[T1 any, T2 any](seqs ...iter.Seq2[T1, T2]) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for _, seq := range seqs {
			for val1, val2 := range seq {
				if !yield(val1, val2) {
					return
				}
			}
		}
	}
}

// IterSeq2Filter yields only the pairs accepted by keep.
func IterSeq2Filter[T1 any, T2 any](seq iter.Seq2[T1, T2], keep func(T1, T2) bool) iter.Seq2[T1, T2] {
	return func(yield func(T1, T2) bool) {
		for val1, val2 := range seq {
			if !keep(val1, val2) {
				continue
			}
			if !yield(val1, val2) {
				return
			}
		}
	}
}
