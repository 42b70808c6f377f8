package chunker

import "math"

// Stats summarizes a chunk sequence.
type Stats struct {
	TotalChunks int `json:"total_chunks"`
	TotalWords  int `json:"total_words"`
	AvgWords    int `json:"avg_words"`
	MinWords    int `json:"min_words"`
	MaxWords    int `json:"max_words"`
}

// ChunkStats computes count and word statistics for a chunk sequence.
// An empty sequence reports all zeros.
func ChunkStats(chunks []Chunk) Stats {
	if len(chunks) == 0 {
		return Stats{}
	}

	var s Stats
	s.TotalChunks = len(chunks)
	s.MinWords = math.MaxInt
	for _, c := range chunks {
		n := WordCount(c.Text)
		s.TotalWords += n
		if n < s.MinWords {
			s.MinWords = n
		}
		if n > s.MaxWords {
			s.MaxWords = n
		}
	}
	s.AvgWords = int(math.Round(float64(s.TotalWords) / float64(s.TotalChunks)))
	return s
}
