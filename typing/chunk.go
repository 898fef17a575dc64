package typing

// DefaultChunkSize is the number of characters typed between inter-chunk
// pauses. Boundaries fall at raw rune offsets, not word boundaries.
const DefaultChunkSize = 200

// Chunk splits text into fixed-size rune slices. Concatenating the result
// always reproduces the input exactly. size <= 0 falls back to
// DefaultChunkSize.
func Chunk(text string, size int) [][]rune {
	if size <= 0 {
		size = DefaultChunkSize
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	chunks := make([][]rune, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, runes[start:end])
	}
	return chunks
}
