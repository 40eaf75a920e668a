package utils

// ChunkMessage splits message into pieces of at most chunkSize bytes, so a
// long listing can be sent across several Discord messages. A message that
// already fits comes back as a single chunk.
func ChunkMessage(message string, chunkSize int) []string {
	if len(message) <= chunkSize {
		return []string{message}
	}

	chunks := make([]string, 0, len(message)/chunkSize+1)
	for start := 0; start < len(message); start += chunkSize {
		end := start + chunkSize
		if end > len(message) {
			end = len(message)
		}
		chunks = append(chunks, message[start:end])
	}
	return chunks
}
