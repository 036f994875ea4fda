package utils

// ChunkStrings divide ids em lotes de até size elementos, preservando a
// ordem. Size menor que 1 devolve um único lote.
func ChunkStrings(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}

	if size < 1 {
		return [][]string{ids}
	}

	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}

	return chunks
}
