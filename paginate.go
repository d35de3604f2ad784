package tfidx

// Paginate splits items into consecutive pages of at most pageSize
// elements each. The final page may be shorter. Returns nil for an empty
// input or a non-positive pageSize.
func Paginate[T any](items []T, pageSize int) [][]T {
	if len(items) == 0 || pageSize <= 0 {
		return nil
	}
	pages := make([][]T, 0, (len(items)+pageSize-1)/pageSize)
	for start := 0; start < len(items); start += pageSize {
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[start:end])
	}
	return pages
}
