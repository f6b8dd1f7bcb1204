package query

// Ellipsis marca "..." na lista devolvida por PageNumbers.
const Ellipsis = 0

const maxVisiblePages = 5

// TotalPages = ceil(total / size).
func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// PageNumbers monta os botões de página, comprimindo com reticências quando
// há mais de 5 páginas.
func PageNumbers(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	pages := make([]int, 0, 7)
	if totalPages <= maxVisiblePages {
		for i := 1; i <= totalPages; i++ {
			pages = append(pages, i)
		}
		return pages
	}

	switch {
	case current <= 3:
		for i := 1; i <= 4; i++ {
			pages = append(pages, i)
		}
		pages = append(pages, Ellipsis, totalPages)
	case current >= totalPages-2:
		pages = append(pages, 1, Ellipsis)
		for i := totalPages - 3; i <= totalPages; i++ {
			pages = append(pages, i)
		}
	default:
		pages = append(pages, 1, Ellipsis)
		for i := current - 1; i <= current+1; i++ {
			pages = append(pages, i)
		}
		pages = append(pages, Ellipsis, totalPages)
	}
	return pages
}
