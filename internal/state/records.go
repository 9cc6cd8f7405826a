package state

// RecordStore holds one ordered record collection and the page currently
// requested for it.
type RecordStore[T any] interface {
	Records() []T
	Len() int
	At(i int) T
	Replace([]T)
	Page() int
	SetPage(int)
	Generation() uint64
}

type recordStore[T any] struct {
	records    []T
	page       int
	generation uint64
}

func NewRecordStore[T any]() RecordStore[T] {
	return &recordStore[T]{}
}

func (s *recordStore[T]) Records() []T {
	return cloneRecords(s.records)
}

func (s *recordStore[T]) Len() int {
	return len(s.records)
}

func (s *recordStore[T]) At(i int) T {
	return s.records[i]
}

// Replace swaps the whole collection and rewinds to the first page.
func (s *recordStore[T]) Replace(records []T) {
	s.records = cloneRecords(records)
	s.page = 0
	s.generation++
}

func (s *recordStore[T]) Page() int {
	return s.page
}

func (s *recordStore[T]) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	s.page = page
}

// Generation increases on every Replace.
func (s *recordStore[T]) Generation() uint64 {
	return s.generation
}

func cloneRecords[T any](records []T) []T {
	if len(records) == 0 {
		return nil
	}
	dup := make([]T, len(records))
	copy(dup, records)
	return dup
}
