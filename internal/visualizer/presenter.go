package visualizer

// DetailPresenter renders one record's fields onto a display surface.
type DetailPresenter[T any] interface {
	Show(record T)
	Clear()
}

type nopPresenter[T any] struct{}

func (nopPresenter[T]) Show(T) {}
func (nopPresenter[T]) Clear() {}
