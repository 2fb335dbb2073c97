package util

//*******************************************
// list
//*******************************************

type List[T any] []T

func NewList[T any](capacity int) List[T] {
	return make([]T, 0, capacity)
}

func (self *List[T]) Add(value T) {
	*self = append(*self, value)
}
func (self *List[T]) Get(index int) T {
	return (*self)[index]
}
func (self *List[T]) Set(index int, value T) {
	(*self)[index] = value
}
func (self *List[T]) Length() int {
	return len(*self)
}

//*******************************************
// array
//*******************************************

type Array[T any] []T

func NewArray[T any](size int) Array[T] {
	return make([]T, size)
}

func (self Array[T]) Get(index int) T {
	return self[index]
}
func (self Array[T]) Set(index int, value T) {
	self[index] = value
}
func (self Array[T]) Length() int {
	return len(self)
}
